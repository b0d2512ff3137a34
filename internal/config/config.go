package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs        int
	ProductCacheTTLSecs int

	LogLevel  string
	LogFormat string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment. Files in envFiles that exist are loaded first; variables
// already set in the process win over file values.
func Load(envFiles ...string) *Config {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "brokerage"),
		MySQLUser: getenv("MYSQL_USER", "brokerage"),
		MySQLPass: getenv("MYSQL_PASS", "brokerage"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs:        getint("IDEMPOTENCY_TTL_SECONDS", 300),
		ProductCacheTTLSecs: getint("PRODUCT_CACHE_TTL_SECONDS", 60),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) ProductCacheTTL() time.Duration {
	return time.Duration(c.ProductCacheTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
