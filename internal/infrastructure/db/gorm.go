package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"insurance-brokerage/internal/domain/client"
	"insurance-brokerage/internal/domain/policy"
	"insurance-brokerage/internal/domain/product"
)

func OpenGorm(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := OpenGormWithDialector(mysql.Open(dsn))
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Info("gorm: connected")
	}
	return db, nil
}

// OpenGormWithDialector applies pool settings and pings once before returning.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&product.Product{},
		&client.Profile{},
		&policy.Policy{},
		&policy.RejectionDetail{},
	)
}
