package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "insurance-brokerage/internal/adapter/http"
	"insurance-brokerage/internal/adapter/middleware"
	"insurance-brokerage/internal/adapter/repository/mysql"
	"insurance-brokerage/internal/config"
	"insurance-brokerage/internal/infrastructure/cache"
	"insurance-brokerage/internal/infrastructure/db"
	"insurance-brokerage/internal/infrastructure/logger"
	clientuc "insurance-brokerage/internal/usecase/client"
	policyuc "insurance-brokerage/internal/usecase/policy"
	productuc "insurance-brokerage/internal/usecase/product"
)

func main() {
	cfg := config.Load(".env")
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatal("mysql", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal("mysql handle", zap.Error(err))
	}

	policies := mysql.NewPolicyRepository(gdb)
	rejections := mysql.NewRejectionRepository(gdb)
	products := mysql.NewProductRepository(gdb)
	clients := mysql.NewClientRepository(gdb)

	h := httpadp.Handlers{
		Health: httpadp.NewHandler(map[string]httpadp.Check{
			"mysql": sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Products: httpadp.NewProductHandler(productuc.NewUsecase(products, cache.NewJSONCache(rdb, "products:", cfg.ProductCacheTTL()), log)),
		Clients:  httpadp.NewClientHandler(clientuc.NewUsecase(clients, log)),
		Policies: httpadp.NewPolicyHandler(policyuc.NewUsecase(policies, rejections, products, clients, mysql.NewGormUoW(gdb), log)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), middleware.RequestID(log), middleware.AccessLog(log), middleware.Actor)
	httpadp.Register(e, h, rdb, cfg.IdempotencyTTL(), log)

	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
