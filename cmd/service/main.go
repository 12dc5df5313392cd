package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	_ "storefront/docs"
	"storefront/internal/cache"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/hashing"
	"storefront/internal/logger"
	"storefront/internal/producer"
	"storefront/internal/reconcile"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/token"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// @Title Storefront API
// @Version 1.0
// @Description API интернет-магазина: каталог, остатки, заказы
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	// цены в JSON числами, как их ждёт фронт
	decimal.MarshalJSONWithoutQuotes = true

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	checks := map[string]handlers.Pinger{"mysql": repos}

	var productCache service.ProductCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		productCache = redisClient
		checks["redis"] = redisClient
		log.Info("Redis cache enabled")
	} else {
		log.Info("Redis cache disabled")
	}

	var events service.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		p := producer.NewOrderEventProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
		defer p.Close()
		events = p
		log.Info("Kafka order events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrdersTopic))
	} else {
		log.Info("Kafka order events disabled")
	}

	hasher := hashing.NewBcrypt(0)
	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer)

	authSvc := service.NewAuthService(repos.Users, hasher, tokens, cfg.JWT.AccessExp, log)
	orderSvc := service.NewOrderService(repos, events, productCache, log)
	catalogSvc := service.NewCatalogService(repos, productCache, log)
	settingsSvc := service.NewSettingsService(repos.Settings)

	reconciler := reconcile.NewStockReconciler(repos, productCache, log)
	scheduler := reconcile.NewScheduler(reconciler, cfg.ReconcileInterval, log)

	reconcileCtx, reconcileCancel := context.WithCancel(context.Background())
	defer reconcileCancel()
	scheduler.Start(reconcileCtx)

	r := router.Router(router.Deps{
		Auth:      authSvc,
		Tokens:    tokens,
		Orders:    orderSvc,
		Catalog:   catalogSvc,
		Settings:  settingsSvc,
		Health:    checks,
		UploadDir: cfg.UploadDir,
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")

	// Останавливаем планировщик
	scheduler.Stop()
	reconcileCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
