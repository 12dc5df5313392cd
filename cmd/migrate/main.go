package main

import (
	"context"
	"os"

	"storefront/config"
	"storefront/internal/database"
	"storefront/internal/hashing"
	"storefront/internal/logger"
	"storefront/internal/migrate"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	dbCfg := config.LoadDB(log)

	db := database.ConnectDBForMigration(&dbCfg.Config, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()
	opts := migrate.DefaultMigrateOptions()

	if err := migrate.MigrateStoreDB(ctx, db, log, opts); err != nil {
		log.Fatal("Ошибка при выполнении миграции", zap.Error(err))
	}

	log.Info("Миграция успешно завершена")

	// Первый администратор: только если заданы ADMIN_EMAIL и ADMIN_PASSWORD
	email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	repos := repository.New(db)
	authSvc := service.NewAuthService(repos.Users, hashing.NewBcrypt(0), nil, 0, log)
	u, created, err := authSvc.EnsureAdmin(ctx, email, password)
	if err != nil {
		log.Fatal("Не удалось создать администратора", zap.Error(err))
	}
	if created {
		log.Info("Администратор создан", zap.Uint("user_id", u.ID), zap.String("email", u.Email))
	} else {
		log.Info("Администратор уже существует", zap.String("email", u.Email))
	}
}
