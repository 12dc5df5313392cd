package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"storefront/config"
	"storefront/internal/database"
	"storefront/internal/export"
	"storefront/internal/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
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

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/export/main.go [json|sql] [output-file]")
		fmt.Println("  json - catalog, orders and settings as one JSON document")
		fmt.Println("  sql  - INSERT statements for every table")
		fmt.Println("  without output-file the dump goes to stdout")
		os.Exit(1)
	}

	dbCfg := config.LoadDB(log)
	db := database.ConnectDB(&dbCfg.Config, log)
	defer database.CloseDB(db, log)

	var out io.Writer = os.Stdout
	if len(os.Args) > 2 {
		f, err := os.Create(os.Args[2])
		if err != nil {
			log.Fatal("failed to create output file", zap.String("path", os.Args[2]), zap.Error(err))
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	exporter := export.NewExporter(db, log)
	ctx := context.Background()

	switch os.Args[1] {
	case "json":
		decimal.MarshalJSONWithoutQuotes = true
		log.Info("running json export")
		if err := exporter.ExportJSON(ctx, w); err != nil {
			log.Fatal("failed to export json", zap.Error(err))
		}
	case "sql":
		log.Info("running sql export")
		if err := exporter.ExportSQL(ctx, w); err != nil {
			log.Fatal("failed to export sql", zap.Error(err))
		}
	default:
		fmt.Println("unknown format:", os.Args[1])
		os.Exit(1)
	}

	log.Info("export completed successfully")
}
