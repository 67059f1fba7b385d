package main

import (
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"tax-engine/internal/config"
	"tax-engine/internal/engine"
	"tax-engine/internal/handler"
	"tax-engine/internal/logging"
	"tax-engine/internal/session"
	"tax-engine/internal/taxyear"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Logger: %v", err)
	}
	defer logger.Sync()

	registry := taxyear.NewRegistry(cfg.TablesDir,
		taxyear.WithRemote(cfg.TablesURL, 0), taxyear.WithLogger(logger))
	if err := registry.Warm(cfg.DefaultTaxYear); err != nil {
		logger.Fatal("default tax year unavailable", zap.Int("tax_year", cfg.DefaultTaxYear), zap.Error(err))
	}
	if err := registry.Warm(registry.Years()...); err != nil {
		logger.Warn("some tax tables failed to load", zap.Error(err))
	}

	eng := engine.New(registry, cfg.DefaultTaxYear, logger)
	h := handler.New(eng, session.NewStore(eng, logger), logger)

	logger.Info("tax engine starting",
		zap.String("port", cfg.Port),
		zap.Int("default_tax_year", cfg.DefaultTaxYear),
		zap.Ints("tax_years", registry.Years()),
	)
	if err := fasthttp.ListenAndServe(":"+cfg.Port, h.Handle); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
