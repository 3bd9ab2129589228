package main

import (
	"context"
	"log"

	"gostays/config"
	"gostays/metrics"
	"gostays/models"
	"gostays/web"

	"github.com/rohanthewiz/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize logger
	logger.SetLogLevel(cfg.Log.Level)

	// Initialize database with dual-database architecture
	if err := models.InitDB(cfg.Database.Path); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer models.CloseDB()

	if cfg.Seed.Enabled {
		if err := models.SeedListings(); err != nil {
			logger.LogErr(err, "failed to seed demo listings")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	models.Sessions.StartSweeper(ctx, cfg.Session.IdleTTL, cfg.Session.SweepInterval)

	metrics.RegisterSessionGauge(models.Sessions.Len)
	go metrics.Serve(cfg.Metrics.Address)

	// Start server
	srv := web.NewServer(cfg.Server)
	if err := web.Run(srv, cfg.Server.Address); err != nil {
		logger.LogErr(err, "server stopped")
	}
}
