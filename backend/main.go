package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"studybuddy/backend/config"
	"studybuddy/backend/routes"
	"studybuddy/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := utils.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("Error initializing database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Error getting SQL pool", "error", err)
	}
	defer sqlDB.Close()

	if err := utils.Migrate(db); err != nil {
		logger.Fatal("Error migrating database", "error", err)
	}
	if err := utils.Seed(db, logger, cfg.SeedDemo); err != nil {
		logger.Fatal("Error seeding database", "error", err)
	}

	app := routes.NewApp(db, cfg, logger)

	go func() {
		logger.Info("Server starting", "port", cfg.ServerPort)
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.Error("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}
