// main.go
package main

import (
	"context"
	"log"
	"time"

	"court-booking/cmd"
	"court-booking/internal/data/repository"
	"court-booking/internal/gateway"
	"court-booking/internal/wire"
	"court-booking/pkg/database"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := database.RunMigrations(context.Background(), db.Pool()); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment provider client
	payments := gateway.NewHTTPGateway(config.Payment.BaseURL, config.Payment.AccessToken, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, payments, config, logger)

	// Re-arm or expire pending reservations left over from the previous
	// run before accepting traffic.
	if err := app.Service.Expiration.Reconcile(context.Background()); err != nil {
		logger.Fatal("Failed to reconcile pending reservations", zap.Error(err))
	}

	if config.Booking.SweepMinutes > 0 {
		app.Service.Expiration.StartSweeper(context.Background(),
			time.Duration(config.Booking.SweepMinutes)*time.Minute)
	}
	defer app.Service.Expiration.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
