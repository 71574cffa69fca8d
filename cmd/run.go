package cmd

import (
	"context"
	"fmt"

	"lotto645/api"
	"lotto645/config"
	"lotto645/database"
	"lotto645/domain/services"
	"lotto645/events"
	"lotto645/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	repo := repository.NewLottoResultRepository(db)

	eventBus := events.NewBus()

	index := services.NewExclusionIndex(repo)
	eventBus.Subscribe(events.EventTypeDrawIngested, func(ctx context.Context, event events.Event) {
		index.Invalidate()
	})

	server := api.NewServer(
		services.NewDrawGenerator(index, nil, cfg.MaxRetries),
		services.NewOverlapService(repo),
		services.NewFirstPlaceOverlapService(repo),
		services.NewFrequencyService(repo),
		repo,
		eventBus,
	)

	log.WithFields(log.Fields{
		"addr":        cfg.HTTPAddr,
		"environment": cfg.Environment,
	}).Info("Starting HTTP server")

	if err := server.Run(ctx, cfg.HTTPAddr); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Server shut down")
	return nil
}
