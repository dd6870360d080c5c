package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"finanspanel/api"
	"finanspanel/config"
	"finanspanel/database"
	"finanspanel/events"
	"finanspanel/repository"
	"finanspanel/service"
)

// Run starts the HTTP server and blocks until ctx is cancelled
func Run(ctx context.Context) error {
	cfg := config.Get()
	log.WithField("environment", cfg.Environment).Info("Starting finanspanel...")

	eventBus := events.NewBus()
	events.SubscribeAuditLog(eventBus, log.StandardLogger())

	cycleService := service.NewCycleService(reportOptions(cfg), eventBus)

	serverConfig := api.Config{
		Port:           cfg.Port,
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Service:        cycleService,
	}

	var db *database.DB
	if cfg.HasDatabase() {
		log.Info("Connecting to ledger database...")
		var err error
		db, err = database.NewConnection(ctx, database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		serverConfig.Ledgers = repository.NewLedgerRepository(db)
		log.Info("Ledger database connection established")
	} else {
		log.Info("No DATABASE_URL set, stored ledger endpoints disabled")
	}

	server := api.New(serverConfig)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down HTTP server")
	}

	log.Info("Shutdown completed")
	return nil
}

func reportOptions(cfg *config.Config) service.ReportOptions {
	return service.ReportOptions{
		LateThreshold: cfg.LateThreshold,
		TopN:          cfg.TopN,
		ItemCap:       cfg.ItemListCap,
	}
}
