package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"finanspanel/config"
	"finanspanel/database"
	"finanspanel/ingest"
	"finanspanel/repository"
)

// Import stores ledger files in the ledger database
func Import(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("usage: finanspanel import <file> [file...]")
	}

	cfg := config.Get()
	if !cfg.HasDatabase() {
		return fmt.Errorf("DATABASE_URL is required for import")
	}

	db, err := database.NewConnection(ctx, database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repo := repository.NewLedgerRepository(db)

	for _, path := range paths {
		inserted, err := importFile(ctx, repo, path)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"file":     path,
			"inserted": inserted,
		}).Info("Imported ledger file")
	}

	accounts, err := repo.ListAccounts(ctx)
	if err != nil {
		return err
	}
	log.WithField("accounts", len(accounts)).Info("Ledger database updated")

	return nil
}

func importFile(ctx context.Context, repo *repository.LedgerRepository, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := ingest.Decode(path, f)
	if err != nil {
		return 0, err
	}

	return repo.ImportTable(ctx, table, ingest.ResolveColumns(table.Columns))
}
