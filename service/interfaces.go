package service

import (
	"context"
	"time"

	"finanspanel/models"
)

// LedgerSource loads a stored ledger for one account
type LedgerSource interface {
	// LoadLedger returns the account's entries as a raw table; an unknown account yields an empty table
	LoadLedger(ctx context.Context, accountID string) (*models.LedgerTable, error)
}

// AnalysisRequest selects what part of a ledger to analyze
type AnalysisRequest struct {
	// AccountID restricts the ledger to one account. Empty selects the first account in the source.
	AccountID string

	// CycleFrom and CycleTo select an inclusive cycle range. When only one is
	// set it selects a single cycle; when neither is set the last cycle is used.
	CycleFrom *int
	CycleTo   *int

	// DateFrom and DateTo bound event timestamps, inclusive
	DateFrom *time.Time
	DateTo   *time.Time

	// LateThreshold overrides the configured late-settlement threshold when positive
	LateThreshold time.Duration
}

// CycleService analyzes wagering cycles of decoded ledgers
type CycleService interface {
	// Summarize describes a decoded table and its column resolution
	Summarize(ctx context.Context, table *models.LedgerTable) (*models.UploadSummary, error)

	// ListCycles returns the cycle boundaries of an account
	ListCycles(ctx context.Context, table *models.LedgerTable, accountID string) (*models.CycleList, error)

	// ComputeReport reconciles the selected cycle range
	ComputeReport(ctx context.Context, table *models.LedgerTable, req AnalysisRequest) (*models.CycleReport, error)

	// ProfitStream lists the settlements of the selected cycle range with their funding source
	ProfitStream(ctx context.Context, table *models.LedgerTable, req AnalysisRequest) (*models.ProfitStream, error)
}
