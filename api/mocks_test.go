package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"finanspanel/models"
	"finanspanel/service"
)

// mockCycleService is a mock implementation of service.CycleService
type mockCycleService struct {
	mock.Mock
}

func (m *mockCycleService) Summarize(ctx context.Context, table *models.LedgerTable) (*models.UploadSummary, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UploadSummary), args.Error(1)
}

func (m *mockCycleService) ListCycles(ctx context.Context, table *models.LedgerTable, accountID string) (*models.CycleList, error) {
	args := m.Called(ctx, table, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CycleList), args.Error(1)
}

func (m *mockCycleService) ComputeReport(ctx context.Context, table *models.LedgerTable, req service.AnalysisRequest) (*models.CycleReport, error) {
	args := m.Called(ctx, table, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CycleReport), args.Error(1)
}

func (m *mockCycleService) ProfitStream(ctx context.Context, table *models.LedgerTable, req service.AnalysisRequest) (*models.ProfitStream, error) {
	args := m.Called(ctx, table, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfitStream), args.Error(1)
}

// mockLedgerSource is a mock implementation of service.LedgerSource
type mockLedgerSource struct {
	mock.Mock
}

func (m *mockLedgerSource) LoadLedger(ctx context.Context, accountID string) (*models.LedgerTable, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerTable), args.Error(1)
}
