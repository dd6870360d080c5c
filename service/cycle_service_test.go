package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanspanel/events"
	"finanspanel/models"
)

func serviceTable() *models.LedgerTable {
	return &models.LedgerTable{
		Filename: "ledger.csv",
		Sheets:   []string{"csv"},
		Columns:  []string{"Date & Time", "Player ID", "Reason", "Amount", "Reference ID", "Game Name", "Payment Method", "Details", "Currency"},
		Rows: [][]string{
			{"01/03/2024 10:00", "42", "Deposit", "1000", "", "", "Papara", "", "TRY"},
			{"01/03/2024 10:01", "42", "bet_placed", "-100", "A", "Aviator", "", "", "TRY"},
			{"01/03/2024 10:04", "42", "bet_settled", "180", "A", "Aviator", "", "", "TRY"},
			{"01/03/2024 09:00", "7", "Deposit", "50", "", "", "Havale", "", "TRY"},
			{"01/03/2024 11:00", "42", "Bonus Given", "200", "", "", "", "Freespin", "TRY"},
			{"01/03/2024 11:05", "42", "bet_placed", "-60", "B", "Sweet Bonanza", "", "", "TRY"},
			{"01/03/2024 11:20", "42", "bet_settled", "20", "B", "Sweet Bonanza", "", "", "TRY"},
			{"01/03/2024 11:30", "42", "bet_placed", "-30", "C", "Sweet Bonanza", "", "", "TRY"},
		},
	}
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) handle(ctx context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newRecordingService(t *testing.T) (CycleService, *eventRecorder) {
	t.Helper()
	bus := events.NewBus()
	rec := &eventRecorder{}
	bus.Subscribe(events.EventTypeLedgerPrepared, rec.handle)
	bus.Subscribe(events.EventTypeAnalysisCompleted, rec.handle)
	bus.Subscribe(events.EventTypeAnalysisFailed, rec.handle)
	return NewCycleService(DefaultReportOptions(), bus), rec
}

func TestCycleService_ListCycles(t *testing.T) {
	svc, rec := newRecordingService(t)

	list, err := svc.ListCycles(context.Background(), serviceTable(), "42")
	require.NoError(t, err)

	assert.Equal(t, "ledger.csv", list.Filename)
	assert.Equal(t, "42", list.AccountID)
	assert.Equal(t, 7, list.TotalRows)
	require.Len(t, list.Cycles, 2)

	first := list.Cycles[0]
	assert.Equal(t, 0, first.StartRow)
	assert.Equal(t, 3, first.EndRow)
	assert.Equal(t, "DEPOSIT", first.AnchorKind)
	assert.Equal(t, 1000.0, first.AnchorAmount)
	assert.Equal(t, "Papara", *first.PaymentMethod)
	assert.Equal(t, "2024-03-01 10:00:00 • 1,000.00 TRY • [Papara]", first.Label)

	second := list.Cycles[1]
	assert.Equal(t, "BONUS_GIVEN", second.AnchorKind)
	assert.Equal(t, "Freespin", *second.PaymentMethod)

	// Prepared and completed events are delivered after success
	assert.Eventually(t, func() bool { return rec.count() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestCycleService_ListCycles_DefaultsToFirstAccount(t *testing.T) {
	svc := NewCycleService(DefaultReportOptions(), nil)

	list, err := svc.ListCycles(context.Background(), serviceTable(), "")
	require.NoError(t, err)

	assert.Equal(t, "42", list.AccountID)
	assert.Len(t, list.Cycles, 2)
}

func TestCycleService_ComputeReport_DefaultsToLastCycle(t *testing.T) {
	svc := NewCycleService(DefaultReportOptions(), nil)

	report, err := svc.ComputeReport(context.Background(), serviceTable(), AnalysisRequest{AccountID: "42"})
	require.NoError(t, err)

	assert.Equal(t, 1, report.CycleIndex)
	assert.Equal(t, 90.0, report.Turnover)
	assert.Equal(t, -70.0, report.Profit)
	assert.Equal(t, 0.0, report.Requirement)
	assert.Equal(t, 1, report.Open.Count)
	assert.Equal(t, 1, report.Late.Count)
	assert.Equal(t, 15.0, report.Late.Items[0].GapMinutes)
	assert.Equal(t, "TRY", *report.Currency)
	assert.Equal(t, "BONUS", report.LastOperation.Type)
	assert.Equal(t, "freespin", *report.LastOperation.BonusKind)

	assert.Equal(t, 1, report.GlobalOpen.Count)
	assert.Equal(t, 30.0, report.GlobalOpen.TotalAmount)
}

func TestCycleService_ComputeReport_FirstCycle(t *testing.T) {
	svc := NewCycleService(DefaultReportOptions(), nil)

	report, err := svc.ComputeReport(context.Background(), serviceTable(), AnalysisRequest{
		AccountID: "42",
		CycleFrom: intPtr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, report.CycleFrom)
	assert.Equal(t, 0, report.CycleTo)
	assert.Equal(t, 100.0, report.Turnover)
	assert.Equal(t, 80.0, report.Profit)
	assert.Equal(t, 1000.0, report.Requirement)
	assert.Equal(t, 900.0, report.Remaining)
	assert.Equal(t, 0, report.Late.Count)
}

func TestCycleService_ComputeReport_RangeAndThreshold(t *testing.T) {
	svc := NewCycleService(DefaultReportOptions(), nil)

	report, err := svc.ComputeReport(context.Background(), serviceTable(), AnalysisRequest{
		AccountID:     "42",
		CycleFrom:     intPtr(0),
		CycleTo:       intPtr(1),
		LateThreshold: 2 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, 190.0, report.Turnover)
	assert.Equal(t, 1000.0, report.Requirement)
	assert.Equal(t, 810.0, report.Remaining)
	assert.Equal(t, 2, report.Late.Count)
	assert.Equal(t, 2.0, report.Late.ThresholdMinutes)
}

func TestCycleService_ComputeReport_DateFilter(t *testing.T) {
	svc := NewCycleService(DefaultReportOptions(), nil)
	from := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)

	report, err := svc.ComputeReport(context.Background(), serviceTable(), AnalysisRequest{
		AccountID: "42",
		DateFrom:  &from,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, report.CycleIndex)
	assert.Equal(t, 4, report.EventCount)
}

func TestCycleService_ComputeReport_InvalidCycle(t *testing.T) {
	svc, rec := newRecordingService(t)

	_, err := svc.ComputeReport(context.Background(), serviceTable(), AnalysisRequest{
		AccountID: "42",
		CycleFrom: intPtr(5),
	})

	var invalid *models.InvalidCycleRangeError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 2, invalid.Available)

	// Only the failure is reported; pending events are discarded
	assert.Eventually(t, func() bool { return rec.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	rec.mu.Lock()
	_, failed := rec.events[0].(events.AnalysisFailedEvent)
	rec.mu.Unlock()
	assert.True(t, failed)
}

func TestCycleService_ComputeReport_UnknownAccount(t *testing.T) {
	svc := NewCycleService(DefaultReportOptions(), nil)

	_, err := svc.ComputeReport(context.Background(), serviceTable(), AnalysisRequest{AccountID: "999"})

	var invalid *models.InvalidCycleRangeError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 0, invalid.Available)
}

func TestCycleService_MissingColumns(t *testing.T) {
	svc := NewCycleService(DefaultReportOptions(), nil)
	table := serviceTable()
	table.Columns[3] = "Value"

	_, err := svc.ComputeReport(context.Background(), table, AnalysisRequest{})

	var missing *models.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"amount"}, missing.Roles)
}

func TestCycleService_CancelledContext(t *testing.T) {
	svc := NewCycleService(DefaultReportOptions(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ProfitStream(ctx, serviceTable(), AnalysisRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCycleService_ProfitStream(t *testing.T) {
	svc := NewCycleService(DefaultReportOptions(), nil)

	stream, err := svc.ProfitStream(context.Background(), serviceTable(), AnalysisRequest{
		AccountID: "42",
		CycleFrom: intPtr(0),
		CycleTo:   intPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, "42", stream.AccountID)
	require.Len(t, stream.Rows, 2)
	assert.Equal(t, models.SourceMain, stream.Rows[0].Source)
	assert.Equal(t, models.SourceBonus, stream.Rows[1].Source)
	assert.Equal(t, "Freespin", *stream.Rows[1].Detail)
}

func TestCycleService_Summarize(t *testing.T) {
	svc := NewCycleService(DefaultReportOptions(), nil)

	summary, err := svc.Summarize(context.Background(), serviceTable())
	require.NoError(t, err)

	assert.Equal(t, 8, summary.RowCountExact)
	assert.Empty(t, summary.Missing)
	assert.Contains(t, summary.Resolved, "game")
}
