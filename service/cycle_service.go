package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"finanspanel/events"
	"finanspanel/ingest"
	"finanspanel/models"
)

const (
	operationCycles       = "cycles"
	operationBrief        = "brief"
	operationProfitStream = "profit-stream"
)

type cycleService struct {
	opts ReportOptions
	bus  *events.Bus
}

// NewCycleService creates a new cycle service. The bus may be nil.
func NewCycleService(opts ReportOptions, bus *events.Bus) CycleService {
	return &cycleService{
		opts: opts.withDefaults(),
		bus:  bus,
	}
}

// analysis is the prepared state shared by every operation of one request
type analysis struct {
	id        uuid.UUID
	source    string
	accountID string
	ledger    *models.PreparedLedger
	txBus     *events.TransactionalBus
	started   time.Time
}

func (s *cycleService) Summarize(ctx context.Context, table *models.LedgerTable) (*models.UploadSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summary := ingest.Summarize(table)
	return &summary, nil
}

func (s *cycleService) ListCycles(ctx context.Context, table *models.LedgerTable, accountID string) (*models.CycleList, error) {
	a, err := s.prepare(ctx, operationCycles, table, models.LedgerFilter{AccountID: accountID})
	if err != nil {
		return nil, err
	}

	evs := a.ledger.Events
	cycles := SegmentCycles(evs, models.SegmentStrict, DefaultCycleOpener)

	list := &models.CycleList{
		Filename:  table.Filename,
		AccountID: a.accountID,
		TotalRows: a.ledger.Len(),
		Cycles:    make([]models.CycleDescriptor, 0, len(cycles)),
	}
	for _, c := range cycles {
		list.Cycles = append(list.Cycles, describeCycle(evs, c))
	}

	s.complete(a, operationCycles, 0, max(len(cycles)-1, 0))
	return list, nil
}

func (s *cycleService) ComputeReport(ctx context.Context, table *models.LedgerTable, req AnalysisRequest) (*models.CycleReport, error) {
	a, err := s.prepare(ctx, operationBrief, table, filterFor(req))
	if err != nil {
		return nil, err
	}

	evs := a.ledger.Events
	cycles := SegmentCycles(evs, models.SegmentMerged, DefaultCycleOpener)
	from, to := cycleRange(req, len(cycles))

	window, err := SelectWindow(cycles, from, to)
	if err != nil {
		return nil, s.fail(a, operationBrief, err)
	}

	opts := s.opts
	if req.LateThreshold > 0 {
		opts.LateThreshold = req.LateThreshold
	}

	report := BuildCycleReport(evs, window, MatchBets(evs, window.Start, window.End), opts)
	report.Filename = table.Filename
	report.AccountID = a.accountID
	report.GlobalOpen = SummarizeExposure(evs, MatchBets(evs, 0, len(evs)))

	log.WithFields(log.Fields{
		"analysis_id": a.id.String(),
		"account_id":  a.accountID,
		"cycle_from":  from,
		"cycle_to":    to,
		"window":      window.End - window.Start,
	}).Debug("Computed cycle report")

	s.complete(a, operationBrief, from, to)
	return &report, nil
}

func (s *cycleService) ProfitStream(ctx context.Context, table *models.LedgerTable, req AnalysisRequest) (*models.ProfitStream, error) {
	a, err := s.prepare(ctx, operationProfitStream, table, filterFor(req))
	if err != nil {
		return nil, err
	}

	evs := a.ledger.Events
	cycles := SegmentCycles(evs, models.SegmentMerged, DefaultCycleOpener)
	from, to := cycleRange(req, len(cycles))

	window, err := SelectWindow(cycles, from, to)
	if err != nil {
		return nil, s.fail(a, operationProfitStream, err)
	}

	stream := BuildProfitStream(evs, window, MatchBets(evs, window.Start, window.End))
	stream.Filename = table.Filename
	stream.AccountID = a.accountID

	s.complete(a, operationProfitStream, from, to)
	return &stream, nil
}

// prepare resolves columns and the account, then builds the time-ordered event sequence
func (s *cycleService) prepare(ctx context.Context, operation string, table *models.LedgerTable, filter models.LedgerFilter) (*analysis, error) {
	a := &analysis{
		id:      uuid.New(),
		source:  table.Filename,
		txBus:   events.NewTransactionalBus(s.bus),
		started: time.Now(),
	}

	if err := ctx.Err(); err != nil {
		return nil, s.fail(a, operation, err)
	}

	columns := ingest.ResolveColumns(table.Columns)
	if missing := columns.Missing(); len(missing) > 0 {
		return nil, s.fail(a, operation, &models.MissingColumnError{Roles: missing})
	}

	// Cycles never span accounts, so an unfiltered multi-account file is narrowed to its first account
	if filter.AccountID == "" {
		if ids := AccountIDs(table, columns); len(ids) > 0 {
			filter.AccountID = ids[0]
		}
	}
	a.accountID = filter.AccountID

	ledger, err := PrepareLedger(table, columns, filter)
	if err != nil {
		return nil, s.fail(a, operation, err)
	}
	a.ledger = ledger

	a.txBus.Publish(events.LedgerPreparedEvent{
		AnalysisID:  a.id,
		Source:      a.source,
		AccountID:   a.accountID,
		TotalRows:   ledger.TotalRows,
		EventCount:  ledger.Len(),
		UndatedRows: len(ledger.Undated),
	})

	log.WithFields(log.Fields{
		"analysis_id": a.id.String(),
		"operation":   operation,
		"source":      a.source,
		"account_id":  a.accountID,
		"rows":        ledger.TotalRows,
		"events":      ledger.Len(),
		"undated":     len(ledger.Undated),
	}).Debug("Prepared ledger")

	return a, nil
}

func (s *cycleService) complete(a *analysis, operation string, from, to int) {
	a.txBus.Publish(events.AnalysisCompletedEvent{
		AnalysisID: a.id,
		Operation:  operation,
		Source:     a.source,
		AccountID:  a.accountID,
		CycleFrom:  from,
		CycleTo:    to,
		Duration:   time.Since(a.started),
	})
	a.txBus.Flush()
}

// fail drops the request's pending events and reports the failure on its own
func (s *cycleService) fail(a *analysis, operation string, err error) error {
	a.txBus.Discard()
	if s.bus != nil {
		s.bus.Emit(context.Background(), events.AnalysisFailedEvent{
			AnalysisID: a.id,
			Operation:  operation,
			Source:     a.source,
			Error:      err.Error(),
		})
	}
	return err
}

func filterFor(req AnalysisRequest) models.LedgerFilter {
	return models.LedgerFilter{
		AccountID: req.AccountID,
		From:      req.DateFrom,
		To:        req.DateTo,
	}
}

// cycleRange applies the defaults: a single bound selects one cycle, no bound selects the last
func cycleRange(req AnalysisRequest, available int) (int, int) {
	switch {
	case req.CycleFrom != nil && req.CycleTo != nil:
		return *req.CycleFrom, *req.CycleTo
	case req.CycleFrom != nil:
		return *req.CycleFrom, *req.CycleFrom
	case req.CycleTo != nil:
		return *req.CycleTo, *req.CycleTo
	}
	// With no cycles this yields -1 and SelectWindow rejects it
	return available - 1, available - 1
}

func describeCycle(events []models.Event, c models.Cycle) models.CycleDescriptor {
	d := models.CycleDescriptor{
		Index:    c.Index,
		StartRow: c.Start,
		EndRow:   c.End,
	}

	if c.Anchor == nil {
		first := &events[c.Start]
		d.StartAt = first.Timestamp
		d.Label = CycleLabel(first.Timestamp, decimal.Zero, first.Currency, nil)
		return d
	}

	anchor := &events[*c.Anchor]
	d.StartAt = anchor.Timestamp
	d.AnchorKind = anchor.Kind.String()
	d.AnchorAmount = money(anchor.Amount)
	if anchor.Kind.Is(models.KindBonusGiven) {
		d.PaymentMethod = stringPtr(bonusDetail(anchor))
	} else {
		d.PaymentMethod = paymentDetail(anchor)
	}
	d.Label = CycleLabel(anchor.Timestamp, anchor.Amount, anchor.Currency, d.PaymentMethod)

	return d
}
