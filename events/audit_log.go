package events

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// SubscribeAuditLog records every analysis event as a structured log entry
func SubscribeAuditLog(bus *Bus, logger log.FieldLogger) {
	bus.Subscribe(EventTypeLedgerPrepared, func(ctx context.Context, event Event) {
		e, ok := event.(LedgerPreparedEvent)
		if !ok {
			return
		}
		logger.WithFields(log.Fields{
			"analysis_id": e.AnalysisID.String(),
			"source":      e.Source,
			"account_id":  e.AccountID,
			"total_rows":  e.TotalRows,
			"events":      e.EventCount,
			"undated":     e.UndatedRows,
		}).Debug("Ledger prepared")
	})

	bus.Subscribe(EventTypeAnalysisCompleted, func(ctx context.Context, event Event) {
		e, ok := event.(AnalysisCompletedEvent)
		if !ok {
			return
		}
		logger.WithFields(log.Fields{
			"analysis_id": e.AnalysisID.String(),
			"operation":   e.Operation,
			"source":      e.Source,
			"account_id":  e.AccountID,
			"cycle_from":  e.CycleFrom,
			"cycle_to":    e.CycleTo,
			"duration_ms": e.Duration.Milliseconds(),
		}).Info("Analysis completed")
	})

	bus.Subscribe(EventTypeAnalysisFailed, func(ctx context.Context, event Event) {
		e, ok := event.(AnalysisFailedEvent)
		if !ok {
			return
		}
		logger.WithFields(log.Fields{
			"analysis_id": e.AnalysisID.String(),
			"operation":   e.Operation,
			"source":      e.Source,
		}).Warn("Analysis failed: " + e.Error)
	})
}
