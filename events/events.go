package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeLedgerPrepared    EventType = "ledger_prepared"
	EventTypeAnalysisCompleted EventType = "analysis_completed"
	EventTypeAnalysisFailed    EventType = "analysis_failed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// LedgerPreparedEvent records how a ledger source was narrowed before analysis
type LedgerPreparedEvent struct {
	AnalysisID  uuid.UUID
	Source      string
	AccountID   string
	TotalRows   int
	EventCount  int
	UndatedRows int
}

func (e LedgerPreparedEvent) Type() EventType {
	return EventTypeLedgerPrepared
}

// AnalysisCompletedEvent records a successful analysis request
type AnalysisCompletedEvent struct {
	AnalysisID uuid.UUID
	Operation  string
	Source     string
	AccountID  string
	CycleFrom  int
	CycleTo    int
	Duration   time.Duration
}

func (e AnalysisCompletedEvent) Type() EventType {
	return EventTypeAnalysisCompleted
}

// AnalysisFailedEvent records a rejected analysis request
type AnalysisFailedEvent struct {
	AnalysisID uuid.UUID
	Operation  string
	Source     string
	Error      string
}

func (e AnalysisFailedEvent) Type() EventType {
	return EventTypeAnalysisFailed
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers asynchronously
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds the events of one analysis request until it is known
// to have succeeded
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Pending returns the number of stashed events
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

// Flush emits stashed events on the underlying bus. Handlers get a background
// context since they outlive the request.
func (b *TransactionalBus) Flush() {
	if b.real == nil {
		b.pending = nil
		return
	}

	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing pending analysis events")

	for _, ev := range b.pending {
		b.real.Emit(context.Background(), ev)
	}
	b.pending = nil
}

// Discard drops stashed events after a failed request
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
