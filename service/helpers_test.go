package service

import (
	"time"

	"github.com/shopspring/decimal"

	"finanspanel/models"
)

var baseTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// at returns baseTime shifted by the given minutes
func at(minutes float64) *time.Time {
	t := baseTime.Add(time.Duration(minutes * float64(time.Minute)))
	return &t
}

func ev(minutes float64, kind models.EventKind, amount string, ref string) models.Event {
	return models.Event{
		Timestamp: at(minutes),
		AccountID: "42",
		Kind:      kind,
		Amount:    decimal.RequireFromString(amount),
		Reference: ref,
	}
}

func withGame(e models.Event, game, provider string) models.Event {
	e.Game = game
	e.Provider = provider
	return e
}

func intPtr(i int) *int {
	return &i
}

// wholeWindow covers all events as one cycle anchored at anchor (or nil)
func wholeWindow(events []models.Event, anchor *int) models.Window {
	return models.Window{From: 0, To: 0, Start: 0, End: len(events), Anchor: anchor}
}
