package models

import "time"

// FundingSource is the capital origin of a bet
type FundingSource string

const (
	SourceMain       FundingSource = "MAIN"
	SourceBonus      FundingSource = "BONUS"
	SourceAdjustment FundingSource = "ADJUSTMENT"
)

// Attribution is the result of walking back from a bet to its funding event
type Attribution struct {
	Source       FundingSource
	Detail       *string
	FundingIndex *int // nil when the walk found nothing
}

// ProfitRow is one settlement in the profit stream
type ProfitRow struct {
	At        *time.Time    `json:"ts"`
	Source    FundingSource `json:"source"`
	Amount    float64       `json:"amount"`
	Detail    *string       `json:"detail"`
	Matched   bool          `json:"matched"`
	Reference *string       `json:"reference,omitempty"`
	Game      string        `json:"game,omitempty"`
}

// SourceTotal sums settlements per funding source
type SourceTotal struct {
	Source FundingSource `json:"source"`
	Count  int           `json:"count"`
	Amount float64       `json:"amount"`
}

// ProfitStream is the drill-down list of settlements for a cycle window
type ProfitStream struct {
	Filename   string        `json:"filename"`
	CycleIndex int           `json:"cycle_index"`
	CycleFrom  int           `json:"cycle_from"`
	CycleTo    int           `json:"cycle_to"`
	AccountID  string        `json:"member_id"`
	Rows       []ProfitRow   `json:"rows"`
	Totals     []SourceTotal `json:"totals"`
}
