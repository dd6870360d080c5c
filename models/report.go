package models

import "time"

// CycleReport is the reconciliation summary of a cycle window
type CycleReport struct {
	Filename   string  `json:"filename"`
	CycleIndex int     `json:"cycle_index"`
	CycleFrom  int     `json:"cycle_from"`
	CycleTo    int     `json:"cycle_to"`
	AccountID  string  `json:"member_id"`
	Currency   *string `json:"currency"`

	WindowFrom *time.Time `json:"window_from"`
	WindowTo   *time.Time `json:"window_to"`
	EventCount int        `json:"event_count"`

	Turnover       float64 `json:"turnover"`
	PlacementCount int     `json:"placement_count"`
	Profit         float64 `json:"profit"`
	Requirement    float64 `json:"requirement"`
	Remaining      float64 `json:"remaining"`

	LastOperation    *LastOperation    `json:"last_op"`
	WagerSinceLastOp WagerWindow       `json:"wager_since_last_op"`
	Open             OpenBets          `json:"open"`
	Late             LateSettlements   `json:"late"`
	Missing          MissingPlacements `json:"missing_placements"`
	TopGames         Rankings          `json:"top_games"`
	TopProviders     Rankings          `json:"top_providers"`
	GlobalOpen       Exposure          `json:"global_open"`
}

// LastOperation is the most recent funding event inside the window
type LastOperation struct {
	Type        string     `json:"type"` // DEPOSIT | BONUS | ADJUSTMENT
	At          *time.Time `json:"ts"`
	Amount      float64    `json:"amount"`
	Method      *string    `json:"method"`
	BonusDetail *string    `json:"bonus_detail"`
	BonusKind   *string    `json:"bonus_kind"`
}

// WagerWindow is the turnover placed between the last funding event and the window end
type WagerWindow struct {
	From  *time.Time `json:"window_from"`
	To    *time.Time `json:"window_to"`
	Total float64    `json:"wager_total"`
	Count int        `json:"wager_count"`
}

// OpenItem is an unsettled placement
type OpenItem struct {
	ID       *string    `json:"id"`
	PlacedAt *time.Time `json:"placed_ts"`
	Amount   float64    `json:"amount"`
	Game     string     `json:"game,omitempty"`
}

// OpenBets summarizes unsettled placements. Items are capped; totals are not.
type OpenBets struct {
	Count       int        `json:"open_count"`
	TotalAmount float64    `json:"open_total_amount"`
	Items       []OpenItem `json:"items"`
}

// LateItem is a matched bet whose settlement exceeded the threshold
type LateItem struct {
	ID            *string    `json:"id"`
	PlacedAt      *time.Time `json:"placed_ts"`
	SettledAt     *time.Time `json:"settled_ts"`
	GapMinutes    float64    `json:"gap_minutes"`
	PlacedAmount  float64    `json:"placed_amount"`
	SettledAmount float64    `json:"settled_amount"`
}

// LateSettlements summarizes delayed settlements
type LateSettlements struct {
	ThresholdMinutes float64    `json:"threshold_minutes"`
	Count            int        `json:"late_gap_count"`
	TotalMinutes     float64    `json:"late_gap_total_minutes"`
	Items            []LateItem `json:"items"`
}

// MissingItem is a settlement without a recorded placement
type MissingItem struct {
	ID        *string    `json:"id"`
	SettledAt *time.Time `json:"settled_ts"`
	Amount    float64    `json:"amount"`
}

// MissingPlacements summarizes settlement-only anomalies
type MissingPlacements struct {
	Count       int           `json:"count"`
	TotalAmount float64       `json:"total_amount"`
	Items       []MissingItem `json:"items"`
}

// GameStat aggregates bets for one game or provider
type GameStat struct {
	Name     string  `json:"name"`
	Bets     int     `json:"bets"`
	Turnover float64 `json:"wager"`
	Settled  float64 `json:"settled"`
	Net      float64 `json:"profit"`
	GGR      float64 `json:"ggr"`
}

// Rankings holds the top entries by net profit and by turnover
type Rankings struct {
	MostProfitable []GameStat `json:"most_profitable"`
	MostWagered    []GameStat `json:"most_wagered"`
}

// Exposure is the unsettled amount across a whole account ledger
type Exposure struct {
	Count       int     `json:"open_count"`
	TotalAmount float64 `json:"open_total_amount"`
}
