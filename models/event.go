package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// KindCode enumerates the canonical ledger event kinds
type KindCode int

const (
	KindOther KindCode = iota
	KindBetPlaced
	KindBetSettled
	KindDeposit
	KindBonusGiven
	KindBonusAchieved
	KindWithdrawal
	KindWithdrawalDecline
	KindAdjustment
)

var kindNames = map[KindCode]string{
	KindBetPlaced:         "BET_PLACED",
	KindBetSettled:        "BET_SETTLED",
	KindDeposit:           "DEPOSIT",
	KindBonusGiven:        "BONUS_GIVEN",
	KindBonusAchieved:     "BONUS_ACHIEVED",
	KindWithdrawal:        "WITHDRAWAL",
	KindWithdrawalDecline: "WITHDRAWAL_DECLINE",
	KindAdjustment:        "ADJUSTMENT",
}

// EventKind is the canonical classification of a ledger row.
// Unrecognized labels are kept as KindOther with the uppercased label.
type EventKind struct {
	Code  KindCode
	Label string // only set for KindOther
}

// Canonical kinds
var (
	BetPlaced         = EventKind{Code: KindBetPlaced}
	BetSettled        = EventKind{Code: KindBetSettled}
	Deposit           = EventKind{Code: KindDeposit}
	BonusGiven        = EventKind{Code: KindBonusGiven}
	BonusAchieved     = EventKind{Code: KindBonusAchieved}
	Withdrawal        = EventKind{Code: KindWithdrawal}
	WithdrawalDecline = EventKind{Code: KindWithdrawalDecline}
	Adjustment        = EventKind{Code: KindAdjustment}
)

// OtherKind builds the pass-through kind for an unrecognized label
func OtherKind(label string) EventKind {
	return EventKind{Code: KindOther, Label: label}
}

// String returns the canonical name, or the pass-through label for other kinds
func (k EventKind) String() string {
	if k.Code == KindOther {
		return k.Label
	}
	return kindNames[k.Code]
}

// Is reports whether k has the given canonical code
func (k EventKind) Is(code KindCode) bool {
	return k.Code == code
}

// MarshalJSON encodes the kind as its string form
func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Event is one ledger row after normalization
type Event struct {
	Row           int        // position in the source table
	Timestamp     *time.Time // nil when the cell could not be parsed
	AccountID     string
	Kind          EventKind
	RawLabel      string
	Amount        decimal.Decimal
	Reference     string
	BetCID        string
	Game          string
	Provider      string
	PaymentMethod string
	Details       string
	Currency      string
}

// IsPlacement reports whether the event is a bet placement
func (e *Event) IsPlacement() bool {
	return e.Kind.Is(KindBetPlaced)
}

// IsSettlement reports whether the event is a bet settlement
func (e *Event) IsSettlement() bool {
	return e.Kind.Is(KindBetSettled)
}

// OpensCycle reports whether the event is a capital injection that starts a new cycle.
// Adjustments only count when they credit the account.
func (e *Event) OpensCycle() bool {
	switch e.Kind.Code {
	case KindDeposit, KindBonusGiven:
		return true
	case KindAdjustment:
		return e.Amount.IsPositive()
	default:
		return false
	}
}
