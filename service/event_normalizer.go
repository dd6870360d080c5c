package service

import (
	"strings"

	"finanspanel/models"
)

var (
	placedExact  = []string{"bet_placed", "bet placed"}
	placedTokens = []string{" bet_placed", " placed", "stake", "wager", "free_spins_bet", "free spins bet"}

	settledExact  = []string{"bet_settled", "bet settled"}
	settledTokens = []string{" settled", "payout", "result",
		"free_spins_settled", "free spins settled", "free_spins_winnings", "free spins winnings"}

	depositExact = []string{"deposit", "yatırım", "yatirim"}

	bonusTokens    = []string{"bonus", "promo", "free_spin_given", "free spins given", "free_spin start"}
	declineTokens  = []string{"withdrawal_decline", "withdrawal decline"}
	withdrawTokens = []string{"withdraw"}
	adjustTokens   = []string{"adjust"}
)

// NormalizeKind maps a free-text ledger label to a canonical event kind.
// Rules are ordered and the first match wins; unknown labels pass through uppercased.
func NormalizeKind(label string) models.EventKind {
	s := strings.ToLower(strings.TrimSpace(label))

	switch {
	case equalsAny(s, placedExact) || containsAny(s, placedTokens):
		return models.BetPlaced
	case equalsAny(s, settledExact) || containsAny(s, settledTokens):
		return models.BetSettled
	case equalsAny(s, depositExact):
		return models.Deposit
	case strings.Contains(s, "bonus") && strings.Contains(s, "achiev"):
		return models.BonusAchieved
	case containsAny(s, bonusTokens):
		return models.BonusGiven
	case containsAny(s, declineTokens):
		return models.WithdrawalDecline
	case containsAny(s, withdrawTokens):
		return models.Withdrawal
	case containsAny(s, adjustTokens):
		return models.Adjustment
	}

	return models.OtherKind(strings.ToUpper(strings.TrimSpace(label)))
}

func equalsAny(s string, candidates []string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
