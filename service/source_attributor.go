package service

import (
	"strings"

	"finanspanel/models"
)

// AttributeSource walks backward from events[idx] (inclusive) to windowStart and
// classifies the bet by the nearest preceding capital injection. Non-positive
// adjustments are skipped. Without a funding event the bet is attributed to MAIN.
func AttributeSource(events []models.Event, windowStart, idx int) models.Attribution {
	if idx >= len(events) {
		idx = len(events) - 1
	}
	if windowStart < 0 {
		windowStart = 0
	}

	for j := idx; j >= windowStart; j-- {
		e := &events[j]
		switch e.Kind.Code {
		case models.KindDeposit:
			return attribution(models.SourceMain, paymentDetail(e), j)
		case models.KindBonusGiven:
			detail := bonusDetail(e)
			return attribution(models.SourceBonus, &detail, j)
		case models.KindAdjustment:
			if e.Amount.IsPositive() {
				return attribution(models.SourceAdjustment, paymentDetail(e), j)
			}
		}
	}

	return models.Attribution{Source: models.SourceMain}
}

func attribution(source models.FundingSource, detail *string, idx int) models.Attribution {
	return models.Attribution{Source: source, Detail: detail, FundingIndex: &idx}
}

// paymentDetail joins payment method and free-text details for display
func paymentDetail(e *models.Event) *string {
	parts := make([]string, 0, 2)
	for _, p := range []string{e.PaymentMethod, e.Details} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	s := strings.Join(parts, " / ")
	return &s
}

// bonusDetail names a bonus by its details, falling back to the raw label
func bonusDetail(e *models.Event) string {
	if e.Details != "" {
		return e.Details
	}
	if e.RawLabel != "" {
		return e.RawLabel
	}
	return "Bonus"
}
