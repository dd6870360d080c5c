package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finanspanel/models"
)

// labelTimeLayout is used for human-readable cycle labels
const labelTimeLayout = "2006-01-02 15:04:05"

// FormatAmount formats a money amount with thousand separators and two decimals
func FormatAmount(amount decimal.Decimal) string {
	str := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(str, ".")

	var result strings.Builder
	if amount.IsNegative() && !amount.Round(2).IsZero() {
		result.WriteRune('-')
	}

	// Add commas for thousands
	n := len(intPart)
	for i, digit := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	result.WriteRune('.')
	result.WriteString(frac)

	return result.String()
}

// CycleLabel renders "timestamp • amount currency • [method]" for a cycle anchor
func CycleLabel(at *time.Time, amount decimal.Decimal, currency string, method *string) string {
	ts := "-"
	if at != nil {
		ts = at.Format(labelTimeLayout)
	}
	label := fmt.Sprintf("%s • %s", ts, FormatAmount(amount))
	if currency != "" {
		label += " " + currency
	}
	if method != nil && *method != "" {
		label += fmt.Sprintf(" • [%s]", *method)
	}
	return label
}

// money rounds an exact amount to cents for presentation
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// round2 rounds a float for presentation
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// identifier returns the display id of a bet event
func identifier(e *models.Event) *string {
	switch {
	case e.Reference != "":
		id := e.Reference
		return &id
	case e.BetCID != "":
		id := e.BetCID
		return &id
	}
	return nil
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
