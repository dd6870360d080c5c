package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts tried in order. ISO forms first, then day-first forms;
// month-first dates are never guessed.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2.1.2006 15:04:05",
	"2.1.2006 15:04",
	"2.1.2006",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006",
	"2/1/06 15:04",
	"2.1.06 15:04",
}

var nullMarkers = map[string]struct{}{
	"":      {},
	"nan":   {},
	"nat":   {},
	"none":  {},
	"null":  {},
	"nil":   {},
	"<nil>": {},
	"n/a":   {},
}

// excelEpoch is day zero of spreadsheet serial dates
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// IsNullMarker reports whether a cell is empty or one of the textual null markers
func IsNullMarker(v string) bool {
	_, ok := nullMarkers[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// ParseTimestamp parses a ledger timestamp day-first. Unparseable values return nil.
func ParseTimestamp(v string) *time.Time {
	s := strings.TrimSpace(v)
	if IsNullMarker(s) {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return parseNumericTimestamp(f)
	}

	return nil
}

// parseNumericTimestamp handles spreadsheet serial dates and unix epochs
func parseNumericTimestamp(f float64) *time.Time {
	var t time.Time
	switch {
	case f > 20000 && f < 100000:
		days := math.Floor(f)
		nanos := math.Round((f - days) * float64(24*time.Hour))
		t = excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(nanos)).Round(time.Millisecond)
	case f >= 1e9 && f < 1e10:
		t = time.Unix(int64(f), 0).UTC()
	case f >= 1e12 && f < 1e13:
		t = time.UnixMilli(int64(f)).UTC()
	default:
		return nil
	}
	return &t
}

// ParseAmount parses a signed money cell. Unparseable values are zero.
// Both "1.234,56" and "1,234.56" styles are accepted; a lone comma is a decimal comma.
func ParseAmount(v string) decimal.Decimal {
	s := strings.TrimSpace(v)
	if IsNullMarker(s) {
		return decimal.Zero
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-', r == '+':
			b.WriteRune(r)
		case (r == 'e' || r == 'E') && isExponent(runes, i):
			b.WriteRune(r)
		}
	}
	s = normalizeSeparators(b.String())

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Neg()
	}
	return d
}

// isExponent reports whether the e at runes[i] sits between a digit and a
// (optionally signed) digit, so currency codes like EUR are not read as exponents
func isExponent(runes []rune, i int) bool {
	if i == 0 || !isDigit(runes[i-1]) {
		return false
	}
	j := i + 1
	if j < len(runes) && (runes[j] == '-' || runes[j] == '+') {
		j++
	}
	return j < len(runes) && isDigit(runes[j])
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}

// cleanIdentifier trims a correlation id cell, returning empty for null markers
func cleanIdentifier(v string) string {
	s := strings.TrimSpace(v)
	if IsNullMarker(s) {
		return ""
	}
	return s
}
