package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"rfc3339", "2024-03-01T10:00:00Z", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"rfc3339 with offset", "2024-03-01T13:00:00+03:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"iso with space", "2024-03-01 10:00:05", time.Date(2024, 3, 1, 10, 0, 5, 0, time.UTC)},
		{"date only", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"day first slash", "02/03/2024 10:30", time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC)},
		{"day first dot", "2.3.2024 10:30:15", time.Date(2024, 3, 2, 10, 30, 15, 0, time.UTC)},
		{"excel serial", "45352.5", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{"unix seconds", "1709287200", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"unix millis", "1709287200000", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.input)
			require.NotNil(t, got)
			assert.True(t, tt.expected.Equal(*got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestParseTimestamp_Null(t *testing.T) {
	for _, input := range []string{"", "  ", "NaT", "nan", "None", "n/a", "yesterday", "13/13/2024", "42"} {
		assert.Nil(t, ParseTimestamp(input), input)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"100", "100"},
		{"-100.50", "-100.5"},
		{"1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"12,5", "12.5"},
		{"1,234,567", "1234567"},
		{"1.234.567", "1234567"},
		{"(250.00)", "-250"},
		{"₺ 1.000,00", "1000"},
		{"TRY -75", "-75"},
		{"EUR 100", "100"},
		{"100 EUR", "100"},
		{"-50 EUR", "-50"},
		{"100EUR", "100"},
		{"1.5e3", "1500"},
		{"", "0"},
		{"nan", "0"},
		{"abc", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAmount(tt.input).String())
		})
	}
}
