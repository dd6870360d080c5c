package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		dbName   string
		expected string
	}{
		{
			name:     "no database name returns base",
			baseURL:  "postgres://u:p@localhost:5432",
			expected: "postgres://u:p@localhost:5432",
		},
		{
			name:     "appends name and sslmode",
			baseURL:  "postgres://u:p@localhost:5432/",
			dbName:   "ledger",
			expected: "postgres://u:p@localhost:5432/ledger?sslmode=disable",
		},
		{
			name:     "keeps existing query parameters",
			baseURL:  "postgres://u:p@localhost:5432?connect_timeout=5",
			dbName:   "ledger",
			expected: "postgres://u:p@localhost:5432/ledger?connect_timeout=5&sslmode=disable",
		},
		{
			name:     "respects explicit sslmode",
			baseURL:  "postgres://u:p@db:5432?sslmode=require",
			dbName:   "ledger",
			expected: "postgres://u:p@db:5432/ledger?sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConstructDatabaseURL(tt.baseURL, tt.dbName))
		})
	}
}
