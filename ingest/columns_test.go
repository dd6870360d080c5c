package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finanspanel/models"
)

func TestResolveColumns(t *testing.T) {
	t.Run("exact synonyms ignore case", func(t *testing.T) {
		columns := ResolveColumns([]string{"DATE & TIME", "player id", "Reason", "Amount", "Reference ID", "BetCID", "Game Name", "Provider", "Payment Method", "Details", "Currency"})

		assert.Equal(t, 0, columns[models.RoleTimestamp])
		assert.Equal(t, 1, columns[models.RoleAccountID])
		assert.Equal(t, 2, columns[models.RoleLabel])
		assert.Equal(t, 3, columns[models.RoleAmount])
		assert.Equal(t, 4, columns[models.RoleReference])
		assert.Equal(t, 5, columns[models.RoleBetCID])
		assert.Equal(t, 6, columns[models.RoleGame])
		assert.Equal(t, 7, columns[models.RoleProvider])
		assert.Equal(t, 8, columns[models.RolePaymentMethod])
		assert.Equal(t, 9, columns[models.RoleDetails])
		assert.Equal(t, 10, columns[models.RoleCurrency])
		assert.Empty(t, columns.Missing())
	})

	t.Run("whitespace insensitive fallback", func(t *testing.T) {
		columns := ResolveColumns([]string{" DateTime", "PlayerID", "Description", "BaseAmount", "Bet CID"})

		assert.False(t, columns.Has(models.RoleTimestamp))
		assert.Equal(t, 1, columns[models.RoleAccountID])
		assert.Equal(t, 2, columns[models.RoleLabel])
		assert.Equal(t, 3, columns[models.RoleAmount])
		assert.Equal(t, 4, columns[models.RoleBetCID])
		assert.Equal(t, []string{"timestamp"}, columns.Missing())
	})

	t.Run("earlier synonym wins", func(t *testing.T) {
		columns := ResolveColumns([]string{"Stake", "Amount"})
		assert.Equal(t, 1, columns[models.RoleAmount])
	})

	t.Run("stored ledger headers", func(t *testing.T) {
		columns := ResolveColumns([]string{"timestamp", "account_id", "event_label", "amount", "reference_id", "bet_cid", "game", "provider", "payment_method", "details", "currency"})
		assert.Len(t, columns, 11)
		for i, role := range resolveOrder {
			assert.Equal(t, i, columns[role], role)
		}
	})
}

func TestSummarize(t *testing.T) {
	table := &models.LedgerTable{
		Filename: "ledger.csv",
		Sheets:   []string{"csv"},
		Columns:  []string{"Date", "Player ID", "Amount"},
		Rows:     [][]string{{"2024-03-01", "1", "10"}, {"2024-03-02", "1", "20"}},
	}

	summary := Summarize(table)

	assert.Equal(t, "ledger.csv", summary.Filename)
	assert.Equal(t, 2, summary.RowCountExact)
	if assert.NotNil(t, summary.FirstSheet) {
		assert.Equal(t, "csv", *summary.FirstSheet)
	}
	assert.Equal(t, []string{"timestamp", "account_id", "amount"}, summary.Resolved)
	assert.Equal(t, []string{"event_label"}, summary.Missing)
}
