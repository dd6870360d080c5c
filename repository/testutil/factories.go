package testutil

import (
	"finanspanel/models"
)

// LedgerColumns is the header of tables built by NewLedgerTable
var LedgerColumns = []string{"Date", "Member ID", "Event", "Amount", "Reference ID", "Game", "Provider", "Payment Method", "Currency"}

// LedgerColumnMap resolves LedgerColumns to roles
func LedgerColumnMap() models.ColumnMap {
	return models.ColumnMap{
		models.RoleTimestamp:     0,
		models.RoleAccountID:     1,
		models.RoleLabel:         2,
		models.RoleAmount:        3,
		models.RoleReference:     4,
		models.RoleGame:          5,
		models.RoleProvider:      6,
		models.RolePaymentMethod: 7,
		models.RoleCurrency:      8,
	}
}

// LedgerRow builds one row in LedgerColumns order
func LedgerRow(ts, account, label, amount, reference, game string) []string {
	return []string{ts, account, label, amount, reference, game, "", "", "TRY"}
}

// NewLedgerTable creates a table with the given rows
func NewLedgerTable(filename string, rows ...[]string) *models.LedgerTable {
	return &models.LedgerTable{
		Filename: filename,
		Sheets:   []string{"Sheet1"},
		Columns:  LedgerColumns,
		Rows:     rows,
	}
}

// DepositCycleTable is a single deposit cycle with one late settlement,
// one open bet and one orphan settlement for account "42"
func DepositCycleTable() *models.LedgerTable {
	return NewLedgerTable("ledger.csv",
		LedgerRow("2024-03-01T10:00:00Z", "42", "Deposit", "1000", "", ""),
		LedgerRow("2024-03-01T10:01:00Z", "42", "bet_placed", "-100", "A", "Sweet Bonanza"),
		LedgerRow("2024-03-01T10:11:00Z", "42", "bet_settled", "180", "A", "Sweet Bonanza"),
		LedgerRow("2024-03-01T10:12:00Z", "42", "bet_placed", "-50", "B", "Gates of Olympus"),
		LedgerRow("2024-03-01T10:13:00Z", "42", "bet_settled", "30", "C", "Gates of Olympus"),
	)
}
