package models

import "time"

// Role is a semantic column of the ledger table
type Role string

const (
	RoleTimestamp     Role = "timestamp"
	RoleAccountID     Role = "account_id"
	RoleLabel         Role = "event_label"
	RoleAmount        Role = "amount"
	RoleReference     Role = "reference_id"
	RoleBetCID        Role = "bet_cid"
	RoleGame          Role = "game"
	RoleProvider      Role = "provider"
	RolePaymentMethod Role = "payment_method"
	RoleDetails       Role = "details"
	RoleCurrency      Role = "currency"
)

// RequiredRoles must be resolved before a ledger can be prepared
var RequiredRoles = []Role{RoleTimestamp, RoleAccountID, RoleLabel, RoleAmount}

// LedgerTable is a decoded, rectangular ledger export
type LedgerTable struct {
	Filename string
	Sheets   []string
	Columns  []string
	Rows     [][]string
}

// RowCount returns the exact number of data rows
func (t *LedgerTable) RowCount() int {
	return len(t.Rows)
}

// FirstSheet returns the first sheet name, or empty when the source has none
func (t *LedgerTable) FirstSheet() string {
	if len(t.Sheets) == 0 {
		return ""
	}
	return t.Sheets[0]
}

// ColumnMap maps semantic roles to column positions in a LedgerTable
type ColumnMap map[Role]int

// Has reports whether the role was resolved
func (m ColumnMap) Has(role Role) bool {
	_, ok := m[role]
	return ok
}

// Missing returns the required roles that are not resolved
func (m ColumnMap) Missing() []string {
	var missing []string
	for _, role := range RequiredRoles {
		if !m.Has(role) {
			missing = append(missing, string(role))
		}
	}
	return missing
}

// Cell returns the cell for a role in a row, or empty when unresolved or short
func (m ColumnMap) Cell(row []string, role Role) string {
	idx, ok := m[role]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// LedgerFilter narrows the prepared ledger
type LedgerFilter struct {
	AccountID string     // exact match; empty means all accounts
	From      *time.Time // inclusive
	To        *time.Time // inclusive
}

// PreparedLedger is the sorted, filtered event sequence of a ledger
type PreparedLedger struct {
	Events    []Event // timestamped events, stable-sorted by time
	Undated   []Event // events whose timestamp could not be parsed
	TotalRows int     // rows in the source table
}

// Len returns the number of windowable events
func (l *PreparedLedger) Len() int {
	return len(l.Events)
}
