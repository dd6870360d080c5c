package ingest

import (
	"strings"

	"finanspanel/models"
)

// roleSynonyms lists accepted header names per role, in priority order
var roleSynonyms = map[models.Role][]string{
	models.RoleTimestamp:     {"Date & Time", "Date", "timestamp", "time", "Created At"},
	models.RoleAccountID:     {"Player ID", "member_id", "Member ID", "User ID", "Account ID", "account_id"},
	models.RoleLabel:         {"Reason", "Description", "Event", "event_label", "Type"},
	models.RoleAmount:        {"Amount", "Base Amount", "Bet Amount", "Stake"},
	models.RoleReference:     {"Reference ID", "Ref ID", "Bet ID", "Ticket", "reference_id"},
	models.RoleBetCID:        {"BetCID", "Bet CID", "bet_cid"},
	models.RoleGame:          {"Game Name", "Game"},
	models.RoleProvider:      {"Provider", "Game Provider", "Vendor"},
	models.RolePaymentMethod: {"Payment Method", "Method", "payment_method"},
	models.RoleDetails:       {"Details", "Note"},
	models.RoleCurrency:      {"Currency", "Base Currency", "System Currency"},
}

// resolveOrder fixes the resolution order so a header claimed by one role is
// not reused by a later one
var resolveOrder = []models.Role{
	models.RoleTimestamp,
	models.RoleAccountID,
	models.RoleLabel,
	models.RoleAmount,
	models.RoleReference,
	models.RoleBetCID,
	models.RoleGame,
	models.RoleProvider,
	models.RolePaymentMethod,
	models.RoleDetails,
	models.RoleCurrency,
}

// ResolveColumns maps table headers to semantic roles. A case-insensitive exact
// match wins over a match that also ignores spaces and underscores.
func ResolveColumns(headers []string) models.ColumnMap {
	columns := make(models.ColumnMap)
	claimed := make(map[int]bool)

	for _, role := range resolveOrder {
		if idx, ok := findColumn(headers, roleSynonyms[role], claimed); ok {
			columns[role] = idx
			claimed[idx] = true
		}
	}

	return columns
}

func findColumn(headers, candidates []string, claimed map[int]bool) (int, bool) {
	for _, candidate := range candidates {
		for i, h := range headers {
			if !claimed[i] && strings.EqualFold(strings.TrimSpace(h), candidate) {
				return i, true
			}
		}
	}
	for _, candidate := range candidates {
		want := squash(candidate)
		for i, h := range headers {
			if !claimed[i] && squash(h) == want {
				return i, true
			}
		}
	}
	return -1, false
}

func squash(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "\t", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// ResolvedRoles returns the resolved role names in a stable order
func ResolvedRoles(columns models.ColumnMap) []string {
	roles := make([]string, 0, len(columns))
	for _, role := range resolveOrder {
		if columns.Has(role) {
			roles = append(roles, string(role))
		}
	}
	return roles
}

// Summarize describes a decoded table and how its headers resolve
func Summarize(table *models.LedgerTable) models.UploadSummary {
	columns := ResolveColumns(table.Columns)

	summary := models.UploadSummary{
		Filename:      table.Filename,
		SheetNames:    table.Sheets,
		Columns:       table.Columns,
		RowCountExact: table.RowCount(),
		Resolved:      ResolvedRoles(columns),
		Missing:       columns.Missing(),
	}
	if first := table.FirstSheet(); first != "" {
		summary.FirstSheet = &first
	}
	if summary.Missing == nil {
		summary.Missing = []string{}
	}

	return summary
}
