package service

import (
	"sort"
	"strings"

	"finanspanel/models"
)

// PrepareLedger turns raw table rows into a stable, time-ordered event sequence
// restricted to one account and an optional date range. Rows whose timestamp
// cannot be parsed are kept aside as undated and never windowed.
func PrepareLedger(table *models.LedgerTable, columns models.ColumnMap, filter models.LedgerFilter) (*models.PreparedLedger, error) {
	if missing := columns.Missing(); len(missing) > 0 {
		return nil, &models.MissingColumnError{Roles: missing}
	}

	account := strings.TrimSpace(filter.AccountID)
	dateFiltered := filter.From != nil || filter.To != nil

	prepared := &models.PreparedLedger{
		Events:    make([]models.Event, 0, len(table.Rows)),
		TotalRows: table.RowCount(),
	}

	for i, row := range table.Rows {
		event := newEvent(i, row, columns)

		if account != "" && event.AccountID != account {
			continue
		}

		if event.Timestamp == nil {
			if !dateFiltered {
				prepared.Undated = append(prepared.Undated, event)
			}
			continue
		}
		if filter.From != nil && event.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && event.Timestamp.After(*filter.To) {
			continue
		}

		prepared.Events = append(prepared.Events, event)
	}

	sort.SliceStable(prepared.Events, func(i, j int) bool {
		return prepared.Events[i].Timestamp.Before(*prepared.Events[j].Timestamp)
	})

	return prepared, nil
}

func newEvent(row int, cells []string, columns models.ColumnMap) models.Event {
	label := columns.Cell(cells, models.RoleLabel)
	return models.Event{
		Row:           row,
		Timestamp:     ParseTimestamp(columns.Cell(cells, models.RoleTimestamp)),
		AccountID:     strings.TrimSpace(columns.Cell(cells, models.RoleAccountID)),
		Kind:          NormalizeKind(label),
		RawLabel:      strings.TrimSpace(label),
		Amount:        ParseAmount(columns.Cell(cells, models.RoleAmount)),
		Reference:     cleanIdentifier(columns.Cell(cells, models.RoleReference)),
		BetCID:        cleanIdentifier(columns.Cell(cells, models.RoleBetCID)),
		Game:          cleanText(columns.Cell(cells, models.RoleGame)),
		Provider:      cleanText(columns.Cell(cells, models.RoleProvider)),
		PaymentMethod: cleanText(columns.Cell(cells, models.RolePaymentMethod)),
		Details:       cleanText(columns.Cell(cells, models.RoleDetails)),
		Currency:      cleanText(columns.Cell(cells, models.RoleCurrency)),
	}
}

func cleanText(v string) string {
	if IsNullMarker(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

// AccountIDs returns the distinct account ids of a table in first-seen order
func AccountIDs(table *models.LedgerTable, columns models.ColumnMap) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, row := range table.Rows {
		id := strings.TrimSpace(columns.Cell(row, models.RoleAccountID))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
