package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"finanspanel/database"
	"finanspanel/models"
	"finanspanel/service"
)

// queryable is satisfied by both *pgxpool.Pool and pgx.Tx
type queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ledgerColumns is the column layout of tables loaded from ledger_entries.
// Header names are chosen so column resolution maps them directly to roles.
var ledgerColumns = []string{
	string(models.RoleTimestamp),
	string(models.RoleAccountID),
	string(models.RoleLabel),
	string(models.RoleAmount),
	string(models.RoleReference),
	string(models.RoleBetCID),
	string(models.RoleGame),
	string(models.RoleProvider),
	string(models.RolePaymentMethod),
	string(models.RoleDetails),
	string(models.RoleCurrency),
}

// LedgerRepository reads stored ledger exports
type LedgerRepository struct {
	db *database.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// LoadLedger returns all entries of an account as a raw ledger table, in
// insertion order, read from a single snapshot.
// An unknown account yields an empty table, not an error.
func (r *LedgerRepository) LoadLedger(ctx context.Context, accountID string) (*models.LedgerTable, error) {
	table := &models.LedgerTable{
		Filename: "ledger_entries",
		Columns:  ledgerColumns,
	}

	err := r.db.WithReadOnlyTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := loadRows(ctx, tx, accountID)
		if err != nil {
			return err
		}
		table.Rows = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	return table, nil
}

func loadRows(ctx context.Context, q queryable, accountID string) ([][]string, error) {
	query := `
		SELECT
			occurred_at,
			account_id,
			event_label,
			amount::text,
			COALESCE(reference_id, ''),
			COALESCE(bet_cid, ''),
			COALESCE(game, ''),
			COALESCE(provider, ''),
			COALESCE(payment_method, ''),
			COALESCE(details, ''),
			COALESCE(currency, '')
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		var occurredAt *time.Time
		cells := make([]string, len(ledgerColumns))
		if err := rows.Scan(
			&occurredAt,
			&cells[1],
			&cells[2],
			&cells[3],
			&cells[4],
			&cells[5],
			&cells[6],
			&cells[7],
			&cells[8],
			&cells[9],
			&cells[10],
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		if occurredAt != nil {
			cells[0] = occurredAt.UTC().Format(time.RFC3339Nano)
		}
		result = append(result, cells)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	return result, nil
}

// ListAccounts returns the distinct account ids that have stored entries
func (r *LedgerRepository) ListAccounts(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT account_id FROM ledger_entries ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect accounts: %w", err)
	}

	return accounts, nil
}

// ImportTable stores the rows of a decoded table under the given column map
// and returns the number of inserted entries. Rows without an account id are skipped.
func (r *LedgerRepository) ImportTable(ctx context.Context, table *models.LedgerTable, columns models.ColumnMap) (int64, error) {
	if missing := columns.Missing(); len(missing) > 0 {
		return 0, &models.MissingColumnError{Roles: missing}
	}

	batch := &pgx.Batch{}
	for _, row := range table.Rows {
		account := strings.TrimSpace(columns.Cell(row, models.RoleAccountID))
		if account == "" {
			continue
		}
		batch.Queue(`
			INSERT INTO ledger_entries (
				account_id, occurred_at, event_label, amount, reference_id, bet_cid,
				game, provider, payment_method, details, currency, source_file
			) VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
				NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''))`,
			account,
			timestampArg(columns.Cell(row, models.RoleTimestamp)),
			columns.Cell(row, models.RoleLabel),
			amountArg(columns.Cell(row, models.RoleAmount)),
			columns.Cell(row, models.RoleReference),
			columns.Cell(row, models.RoleBetCID),
			columns.Cell(row, models.RoleGame),
			columns.Cell(row, models.RoleProvider),
			columns.Cell(row, models.RolePaymentMethod),
			columns.Cell(row, models.RoleDetails),
			columns.Cell(row, models.RoleCurrency),
			table.Filename,
		)
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			tag, err := results.Exec()
			if err != nil {
				results.Close()
				return fmt.Errorf("failed to insert ledger entry %d: %w", i, err)
			}
			inserted += tag.RowsAffected()
		}
		return results.Close()
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// timestampArg converts a raw timestamp cell to a nullable query argument
func timestampArg(v string) *time.Time {
	return service.ParseTimestamp(v)
}

// amountArg converts a raw amount cell to its exact decimal text without rounding
func amountArg(v string) string {
	return service.ParseAmount(v).String()
}
