package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.ProfitLedgerRepository = (*ProfitLedgerRepo)(nil)

// ProfitLedgerRepo caché del libro de utilidades sobre la tabla profit_ledger.
// La utilidad no se guarda: se recalcula al leer desde price, cost y qty.
type ProfitLedgerRepo struct {
	pool *pgxpool.Pool
}

// NewProfitLedgerRepository construye el adaptador.
func NewProfitLedgerRepository(pool *pgxpool.Pool) *ProfitLedgerRepo {
	return &ProfitLedgerRepo{pool: pool}
}

// List filas en orden de inserción. El ID lleva prefijo "pl-" para no chocar con IDs de líneas facturadas.
func (r *ProfitLedgerRepo) List(ctx context.Context) ([]entity.LedgerRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, sale_date, gsm_number, description, qty, price, cost
		FROM profit_ledger ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list profit ledger: %w", err)
	}
	defer rows.Close()

	var list []entity.LedgerRow
	for rows.Next() {
		var (
			id   int64
			date *time.Time
			row  entity.LedgerRow
		)
		if err := rows.Scan(&id, &date, &row.GSM, &row.Description, &row.Qty, &row.Price, &row.Cost); err != nil {
			return nil, fmt.Errorf("scan profit ledger: %w", err)
		}
		row.ID = "pl-" + strconv.FormatInt(id, 10)
		if date != nil {
			row.Date = *date
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Keys claves de deduplicación almacenadas.
func (r *ProfitLedgerRepo) Keys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `SELECT dedup_key FROM profit_ledger`)
	if err != nil {
		return nil, fmt.Errorf("list profit ledger keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan profit ledger key: %w", err)
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

// BulkInsert inserta en un batch; las claves ya presentes se ignoran (ON CONFLICT DO NOTHING).
func (r *ProfitLedgerRepo) BulkInsert(ctx context.Context, entries []repository.LedgerEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		var date *time.Time
		if !e.Row.Date.IsZero() {
			d := e.Row.Date
			date = &d
		}
		batch.Queue(`
			INSERT INTO profit_ledger (dedup_key, sale_date, gsm_number, description, qty, price, cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (dedup_key) DO NOTHING`,
			e.Key, date, e.Row.GSM, e.Row.Description, e.Row.Qty, e.Row.Price, e.Row.Cost,
		)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	br := tx.SendBatch(ctx, batch)
	var inserted int64
	for range entries {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return 0, fmt.Errorf("insert profit ledger: %w", err)
		}
		inserted += tag.RowsAffected()
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return inserted, nil
}
