package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, gsm_number, category, description, manufacturer, unit,
		stock, minimum_stock, cost_price, selling_price, created_at, updated_at`

func scanStock(row pgx.Row) (*entity.StockItem, error) {
	var (
		s            entity.StockItem
		category     *string
		manufacturer *string
		cost         decimal.NullDecimal
	)
	err := row.Scan(&s.ID, &s.GSMNumber, &category, &s.Description, &manufacturer, &s.Unit,
		&s.Stock, &s.MinimumStock, &cost, &s.SellingPrice, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Category = stringOrEmpty(category)
	s.Manufacturer = stringOrEmpty(manufacturer)
	s.CostPrice = decimalOrZero(cost)
	return &s, nil
}

// List devuelve el catálogo en orden de alta; el orden importa para la búsqueda "primer GSM".
func (r *StockRepo) List(ctx context.Context) ([]entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []entity.StockItem
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

// GetByID obtiene un repuesto; nil, nil si no existe.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE id = $1`
	s, err := scanStock(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock by id: %w", err)
	}
	return s, nil
}

// Create persiste un repuesto nuevo.
func (r *StockRepo) Create(ctx context.Context, item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.GSMNumber, nullIfEmpty(item.Category), item.Description, nullIfEmpty(item.Manufacturer), item.Unit,
		item.Stock, item.MinimumStock, nullCost(item.CostPrice), item.SellingPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// Update reemplaza los campos editables del repuesto.
func (r *StockRepo) Update(ctx context.Context, item *entity.StockItem) error {
	query := `
		UPDATE stock
		SET gsm_number = $2, category = $3, description = $4, manufacturer = $5, unit = $6,
		    stock = $7, minimum_stock = $8, cost_price = $9, selling_price = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.GSMNumber, nullIfEmpty(item.Category), item.Description, nullIfEmpty(item.Manufacturer), item.Unit,
		item.Stock, item.MinimumStock, nullCost(item.CostPrice), item.SellingPrice, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un repuesto.
func (r *StockRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Decrement descuenta qty del primer repuesto con el código. Falla con ErrConflict si no alcanza.
func (r *StockRepo) Decrement(ctx context.Context, gsm string, qty int) (bool, error) {
	query := `
		SELECT id, stock FROM stock WHERE gsm_number = $1
		ORDER BY created_at, id LIMIT 1 FOR UPDATE`
	var (
		id      string
		current int
	)
	if err := r.q.QueryRow(ctx, query, gsm).Scan(&id, &current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lock stock: %w", err)
	}
	if current < qty {
		return true, fmt.Errorf("%w: stock insuficiente para %s (%d < %d)", domain.ErrConflict, gsm, current, qty)
	}
	if _, err := r.q.Exec(ctx, `UPDATE stock SET stock = stock - $2, updated_at = now() WHERE id = $1`, id, qty); err != nil {
		return true, fmt.Errorf("decrement stock: %w", err)
	}
	return true, nil
}

// nullCost guarda costo cero como NULL (costo desconocido).
func nullCost(d decimal.Decimal) *decimal.Decimal {
	if d.IsZero() {
		return nil
	}
	return &d
}
