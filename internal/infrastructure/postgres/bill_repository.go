package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación de BillRepository (usable con pool o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, customer_name, payment_mode, status, bill_date, subtotal, created_at`

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var (
		b    entity.Bill
		mode *string
	)
	if err := row.Scan(&b.ID, &b.CustomerName, &mode, &b.Status, &b.BillDate, &b.Subtotal, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.PaymentMode = stringOrEmpty(mode)
	return &b, nil
}

// List facturas de la más reciente a la más antigua.
func (r *BillRepo) List(ctx context.Context) ([]entity.Bill, error) {
	rows, err := r.q.Query(ctx, `SELECT `+billColumns+` FROM bills ORDER BY bill_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var list []entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, *b)
	}
	return list, rows.Err()
}

// GetByID obtiene la cabecera; nil, nil si no existe.
func (r *BillRepo) GetByID(ctx context.Context, id int64) (*entity.Bill, error) {
	b, err := scanBill(r.q.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

const itemQuery = `
		SELECT i.id, i.bill_id, b.bill_date, i.gsm_number, i.description, i.quantity, i.price, i.cost_price
		FROM bill_items i
		JOIN bills b ON b.id = i.bill_id`

// Items líneas de una factura en orden de inserción.
func (r *BillRepo) Items(ctx context.Context, billID int64) ([]entity.BillLineItem, error) {
	return r.queryItems(ctx, itemQuery+` WHERE i.bill_id = $1 ORDER BY i.id`, billID)
}

// AllItems todas las líneas facturadas en orden de inserción.
func (r *BillRepo) AllItems(ctx context.Context) ([]entity.BillLineItem, error) {
	return r.queryItems(ctx, itemQuery+` ORDER BY i.id`)
}

func (r *BillRepo) queryItems(ctx context.Context, query string, args ...any) ([]entity.BillLineItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()

	var list []entity.BillLineItem
	for rows.Next() {
		var (
			it   entity.BillLineItem
			cost decimal.NullDecimal
		)
		if err := rows.Scan(&it.ID, &it.BillID, &it.BillDate, &it.GSMNumber, &it.Description, &it.Quantity, &it.Price, &cost); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		it.CostPrice = decimalOrZero(cost)
		list = append(list, it)
	}
	return list, rows.Err()
}

// Create persiste la cabecera y sus líneas. Llamar dentro de TxRunner.RunBilling para que sea atómico.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill, items []entity.BillLineItem) error {
	query := `
		INSERT INTO bills (customer_name, payment_mode, status, bill_date, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		bill.CustomerName, nullIfEmpty(bill.PaymentMode), bill.Status, bill.BillDate, bill.Subtotal, bill.CreatedAt,
	).Scan(&bill.ID)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range items {
		items[i].BillID = bill.ID
		items[i].BillDate = bill.BillDate
		batch.Queue(`
			INSERT INTO bill_items (bill_id, gsm_number, description, quantity, price, cost_price)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			bill.ID, items[i].GSMNumber, items[i].Description, items[i].Quantity, items[i].Price, nullCost(items[i].CostPrice),
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for i := range items {
		if err := br.QueryRow().Scan(&items[i].ID); err != nil {
			return fmt.Errorf("insert bill item %d: %w", i, err)
		}
	}
	return nil
}

// Delete elimina la factura; sus líneas caen por ON DELETE CASCADE.
func (r *BillRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
