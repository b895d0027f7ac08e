package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto del negocio. Independiente de las facturas.
type Expense struct {
	ID        string
	Item      string
	Qty       int
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// LineTotal monto × cantidad (total del reporte de gastos).
func (e Expense) LineTotal() decimal.Decimal {
	qty := e.Qty
	if qty <= 0 {
		qty = 1
	}
	return e.Amount.Mul(decimal.NewFromInt(int64(qty)))
}
