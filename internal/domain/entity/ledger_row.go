package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow fila derivada del libro de utilidades: una línea facturada con su costo resuelto.
// La utilidad no se almacena: se recalcula siempre desde Price, Cost y Qty.
type LedgerRow struct {
	ID          string
	Date        time.Time // cero = fecha ausente
	GSM         string
	Description string
	Qty         int
	Price       decimal.Decimal
	Cost        decimal.Decimal
}

// ProfitPerPiece price - cost.
func (r LedgerRow) ProfitPerPiece() decimal.Decimal {
	return r.Price.Sub(r.Cost)
}

// Profit (price - cost) * qty.
func (r LedgerRow) Profit() decimal.Decimal {
	return r.ProfitPerPiece().Mul(decimal.NewFromInt(int64(r.Qty)))
}

// Sales price * qty.
func (r LedgerRow) Sales() decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(int64(r.Qty)))
}
