package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un repuesto del catálogo de stock.
// GSMNumber es el código con el que se cruzan las líneas facturadas (no hay FK).
type StockItem struct {
	ID           string
	GSMNumber    string
	Category     string // vacío cuando el repuesto no tiene categoría
	Description  string
	Manufacturer string
	Unit         string
	Stock        int
	MinimumStock int
	CostPrice    decimal.Decimal // cero cuando no se conoce el costo
	SellingPrice decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el stock está por debajo (o igual) del mínimo configurado.
func (s StockItem) LowStock() bool {
	return s.MinimumStock > 0 && s.Stock <= s.MinimumStock
}
