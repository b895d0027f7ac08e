package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRequest entrada para crear o modificar un gasto.
type ExpenseRequest struct {
	Item   string          `json:"item" validate:"required,max=200"`
	Qty    int             `json:"qty" validate:"min=0"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	Item      string          `json:"item"`
	Qty       int             `json:"qty"`
	Amount    decimal.Decimal `json:"amount"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExpenseListResponse gastos filtrados con el total del reporte (Σ monto × cantidad).
type ExpenseListResponse struct {
	Items       []ExpenseResponse `json:"items"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}
