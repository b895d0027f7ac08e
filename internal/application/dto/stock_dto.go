package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRequest entrada para crear o reemplazar un repuesto.
type StockRequest struct {
	GSMNumber    string          `json:"gsm_number" validate:"required,max=64"`
	Category     string          `json:"category" validate:"max=100"`
	Description  string          `json:"description" validate:"max=500"`
	Manufacturer string          `json:"manufacturer" validate:"max=200"`
	Unit         string          `json:"unit" validate:"omitempty,max=20"`
	Stock        int             `json:"stock" validate:"min=0"`
	MinimumStock int             `json:"minimum_stock" validate:"min=0"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// StockResponse salida de un repuesto.
type StockResponse struct {
	ID           string          `json:"id"`
	GSMNumber    string          `json:"gsm_number"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Manufacturer string          `json:"manufacturer"`
	Unit         string          `json:"unit"`
	Stock        int             `json:"stock"`
	MinimumStock int             `json:"minimum_stock"`
	LowStock     bool            `json:"low_stock"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
