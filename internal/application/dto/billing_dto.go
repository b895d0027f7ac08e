package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillItemRequest una línea de factura.
type BillItemRequest struct {
	GSMNumber   string          `json:"gsm_number" validate:"required,max=64"`
	Description string          `json:"description" validate:"max=500"`
	Quantity    int             `json:"quantity" validate:"min=1"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

// CreateBillRequest entrada para crear una factura con sus líneas.
type CreateBillRequest struct {
	CustomerName string            `json:"customer_name" validate:"required,max=200"`
	PaymentMode  string            `json:"payment_mode" validate:"max=50"`
	Status       string            `json:"status" validate:"omitempty,oneof=Pending Paid Unpaid"`
	BillDate     *time.Time        `json:"bill_date"`
	Items        []BillItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ConfirmDraftRequest datos de cabecera al confirmar el borrador.
type ConfirmDraftRequest struct {
	CustomerName string `json:"customer_name" validate:"required,max=200"`
	PaymentMode  string `json:"payment_mode" validate:"max=50"`
	Status       string `json:"status" validate:"omitempty,oneof=Pending Paid Unpaid"`
}

// BillResponse cabecera de factura.
type BillResponse struct {
	ID           int64           `json:"id"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	PaymentMode  string          `json:"payment_mode"`
	Status       string          `json:"status"`
	BillDate     time.Time       `json:"bill_date"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BillItemResponse línea de factura.
type BillItemResponse struct {
	ID          int64           `json:"id"`
	BillID      int64           `json:"bill_id"`
	GSMNumber   string          `json:"gsm_number"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Total       decimal.Decimal `json:"total"`
}

// BillDetailResponse factura con sus líneas.
type BillDetailResponse struct {
	BillResponse
	Items []BillItemResponse `json:"items"`
}

// DraftBillResponse borrador de factura de la sesión.
type DraftBillResponse struct {
	Items    []BillItemRequest `json:"items"`
	Subtotal decimal.Decimal   `json:"subtotal"`
}
