package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura (BillingList original).
const (
	BillStatusPending = "Pending"
	BillStatusPaid    = "Paid"
	BillStatusUnpaid  = "Unpaid"
)

// Bill cabecera de una factura de venta.
type Bill struct {
	ID           int64
	CustomerName string
	PaymentMode  string
	Status       string
	BillDate     time.Time
	Subtotal     decimal.Decimal
	CreatedAt    time.Time
}

// Number devuelve el número visible de la factura, ej: "INV-0007".
func (b Bill) Number() string {
	return fmt.Sprintf("INV-%04d", b.ID)
}

// BillLineItem una línea vendida de una factura. Es inmutable una vez creada.
// BillDate en cero significa fecha ausente o no interpretable.
type BillLineItem struct {
	ID          int64
	BillID      int64
	BillDate    time.Time
	GSMNumber   string
	Description string
	Quantity    int
	Price       decimal.Decimal
	CostPrice   decimal.Decimal // cero cuando la línea no trae costo propio
}

// Total precio × cantidad de la línea.
func (it BillLineItem) Total() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
