package billing

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos de facturas y stock.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(bills repository.BillRepository, stock repository.StockRepository) error) error
}

// BillDocument datos de una factura listos para imprimir o generar PDF.
type BillDocument struct {
	Bill     entity.Bill
	Items    []entity.BillLineItem
	Location *time.Location
	Currency string
}

// BillDate fecha de la factura (YYYY-MM-DD) en la zona del negocio.
func (d BillDocument) BillDate() string {
	if d.Bill.BillDate.IsZero() {
		return ""
	}
	return ledger.NormalizedDate(d.Bill.BillDate, d.Location)
}

// Subtotal Σ precio × cantidad; la cabecera si la factura no tiene líneas.
func (d BillDocument) Subtotal() decimal.Decimal {
	if len(d.Items) == 0 {
		return d.Bill.Subtotal
	}
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.Total())
	}
	return total
}

// Money importe con símbolo de moneda y 2 decimales.
func (d BillDocument) Money(v decimal.Decimal) string {
	return d.Currency + v.StringFixed(2)
}

// BillPDFGenerator genera el PDF de una factura.
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, doc BillDocument) ([]byte, error)
}

// BillPrinter renderiza la factura como HTML imprimible.
type BillPrinter interface {
	RenderBill(w io.Writer, doc BillDocument) error
}
