package export

import (
	"fmt"
	"html/template"
	"io"

	appbilling "github.com/jhoicas/Repuestos-api/internal/application/billing"
)

var _ appbilling.BillPrinter = (*InvoicePrinter)(nil)

// InvoicePrinter HTML de una factura individual con impresión automática.
type InvoicePrinter struct{}

// NewInvoicePrinter construye el printer.
func NewInvoicePrinter() *InvoicePrinter { return &InvoicePrinter{} }

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Bill.Number}}</title>
<style>
  body { font-family: Arial, sans-serif; padding: 20px; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #ddd; padding: 8px; }
  th { background: #f3f3f3; }
  td.num { text-align: right; }
</style>
</head>
<body onload="window.print(); setTimeout(function () { window.close(); }, 300);">
<h2>Invoice {{.Bill.Number}}</h2>
<p><b>Customer:</b> {{.Bill.CustomerName}}</p>
<p><b>Date:</b> {{.BillDate}}</p>
<p><b>Payment Mode:</b> {{if .Bill.PaymentMode}}{{.Bill.PaymentMode}}{{else}}-{{end}}</p>
<table>
<thead><tr><th>#</th><th>GSM</th><th>Description</th><th>Qty</th><th>Price</th><th>Total</th></tr></thead>
<tbody>
{{- $d := . -}}
{{range $i, $it := .Items}}
<tr><td>{{inc $i}}</td><td>{{$it.GSMNumber}}</td><td>{{$it.Description}}</td><td class="num">{{$it.Quantity}}</td><td class="num">{{$d.Money $it.Price}}</td><td class="num">{{$d.Money $it.Total}}</td></tr>
{{- end}}
</tbody>
</table>
<h3 style="text-align:right">Total: {{.Money .Subtotal}}</h3>
</body>
</html>
`))

// RenderBill escribe el HTML de la factura escapando todos los datos.
func (InvoicePrinter) RenderBill(w io.Writer, doc appbilling.BillDocument) error {
	if err := invoiceTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("print: render invoice: %w", err)
	}
	return nil
}
