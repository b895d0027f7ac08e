package ledger

import (
	"strconv"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Table representación tabular de una vista filtrada. Todos los formatos de
// exportación (CSV, XLSX, PDF, impresión) serializan la misma Table.
type Table struct {
	Title   string
	Sheet   string
	Headers []string
	Numeric []bool // columnas numéricas (alineación y tipo de celda en XLSX)
	Rows    [][]string
	Footer  []string // fila de totales; vacía si no aplica
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func day(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return NormalizedDate(t, loc)
}

// LedgerTable libro de utilidades por línea vendida.
func LedgerTable(rows []entity.LedgerRow, loc *time.Location) Table {
	t := Table{
		Title:   "Profit Ledger",
		Sheet:   "Ledger",
		Headers: []string{"Date", "GSM", "Description", "Qty", "Price", "Cost", "Profit/Piece", "Total Profit"},
		Numeric: []bool{false, false, false, true, true, true, true, true},
		Rows:    make([][]string, 0, len(rows)),
	}
	total := decimal.Zero
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			day(r.Date, loc),
			r.GSM,
			r.Description,
			strconv.Itoa(r.Qty),
			money(r.Price),
			money(r.Cost),
			money(r.ProfitPerPiece()),
			money(r.Profit()),
		})
		total = total.Add(r.Profit())
	}
	t.Footer = []string{"Total", "", "", "", "", "", "", money(total)}
	return t
}

// ExpenseTable libro de gastos.
func ExpenseTable(expenses []entity.Expense, loc *time.Location) Table {
	t := Table{
		Title:   "Expense Ledger",
		Sheet:   "Expenses",
		Headers: []string{"Date", "Item", "Qty", "Amount"},
		Numeric: []bool{false, false, true, true},
		Rows:    make([][]string, 0, len(expenses)),
	}
	total := decimal.Zero
	for _, e := range expenses {
		t.Rows = append(t.Rows, []string{
			day(e.CreatedAt, loc),
			e.Item,
			strconv.Itoa(e.Qty),
			money(e.Amount),
		})
		total = total.Add(e.Amount)
	}
	t.Footer = []string{"Total", "", "", money(total)}
	return t
}

// MonthlyTable reporte mensual utilidad/gasto/neto.
func MonthlyTable(monthly []MonthlyAggregate, s Summary) Table {
	t := Table{
		Title:   "Profit Report",
		Sheet:   "Report",
		Headers: []string{"Month", "Profit", "Expense", "Net"},
		Numeric: []bool{false, true, true, true},
		Rows:    make([][]string, 0, len(monthly)),
	}
	for _, m := range monthly {
		t.Rows = append(t.Rows, []string{m.Label, money(m.Profit), money(m.Expense), money(m.Net)})
	}
	t.Footer = []string{"Total", money(s.TotalProfit), money(s.TotalExpense), money(s.NetTotal)}
	return t
}

// BillsTable listado de facturas con sus líneas (una fila por línea).
// Una factura sin líneas ocupa una fila con las columnas de detalle vacías.
func BillsTable(bills []entity.Bill, items map[int64][]entity.BillLineItem, loc *time.Location) Table {
	t := Table{
		Title:   "Billing List",
		Sheet:   "Bills",
		Headers: []string{"Bill No", "Customer", "Date", "Payment Mode", "Status", "GSM", "Description", "Qty", "Price", "Total"},
		Numeric: []bool{false, false, false, false, false, false, false, true, true, true},
	}
	grand := decimal.Zero
	for _, b := range bills {
		head := []string{b.Number(), b.CustomerName, day(b.BillDate, loc), b.PaymentMode, b.Status}
		lines := items[b.ID]
		if len(lines) == 0 {
			t.Rows = append(t.Rows, append(append([]string{}, head...), "", "", "", "", money(b.Subtotal)))
			grand = grand.Add(b.Subtotal)
			continue
		}
		for _, it := range lines {
			row := append(append([]string{}, head...),
				it.GSMNumber, it.Description, strconv.Itoa(it.Quantity), money(it.Price), money(it.Total()))
			t.Rows = append(t.Rows, row)
			grand = grand.Add(it.Total())
		}
	}
	t.Footer = []string{"Total", "", "", "", "", "", "", "", "", money(grand)}
	return t
}
