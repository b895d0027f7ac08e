package ledger

import (
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Summary totales de las tarjetas del dashboard.
type Summary struct {
	TotalProfit  decimal.Decimal // Σ monthly.profit
	TotalExpense decimal.Decimal // Σ gastos filtrados
	NetTotal     decimal.Decimal // TotalProfit - TotalExpense
	TotalSales   decimal.Decimal // Σ price*qty del libro filtrado
}

// Summarize calcula los totales. El gasto se suma sobre los registros filtrados
// y no sobre los buckets mensuales.
func Summarize(monthly []MonthlyAggregate, rows []entity.LedgerRow, expenses []entity.Expense) Summary {
	s := Summary{
		TotalProfit:  decimal.Zero,
		TotalExpense: decimal.Zero,
		TotalSales:   decimal.Zero,
	}
	for _, m := range monthly {
		s.TotalProfit = s.TotalProfit.Add(m.Profit)
	}
	for _, e := range expenses {
		s.TotalExpense = s.TotalExpense.Add(e.Amount)
	}
	for _, r := range rows {
		s.TotalSales = s.TotalSales.Add(r.Sales())
	}
	s.NetTotal = s.TotalProfit.Sub(s.TotalExpense)
	return s
}

// Options parámetros de presentación del libro.
type Options struct {
	Location *time.Location
	Locale   Locale
}

// View vista filtrada completa: la consumen el dashboard y todas las exportaciones.
type View struct {
	Ledger   []entity.LedgerRow
	Expenses []entity.Expense
	Monthly  []MonthlyAggregate
	Summary  Summary
}

// BuildView filtra filas (ya deduplicadas) y gastos, agrega por mes y calcula totales.
func BuildView(rows []entity.LedgerRow, expenses []entity.Expense, cat *Catalog, c Criteria, opts Options) View {
	ledgerRows := FilterLedger(rows, c, cat, opts.Location)
	exp := FilterExpenses(expenses, c.Expenses(), opts.Location)
	monthly := Aggregate(ledgerRows, exp, opts.Location, opts.Locale)
	return View{
		Ledger:   ledgerRows,
		Expenses: exp,
		Monthly:  monthly,
		Summary:  Summarize(monthly, ledgerRows, exp),
	}
}
