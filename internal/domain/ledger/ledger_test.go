package ledger_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(y int, m time.Month, day, hour int) time.Time {
	return time.Date(y, m, day, hour, 0, 0, 0, time.UTC)
}

func row(id string, date time.Time, gsm, desc string, qty int, price, cost string) entity.LedgerRow {
	return entity.LedgerRow{ID: id, Date: date, GSM: gsm, Description: desc, Qty: qty, Price: d(price), Cost: d(cost)}
}

// Filas del escenario de referencia: la segunda es un re-sync de la primera.
func scenarioRows() []entity.LedgerRow {
	return []entity.LedgerRow{
		row("1", at(2024, time.January, 5, 9), "80", "A", 2, "10", "6"),
		row("2", at(2024, time.January, 5, 17), "80", "A", 2, "10", "6"),
		row("3", at(2024, time.February, 1, 12), "90", "B", 1, "20", "15"),
	}
}

func scenarioExpenses() []entity.Expense {
	return []entity.Expense{{ID: "e1", Item: "Rent", Qty: 1, Amount: d("3"), CreatedAt: at(2024, time.January, 10, 8)}}
}

func sumProfit(rows []entity.LedgerRow) decimal.Decimal {
	s := decimal.Zero
	for _, r := range rows {
		s = s.Add(r.Profit())
	}
	return s
}

func sumAmount(exps []entity.Expense) decimal.Decimal {
	s := decimal.Zero
	for _, e := range exps {
		s = s.Add(e.Amount)
	}
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalizer
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeItem_CostFallback(t *testing.T) {
	cat := ledger.NewCatalog([]entity.StockItem{
		{ID: "s1", GSMNumber: "80", CostPrice: d("6")},
		{ID: "s2", GSMNumber: "80", CostPrice: d("99")}, // duplicado: gana el primero
	})

	tests := []struct {
		name     string
		item     entity.BillLineItem
		wantCost string
	}{
		{"costo propio de la línea", entity.BillLineItem{GSMNumber: "80", Quantity: 1, Price: d("10"), CostPrice: d("7")}, "7"},
		{"sin costo, cae al stock", entity.BillLineItem{GSMNumber: "80", Quantity: 1, Price: d("10")}, "6"},
		{"sin costo ni stock", entity.BillLineItem{GSMNumber: "999", Quantity: 1, Price: d("10")}, "0"},
		{"costo negativo se ignora", entity.BillLineItem{GSMNumber: "80", Quantity: 1, Price: d("10"), CostPrice: d("-3")}, "6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ledger.NormalizeItem(tt.item, cat)
			assert.True(t, d(tt.wantCost).Equal(r.Cost), "cost = %s", r.Cost)
		})
	}
}

func TestNormalizeItem_NilCatalog(t *testing.T) {
	r := ledger.NormalizeItem(entity.BillLineItem{GSMNumber: "80", Quantity: 2, Price: d("5")}, nil)
	assert.True(t, r.Cost.IsZero())
	assert.True(t, d("10").Equal(r.Profit()))
}

func TestNormalizeItem_QuantityDefaultsToOne(t *testing.T) {
	r := ledger.NormalizeItem(entity.BillLineItem{ID: 4, GSMNumber: "1", Price: d("3")}, nil)
	assert.Equal(t, 1, r.Qty)
	assert.Equal(t, "4", r.ID)
	assert.True(t, d("3").Equal(r.Profit()))
}

func TestNormalize_PreservesOrderAndProfitIdentity(t *testing.T) {
	items := []entity.BillLineItem{
		{ID: 3, GSMNumber: "c", Quantity: 3, Price: d("0.1"), CostPrice: d("0.07")},
		{ID: 1, GSMNumber: "a", Quantity: 7, Price: d("19.99"), CostPrice: d("12.333")},
		{ID: 2, GSMNumber: "b", Quantity: 1, Price: d("5")},
	}
	rows := ledger.Normalize(items, ledger.NewCatalog(nil))
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, items[i].GSMNumber, r.GSM)
		want := r.Price.Sub(r.Cost).Mul(decimal.NewFromInt(int64(r.Qty)))
		assert.True(t, want.Equal(r.Profit()), "profit exacto en fila %d", i)
	}
	// 0.1-0.07 = 0.03 * 3 = 0.09 sin deriva de coma flotante
	assert.Equal(t, "0.09", rows[0].Profit().String())
}

func TestCatalog_CodesAndCategories(t *testing.T) {
	cat := ledger.NewCatalog([]entity.StockItem{
		{GSMNumber: "80", Category: "Filters"},
		{GSMNumber: "90", Category: ""},
		{GSMNumber: "80", Category: "Brakes"},
		{GSMNumber: "70", Category: "Filters"},
	})
	assert.Equal(t, []string{"80", "90", "70"}, cat.Codes())
	assert.Equal(t, []string{"Filters", "Brakes"}, cat.Categories())
}

// ──────────────────────────────────────────────────────────────────────────────
// Deduplicator
// ──────────────────────────────────────────────────────────────────────────────

func TestDedup_ScenarioCollapsesSameDayResync(t *testing.T) {
	out := ledger.Dedup(scenarioRows(), time.UTC)
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID, "gana la primera fila vista")
	assert.Equal(t, "3", out[1].ID)
}

func TestDedup_Idempotent(t *testing.T) {
	once := ledger.Dedup(scenarioRows(), time.UTC)
	twice := ledger.Dedup(once, time.UTC)
	assert.Equal(t, once, twice)
}

func TestDedupKey_Format(t *testing.T) {
	r := row("x", at(2024, time.March, 2, 23), "80", "Oil filter", 2, "10.50", "6")
	assert.Equal(t, "2024-03-02-80-Oil filter-2-10.5", ledger.DedupKey(r, time.UTC))

	// En otra zona horaria el mismo instante cae en otro día.
	ist := time.FixedZone("IST", 5*3600+1800)
	assert.Equal(t, "2024-03-03-80-Oil filter-2-10.5", ledger.DedupKey(r, ist))
}

func TestDedup_DistinctFieldsSurvive(t *testing.T) {
	base := at(2024, time.January, 5, 9)
	rows := []entity.LedgerRow{
		row("1", base, "80", "A", 2, "10", "6"),
		row("2", base, "80", "A", 3, "10", "6"),
		row("3", base, "80", "A", 2, "11", "6"),
		row("4", base, "81", "A", 2, "10", "6"),
		row("5", base.AddDate(0, 0, 1), "80", "A", 2, "10", "6"),
		row("6", base, "80", "A", 2, "10", "1"), // el costo no forma parte de la clave
	}
	out := ledger.Dedup(rows, time.UTC)
	assert.Len(t, out, 5)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filter Engine
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterLedger_FromDateExcludesJanuary(t *testing.T) {
	rows := ledger.Dedup(scenarioRows(), time.UTC)
	out := ledger.FilterLedger(rows, ledger.Criteria{FromDate: "2024-02-01"}, nil, time.UTC)
	require.Len(t, out, 1)
	assert.Equal(t, "90", out[0].GSM)
}

func TestFilterLedger_InclusiveBounds(t *testing.T) {
	rows := []entity.LedgerRow{
		row("1", time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), "1", "A", 1, "1", "0"),
		row("2", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "1", "A", 1, "1", "0"),
	}
	out := ledger.FilterLedger(rows, ledger.Criteria{FromDate: "2024-01-31", ToDate: "2024-01-31"}, nil, time.UTC)
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)
}

func TestFilterLedger_FailsClosed(t *testing.T) {
	rows := []entity.LedgerRow{
		row("dated", at(2024, time.January, 5, 9), "1", "A", 1, "1", "0"),
		row("undated", time.Time{}, "1", "A", 1, "1", "0"),
	}

	// La fila sin fecha se excluye con o sin límites de fecha.
	for _, c := range []ledger.Criteria{{}, {ToDate: "2030-01-01"}, {Description: "A"}} {
		out := ledger.FilterLedger(rows, c, nil, time.UTC)
		require.Len(t, out, 1, "criteria %+v", c)
		assert.Equal(t, "dated", out[0].ID)
	}

	// Un límite no interpretable excluye todas las filas.
	assert.Empty(t, ledger.FilterLedger(rows, ledger.Criteria{FromDate: "05/01/2024"}, nil, time.UTC))
}

func TestFilterLedger_DescriptionCategoryAndGSM(t *testing.T) {
	cat := ledger.NewCatalog([]entity.StockItem{
		{GSMNumber: "80", Category: "Filters"},
		{GSMNumber: "90", Category: "Brakes"},
	})
	rows := []entity.LedgerRow{
		row("1", at(2024, 1, 1, 0), "80", "A", 1, "1", "0"),
		row("2", at(2024, 1, 1, 0), "90", "B", 1, "1", "0"),
		row("3", at(2024, 1, 1, 0), "77", "A", 1, "1", "0"),
	}

	assert.Len(t, ledger.FilterLedger(rows, ledger.Criteria{Description: ledger.AllOption}, cat, time.UTC), 3)
	assert.Len(t, ledger.FilterLedger(rows, ledger.Criteria{Description: "A"}, cat, time.UTC), 2)
	assert.Len(t, ledger.FilterLedger(rows, ledger.Criteria{GSM: "90"}, cat, time.UTC), 1)

	byCat := ledger.FilterLedger(rows, ledger.Criteria{Category: "Filters"}, cat, time.UTC)
	require.Len(t, byCat, 1, "la fila sin repuesto en catálogo se excluye")
	assert.Equal(t, "1", byCat[0].ID)
}

func TestFilterLedger_IdempotentAndCommutative(t *testing.T) {
	rows := append(scenarioRows(),
		row("4", at(2024, time.March, 3, 0), "80", "A", 1, "9", "1"),
		row("5", at(2024, time.February, 20, 0), "80", "C", 1, "9", "1"),
	)
	dateOnly := ledger.Criteria{FromDate: "2024-01-06", ToDate: "2024-03-31"}
	descOnly := ledger.Criteria{Description: "A"}

	a := ledger.FilterLedger(ledger.FilterLedger(rows, dateOnly, nil, time.UTC), descOnly, nil, time.UTC)
	b := ledger.FilterLedger(ledger.FilterLedger(rows, descOnly, nil, time.UTC), dateOnly, nil, time.UTC)
	assert.Equal(t, a, b)

	combined := ledger.Criteria{FromDate: dateOnly.FromDate, ToDate: dateOnly.ToDate, Description: "A"}
	once := ledger.FilterLedger(rows, combined, nil, time.UTC)
	assert.Equal(t, a, once)
	assert.Equal(t, once, ledger.FilterLedger(once, combined, nil, time.UTC))
}

func TestFilterExpenses(t *testing.T) {
	exps := []entity.Expense{
		{ID: "1", Item: "Rent", Amount: d("3"), CreatedAt: at(2024, 1, 10, 0)},
		{ID: "2", Item: "Tea", Amount: d("1"), CreatedAt: at(2024, 2, 10, 0)},
		{ID: "3", Item: "Rent", Amount: d("3")},
	}
	// el gasto sin fecha queda fuera aunque no haya rango
	assert.Len(t, ledger.FilterExpenses(exps, ledger.ExpenseCriteria{}, time.UTC), 2)
	assert.Len(t, ledger.FilterExpenses(exps, ledger.ExpenseCriteria{Item: "Rent"}, time.UTC), 1)
	out := ledger.FilterExpenses(exps, ledger.ExpenseCriteria{FromDate: "2024-02-01"}, time.UTC)
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)
}

func TestCriteria_Validate(t *testing.T) {
	assert.NoError(t, ledger.Criteria{}.Validate())
	assert.NoError(t, ledger.Criteria{FromDate: "2024-02-01", ToDate: "2024-02-29"}.Validate())
	assert.Error(t, ledger.Criteria{ToDate: "2024-02-30"}.Validate())
	assert.Error(t, ledger.ExpenseCriteria{FromDate: "ayer"}.Validate())
}

// ──────────────────────────────────────────────────────────────────────────────
// Monthly Aggregator + Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_Scenario(t *testing.T) {
	rows := ledger.Dedup(scenarioRows(), time.UTC)

	monthly := ledger.Aggregate(rows, nil, time.UTC, ledger.LocaleEnglish)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2024-01", monthly[0].Month)
	assert.True(t, d("8").Equal(monthly[0].Profit))
	assert.Equal(t, "2024-02", monthly[1].Month)
	assert.True(t, d("5").Equal(monthly[1].Profit))

	withExp := ledger.Aggregate(rows, scenarioExpenses(), time.UTC, ledger.LocaleEnglish)
	require.Len(t, withExp, 2)
	jan := withExp[0]
	assert.Equal(t, "Jan 2024", jan.Label)
	assert.True(t, d("8").Equal(jan.Profit))
	assert.True(t, d("3").Equal(jan.Expense))
	assert.True(t, d("5").Equal(jan.Net))
	assert.True(t, withExp[1].Expense.IsZero())
}

func TestAggregate_ExpenseOnlyMonthAndOrdering(t *testing.T) {
	rows := []entity.LedgerRow{row("1", at(2024, time.March, 1, 0), "1", "A", 1, "4", "1")}
	exps := []entity.Expense{
		{Amount: d("2"), CreatedAt: at(2023, time.December, 31, 0)},
		{Amount: d("1"), CreatedAt: at(2024, time.March, 9, 0)},
	}
	monthly := ledger.Aggregate(rows, exps, time.UTC, ledger.LocaleSpanish)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2023-12", monthly[0].Month)
	assert.Equal(t, "dic 2023", monthly[0].Label)
	assert.True(t, monthly[0].Profit.IsZero())
	assert.True(t, d("-2").Equal(monthly[0].Net))
	assert.Equal(t, "2024-03", monthly[1].Month)
	assert.True(t, d("2").Equal(monthly[1].Net))
}

func TestBuildView_TotalsInvariants(t *testing.T) {
	rows := ledger.Dedup(append(scenarioRows(),
		row("undated", time.Time{}, "80", "A", 1, "100", "1"),
	), time.UTC)
	exps := append(scenarioExpenses(),
		entity.Expense{Amount: d("4.25"), CreatedAt: at(2024, time.February, 2, 0)},
		entity.Expense{Amount: d("50")},
	)

	for _, c := range []ledger.Criteria{
		{},
		{FromDate: "2024-02-01"},
		{ToDate: "2024-01-31"},
		{GSM: "80"},
		{Description: "B", FromDate: "2024-01-01"},
		{FromDate: "2025-01-01"},
	} {
		v := ledger.BuildView(rows, exps, nil, c, ledger.Options{Location: time.UTC})

		monthlyProfit, monthlyExpense := decimal.Zero, decimal.Zero
		for _, m := range v.Monthly {
			monthlyProfit = monthlyProfit.Add(m.Profit)
			monthlyExpense = monthlyExpense.Add(m.Expense)
			assert.True(t, m.Profit.Sub(m.Expense).Equal(m.Net))
		}
		assert.True(t, monthlyProfit.Equal(sumProfit(v.Ledger)), "criteria %+v", c)
		assert.True(t, monthlyExpense.Equal(sumAmount(v.Expenses)), "criteria %+v", c)
		assert.True(t, v.Summary.NetTotal.Equal(v.Summary.TotalProfit.Sub(v.Summary.TotalExpense)))
		assert.True(t, v.Summary.TotalProfit.Equal(sumProfit(v.Ledger)), "criteria %+v", c)
		assert.True(t, v.Summary.TotalExpense.Equal(sumAmount(v.Expenses)), "criteria %+v", c)
		for _, r := range v.Ledger {
			assert.NotEqual(t, "undated", r.ID)
		}
	}
}

func TestBuildView_FromDateScenario(t *testing.T) {
	rows := ledger.Dedup(scenarioRows(), time.UTC)
	v := ledger.BuildView(rows, scenarioExpenses(), nil, ledger.Criteria{FromDate: "2024-02-01"}, ledger.Options{Location: time.UTC})
	assert.True(t, d("5").Equal(v.Summary.TotalProfit))
	assert.True(t, v.Summary.TotalExpense.IsZero())
	assert.True(t, d("20").Equal(v.Summary.TotalSales))
	for _, m := range v.Monthly {
		assert.NotEqual(t, "2024-01", m.Month)
	}
}

func TestSummarize_FullScenario(t *testing.T) {
	rows := ledger.Dedup(scenarioRows(), time.UTC)
	v := ledger.BuildView(rows, scenarioExpenses(), nil, ledger.Criteria{}, ledger.Options{Location: time.UTC})
	assert.Equal(t, "13", v.Summary.TotalProfit.String())
	assert.Equal(t, "3", v.Summary.TotalExpense.String())
	assert.Equal(t, "10", v.Summary.NetTotal.String())
	assert.Equal(t, "40", v.Summary.TotalSales.String())
}

func TestMonthLabelAndLocale(t *testing.T) {
	assert.Equal(t, ledger.LocaleSpanish, ledger.ResolveLocale("es-CO"))
	assert.Equal(t, ledger.LocaleEnglish, ledger.ResolveLocale("en-IN"))
	assert.Equal(t, ledger.LocaleEnglish, ledger.ResolveLocale(""))
	assert.Equal(t, "Feb 2024", ledger.MonthLabel("2024-02", ledger.LocaleEnglish))
	assert.Equal(t, "ago 2025", ledger.MonthLabel("2025-08", ledger.LocaleSpanish))
	assert.Equal(t, "not-a-month", ledger.MonthLabel("not-a-month", ledger.LocaleEnglish))
}
