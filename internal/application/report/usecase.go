// Package report arma el panel de utilidades: consulta facturas, gastos,
// stock y la caché del libro, reconcilia las filas y produce la vista
// filtrada que consumen el dashboard y las exportaciones.
package report

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Tipos de exportación del panel.
const (
	KindLedger   = "ledger"
	KindExpenses = "expenses"
	KindMonthly  = "monthly"
)

// Config parámetros del libro de utilidades.
type Config struct {
	Location     *time.Location
	Locale       ledger.Locale
	LedgerSync   bool          // sincronizar filas nuevas a la caché tras cada carga
	SyncTimeout  time.Duration // tope de la sincronización en segundo plano
	FetchTimeout time.Duration // tope de la carga de fuentes
}

// ProfitReportUseCase casos de uso del panel de utilidades.
type ProfitReportUseCase struct {
	bills    repository.BillRepository
	expenses repository.ExpenseRepository
	stock    repository.StockRepository
	cache    repository.ProfitLedgerRepository
	exporter ports.TableExporter
	cfg      Config
	log      zerolog.Logger

	syncWG sync.WaitGroup
}

// NewProfitReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewProfitReportUseCase(
	bills repository.BillRepository,
	expenses repository.ExpenseRepository,
	stock repository.StockRepository,
	cache repository.ProfitLedgerRepository,
	exporter ports.TableExporter,
	cfg Config,
	log zerolog.Logger,
) *ProfitReportUseCase {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = 15 * time.Second
	}
	return &ProfitReportUseCase{
		bills: bills, expenses: expenses, stock: stock, cache: cache,
		exporter: exporter, cfg: cfg, log: log,
	}
}

// reconciled libro deduplicado listo para filtrar.
type reconciled struct {
	rows     []entity.LedgerRow
	expenses []entity.Expense
	catalog  *ledger.Catalog
	warnings []string
}

// reconcile carga las fuentes y arma el libro a partir de las líneas facturadas.
// La caché es derivada: sólo reemplaza a las facturas cuando éstas no se pudieron
// leer, así una factura eliminada deja de contar aunque su fila siga guardada.
// Si la sincronización está activa, las filas que faltan en la caché se envían
// en segundo plano sin bloquear la respuesta.
func (uc *ProfitReportUseCase) reconcile(ctx context.Context) reconciled {
	snap := uc.loadSnapshot(ctx)
	cat := ledger.NewCatalog(snap.stock)

	source := ledger.Normalize(snap.items, cat)
	if !snap.itemsOK {
		uc.log.Warn().Int("cached", len(snap.cached)).Msg("facturas no disponibles, se usa la copia en caché del libro")
		source = snap.cached
	}
	rows := ledger.Dedup(source, uc.cfg.Location)

	switch {
	case !uc.cfg.LedgerSync:
	case !snap.itemsOK || !snap.cacheOK:
		uc.log.Debug().Bool("items", snap.itemsOK).Bool("cache", snap.cacheOK).Msg("fuentes incompletas, se omite la sincronización")
	default:
		uc.syncInBackground(ctx, rows, uc.keysOf(snap.cached))
	}

	return reconciled{rows: rows, expenses: snap.expenses, catalog: cat, warnings: snap.warnings}
}

func (uc *ProfitReportUseCase) view(ctx context.Context, c ledger.Criteria) (ledger.View, reconciled, error) {
	if err := c.Validate(); err != nil {
		return ledger.View{}, reconciled{}, err
	}
	r := uc.reconcile(ctx)
	v := ledger.BuildView(r.rows, r.expenses, r.catalog, c, ledger.Options{Location: uc.cfg.Location, Locale: uc.cfg.Locale})
	return v, r, nil
}

// Dashboard resumen, buckets mensuales, libro y gastos filtrados, más los valores
// disponibles para los selectores.
func (uc *ProfitReportUseCase) Dashboard(ctx context.Context, c ledger.Criteria) (*dto.ProfitDashboardResponse, error) {
	v, r, err := uc.view(ctx, c)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfitDashboardResponse{
		Summary: dto.SummaryResponse{
			TotalProfit:  v.Summary.TotalProfit.Round(2),
			TotalExpense: v.Summary.TotalExpense.Round(2),
			NetTotal:     v.Summary.NetTotal.Round(2),
			TotalSales:   v.Summary.TotalSales.Round(2),
		},
		Monthly:  make([]dto.MonthlyResponse, 0, len(v.Monthly)),
		Ledger:   make([]dto.LedgerRowResponse, 0, len(v.Ledger)),
		Expenses: make([]dto.ExpenseResponse, 0, len(v.Expenses)),
		Filters: dto.FilterOptions{
			Descriptions: ledger.Descriptions(r.rows),
			Categories:   r.catalog.Categories(),
			GSMCodes:     r.catalog.Codes(),
		},
		Warnings: r.warnings,
	}
	for _, m := range v.Monthly {
		resp.Monthly = append(resp.Monthly, dto.MonthlyResponse{
			Month: m.Month, Label: m.Label,
			Profit: m.Profit.Round(2), Expense: m.Expense.Round(2), Net: m.Net.Round(2),
		})
	}
	for _, row := range v.Ledger {
		resp.Ledger = append(resp.Ledger, ToLedgerRowResponse(row))
	}
	for _, e := range v.Expenses {
		resp.Expenses = append(resp.Expenses, dto.ExpenseResponse{
			ID: e.ID, Item: e.Item, Qty: e.Qty, Amount: e.Amount, Total: e.LineTotal().Round(2), CreatedAt: e.CreatedAt,
		})
	}
	return resp, nil
}

// Export documento de la vista filtrada: libro, gastos o reporte mensual.
func (uc *ProfitReportUseCase) Export(ctx context.Context, kind, format string, c ledger.Criteria) (*dto.ExportFile, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	switch kind {
	case "":
		kind = KindLedger
	case KindLedger, KindExpenses, KindMonthly:
	default:
		return nil, fmt.Errorf("%w: tipo de exportación %q no soportado", domain.ErrInvalidInput, kind)
	}

	v, _, err := uc.view(ctx, c)
	if err != nil {
		return nil, err
	}

	var (
		t    ledger.Table
		base string
	)
	switch kind {
	case KindExpenses:
		t, base = ledger.ExpenseTable(v.Expenses, uc.cfg.Location), "expense_ledger"
	case KindMonthly:
		t, base = ledger.MonthlyTable(v.Monthly, v.Summary), "profit_report"
	default:
		t, base = ledger.LedgerTable(v.Ledger, uc.cfg.Location), "profit_ledger"
	}
	f, err := uc.exporter.Export(t, format, base)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("kind", kind).Str("file", f.FileName).Int("rows", len(t.Rows)).Msg("exportación generada")
	return f, nil
}

// ToLedgerRowResponse fila del libro con la utilidad derivada.
func ToLedgerRowResponse(r entity.LedgerRow) dto.LedgerRowResponse {
	out := dto.LedgerRowResponse{
		ID:             r.ID,
		GSM:            r.GSM,
		Description:    r.Description,
		Qty:            r.Qty,
		Price:          r.Price,
		Cost:           r.Cost,
		ProfitPerPiece: r.ProfitPerPiece().Round(2),
		Profit:         r.Profit().Round(2),
	}
	if !r.Date.IsZero() {
		d := r.Date
		out.Date = &d
	}
	return out
}
