package report

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"golang.org/x/sync/errgroup"
)

// snapshot datos crudos de una corrida del libro. Las fuentes que fallaron
// quedan vacías y dejan un aviso en warnings.
type snapshot struct {
	items    []entity.BillLineItem
	itemsOK  bool
	expenses []entity.Expense
	stock    []entity.StockItem
	cached   []entity.LedgerRow
	cacheOK  bool
	warnings []string
}

// loadSnapshot consulta las cuatro fuentes en paralelo. Nunca falla: un error
// de una fuente se registra y esa colección se trata como vacía.
func (uc *ProfitReportUseCase) loadSnapshot(ctx context.Context) snapshot {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.FetchTimeout)
	defer cancel()

	var (
		s  snapshot
		mu sync.Mutex
	)
	warn := func(source string, err error) {
		uc.log.Warn().Err(err).Str("source", source).Msg("fuente no disponible, se usa colección vacía")
		mu.Lock()
		s.warnings = append(s.warnings, source+" unavailable")
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		items, err := uc.bills.AllItems(ctx)
		if err != nil {
			warn("bill items", err)
			return nil
		}
		s.items = items
		s.itemsOK = true
		return nil
	})
	g.Go(func() error {
		expenses, err := uc.expenses.List(ctx)
		if err != nil {
			warn("expenses", err)
			return nil
		}
		s.expenses = expenses
		return nil
	})
	g.Go(func() error {
		stock, err := uc.stock.List(ctx)
		if err != nil {
			warn("stock", err)
			return nil
		}
		s.stock = stock
		return nil
	})
	g.Go(func() error {
		cached, err := uc.cache.List(ctx)
		if err != nil {
			warn("profit ledger", err)
			return nil
		}
		s.cached = cached
		s.cacheOK = true
		return nil
	})
	_ = g.Wait()

	// orden estable de avisos sin importar qué goroutine terminó primero
	slices.Sort(s.warnings)
	return s
}
