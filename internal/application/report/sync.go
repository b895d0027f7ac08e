package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

func (uc *ProfitReportUseCase) keysOf(rows []entity.LedgerRow) map[string]struct{} {
	keys := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		keys[ledger.DedupKey(r, uc.cfg.Location)] = struct{}{}
	}
	return keys
}

// missing entradas cuyas claves no están en la caché.
func (uc *ProfitReportUseCase) missing(rows []entity.LedgerRow, known map[string]struct{}) []repository.LedgerEntry {
	var out []repository.LedgerEntry
	for _, r := range rows {
		k := ledger.DedupKey(r, uc.cfg.Location)
		if _, ok := known[k]; ok {
			continue
		}
		out = append(out, repository.LedgerEntry{Key: k, Row: r})
	}
	return out
}

// syncInBackground guarda las filas nuevas sin bloquear al llamador.
// Los errores sólo se registran; no hay reintentos.
func (uc *ProfitReportUseCase) syncInBackground(ctx context.Context, rows []entity.LedgerRow, known map[string]struct{}) {
	entries := uc.missing(rows, known)
	if len(entries) == 0 {
		return
	}
	uc.syncWG.Add(1)
	go func() {
		defer uc.syncWG.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.SyncTimeout)
		defer cancel()

		n, err := uc.cache.BulkInsert(ctx, entries)
		if err != nil {
			uc.log.Error().Err(err).Int("candidates", len(entries)).Msg("sincronización del libro fallida")
			return
		}
		uc.log.Info().Int("candidates", len(entries)).Int64("inserted", n).Msg("libro sincronizado")
	}()
}

// WaitSync espera a que terminen las sincronizaciones en curso (apagado ordenado y tests).
func (uc *ProfitReportUseCase) WaitSync() {
	uc.syncWG.Wait()
}

// Sync reconstrucción manual: guarda en la caché todas las filas facturadas que faltan.
// A diferencia de la sincronización automática, un error de lectura se devuelve.
func (uc *ProfitReportUseCase) Sync(ctx context.Context) (*dto.LedgerSyncResponse, error) {
	items, err := uc.bills.AllItems(ctx)
	if err != nil {
		return nil, err
	}
	stock, err := uc.stock.List(ctx)
	if err != nil {
		return nil, err
	}
	known, err := uc.cache.Keys(ctx)
	if err != nil {
		return nil, err
	}
	rows := ledger.Dedup(ledger.Normalize(items, ledger.NewCatalog(stock)), uc.cfg.Location)
	entries := uc.missing(rows, known)
	n, err := uc.cache.BulkInsert(ctx, entries)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("candidates", len(entries)).Int64("inserted", n).Msg("reconstrucción manual del libro")
	return &dto.LedgerSyncResponse{Candidates: len(entries), Inserted: n}, nil
}

// LedgerRows filas guardadas en la caché del libro.
func (uc *ProfitReportUseCase) LedgerRows(ctx context.Context) ([]dto.LedgerRowResponse, error) {
	rows, err := uc.cache.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToLedgerRowResponse(r))
	}
	return out, nil
}

// BulkInsert guarda filas recibidas en la caché. Valida todas antes de escribir:
// si alguna es inválida no se inserta ninguna.
func (uc *ProfitReportUseCase) BulkInsert(ctx context.Context, in dto.LedgerBulkInsertRequest) (*dto.LedgerSyncResponse, error) {
	if len(in.Rows) == 0 {
		return nil, fmt.Errorf("%w: no hay filas", domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(in.Rows))
	entries := make([]repository.LedgerEntry, 0, len(in.Rows))
	for i, r := range in.Rows {
		if r.GSM == "" {
			return nil, fmt.Errorf("%w: fila %d sin código GSM", domain.ErrInvalidInput, i+1)
		}
		if r.Qty < 0 || r.Price.IsNegative() || r.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: fila %d con valores negativos", domain.ErrInvalidInput, i+1)
		}
		row := entity.LedgerRow{
			GSM:         r.GSM,
			Description: r.Description,
			Qty:         r.Qty,
			Price:       r.Price,
			Cost:        r.Cost,
		}
		if row.Qty == 0 {
			row.Qty = 1
		}
		if r.Date != nil {
			row.Date = *r.Date
		}
		k := ledger.DedupKey(row, uc.cfg.Location)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		entries = append(entries, repository.LedgerEntry{Key: k, Row: row})
	}
	n, err := uc.cache.BulkInsert(ctx, entries)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerSyncResponse{Candidates: len(entries), Inserted: n}, nil
}
