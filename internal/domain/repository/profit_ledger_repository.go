package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// LedgerEntry fila del libro de utilidades junto con su clave de deduplicación.
type LedgerEntry struct {
	Key string
	Row entity.LedgerRow
}

// ProfitLedgerRepository caché persistente de filas del libro de utilidades.
type ProfitLedgerRepository interface {
	List(ctx context.Context) ([]entity.LedgerRow, error)
	// Keys claves de deduplicación ya almacenadas.
	Keys(ctx context.Context) (map[string]struct{}, error)
	// BulkInsert inserta las entradas ignorando claves repetidas; devuelve las filas nuevas.
	BulkInsert(ctx context.Context, entries []LedgerEntry) (int64, error)
}
