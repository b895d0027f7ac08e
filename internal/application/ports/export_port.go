package ports

import (
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
)

// TableExporter serializa una tabla al formato pedido (csv, xlsx, pdf, print).
// baseName es el nombre del archivo sin extensión, ej: "profit_ledger".
// Un formato desconocido devuelve un error que envuelve domain.ErrInvalidInput.
type TableExporter interface {
	Export(t ledger.Table, format, baseName string) (*dto.ExportFile, error)
}
