// Package export serializa una ledger.Table en los formatos descargables:
// texto delimitado (CSV), libro de cálculo (XLSX), documento (PDF) y HTML de impresión.
//
// Todos los writers reciben la misma Table, de modo que las filas y columnas
// exportadas son idénticas entre formatos.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
)

var _ ports.TableExporter = (*Registry)(nil)

// Formatos soportados.
const (
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
	FormatPDF   = "pdf"
	FormatPrint = "print"
)

// Writer serializa una tabla en un formato concreto.
type Writer interface {
	Write(w io.Writer, t ledger.Table) error
	ContentType() string
	Extension() string
}

// Registry resuelve el writer de cada formato.
type Registry struct {
	writers map[string]Writer
}

// NewRegistry construye el registro con los cuatro formatos.
func NewRegistry() *Registry {
	return &Registry{writers: map[string]Writer{
		FormatCSV:   NewCSVWriter(),
		FormatXLSX:  NewXLSXWriter(),
		FormatPDF:   NewPDFWriter(),
		FormatPrint: NewPrintWriter(),
	}}
}

// Lookup devuelve el writer del formato (case-insensitive).
func (r *Registry) Lookup(format string) (Writer, error) {
	w, ok := r.writers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: formato de exportación %q no soportado", domain.ErrInvalidInput, format)
	}
	return w, nil
}

// FileName nombre del archivo descargable, ej: "profit_ledger.csv".
func FileName(base string, w Writer) string {
	return base + "." + w.Extension()
}

// Export serializa la tabla en memoria con el writer del formato.
func (r *Registry) Export(t ledger.Table, format, baseName string) (*dto.ExportFile, error) {
	w, err := r.Lookup(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := w.Write(&buf, t); err != nil {
		return nil, fmt.Errorf("export %s: %w", w.Extension(), err)
	}
	return &dto.ExportFile{
		FileName:    FileName(baseName, w),
		ContentType: w.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}
