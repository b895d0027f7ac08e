package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
)

// CSVWriter texto delimitado: cabecera, una fila por registro y totales. Los campos que
// contienen el delimitador, comillas o saltos de línea se entrecomillan.
type CSVWriter struct {
	Comma rune
}

// NewCSVWriter writer separado por comas.
func NewCSVWriter() *CSVWriter { return &CSVWriter{Comma: ','} }

func (CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }
func (CSVWriter) Extension() string   { return "csv" }

// Write escribe la tabla; la fila de totales, si existe, va al final.
func (c CSVWriter) Write(w io.Writer, t ledger.Table) error {
	cw := csv.NewWriter(w)
	if c.Comma != 0 {
		cw.Comma = c.Comma
	}
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("csv: cabecera: %w", err)
	}
	for _, r := range t.Rows {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("csv: filas: %w", err)
		}
	}
	if len(t.Footer) > 0 {
		if err := cw.Write(t.Footer); err != nil {
			return fmt.Errorf("csv: totales: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: escribir: %w", err)
	}
	return nil
}
