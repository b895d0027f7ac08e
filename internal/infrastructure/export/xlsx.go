package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXWriter libro de Excel con una hoja por tabla.
type XLSXWriter struct{}

// NewXLSXWriter construye el writer.
func NewXLSXWriter() *XLSXWriter { return &XLSXWriter{} }

func (XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (XLSXWriter) Extension() string { return "xlsx" }

// Write genera el libro con la fila de totales al final si la tabla la trae.
// Las columnas numéricas se escriben como número con dos decimales.
func (XLSXWriter) Write(w io.Writer, t ledger.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("xlsx: renombrar hoja: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("xlsx: estilo numérico: %w", err)
	}
	integerStyle, err := f.NewStyle(&excelize.Style{NumFmt: 1}) // 0
	if err != nil {
		return fmt.Errorf("xlsx: estilo entero: %w", err)
	}

	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	if len(t.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("xlsx: estilo cabecera: %w", err)
		}
	}

	cells := cellWriter{f: f, sheet: sheet, t: t, number: numberStyle, integer: integerStyle}
	for r, values := range t.Rows {
		if err := cells.row(r+2, values); err != nil {
			return err
		}
	}
	if len(t.Footer) > 0 {
		footerRow := len(t.Rows) + 2
		if err := cells.row(footerRow, t.Footer); err != nil {
			return err
		}
		footerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("xlsx: estilo totales: %w", err)
		}
		first, _ := excelize.CoordinatesToCellName(1, footerRow)
		if err := f.SetCellStyle(sheet, first, first, footerStyle); err != nil {
			return fmt.Errorf("xlsx: estilo totales: %w", err)
		}
	}

	for i := range t.Headers {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, 16); err != nil {
			return fmt.Errorf("xlsx: ancho de columna %s: %w", name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return nil
}

type cellWriter struct {
	f               *excelize.File
	sheet           string
	t               ledger.Table
	number, integer int
}

// row escribe una fila en la posición r (base 1). Las celdas vacías se omiten.
func (cw cellWriter) row(r int, values []string) error {
	for c, v := range values {
		if v == "" {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(c+1, r)
		if isNumeric(cw.t, c) {
			if n, err := decimal.NewFromString(v); err == nil {
				if err := cw.f.SetCellFloat(cw.sheet, cell, n.InexactFloat64(), 2, 64); err != nil {
					return fmt.Errorf("xlsx: celda %s: %w", cell, err)
				}
				style := cw.integer
				if strings.Contains(v, ".") {
					style = cw.number
				}
				if err := cw.f.SetCellStyle(cw.sheet, cell, cell, style); err != nil {
					return fmt.Errorf("xlsx: estilo %s: %w", cell, err)
				}
				continue
			}
		}
		if err := cw.f.SetCellValue(cw.sheet, cell, v); err != nil {
			return fmt.Errorf("xlsx: celda %s: %w", cell, err)
		}
	}
	return nil
}

func isNumeric(t ledger.Table, col int) bool {
	return col < len(t.Numeric) && t.Numeric[col]
}
