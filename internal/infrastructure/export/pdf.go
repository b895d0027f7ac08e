package export

import (
	"fmt"
	"io"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// PDFWriter documento A4 con título, tabla y fila de totales (Maroto v2).
type PDFWriter struct {
	now func() time.Time
}

// NewPDFWriter construye el writer.
func NewPDFWriter() *PDFWriter { return &PDFWriter{now: time.Now} }

func (PDFWriter) ContentType() string { return "application/pdf" }
func (PDFWriter) Extension() string   { return "pdf" }

// Write genera el PDF. Con más de seis columnas la página va en horizontal.
func (p PDFWriter) Write(w io.Writer, t ledger.Table) error {
	cols := len(t.Headers)
	if cols == 0 {
		return fmt.Errorf("pdf: tabla sin columnas")
	}
	orient := orientation.Vertical
	if cols > 6 {
		orient = orientation.Horizontal
	}
	now := time.Now
	if p.now != nil {
		now = p.now
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orient).
		WithMaxGridSize(cols).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(t.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(t.Title, now(), cols))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(t))
	for i, values := range t.Rows {
		m.AddRows(dataRow(t, values, i%2 == 1, false))
	}
	if len(t.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(cols).Add(text.New("No data for selected filters.", props.Text{
			Size: 8, Align: align.Center, Top: 2, Color: colorGray,
		}))))
	}
	if len(t.Footer) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(dataRow(t, t.Footer, false, true))
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir: %w", err)
	}
	return nil
}

// titleRow: título a la izquierda, fecha de generación a la derecha.
func titleRow(title string, at time.Time, cols int) core.Row {
	left := cols - cols/3
	return row.New(14).Add(
		col.New(left).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(cols-left).Add(text.New("Generated: "+at.Format("2006-01-02 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 5, Color: colorGray,
		})),
	)
}

func headerRow(t ledger.Table) core.Row {
	cells := make([]core.Col, 0, len(t.Headers))
	for i, h := range t.Headers {
		cells = append(cells, col.New(1).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignFor(t, i),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func dataRow(t ledger.Table, values []string, striped, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	cells := make([]core.Col, 0, len(t.Headers))
	for i := range t.Headers {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cells = append(cells, col.New(1).Add(text.New(v, props.Text{
			Style: style, Size: 8, Align: alignFor(t, i), Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cells...)
	if striped {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

func alignFor(t ledger.Table, col int) align.Type {
	if isNumeric(t, col) {
		return align.Right
	}
	return align.Left
}
