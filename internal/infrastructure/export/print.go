package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
)

// PrintWriter documento HTML que abre el diálogo de impresión al cargarse.
type PrintWriter struct {
	tmpl *template.Template
}

var printTemplate = template.Must(template.New("print").Funcs(template.FuncMap{
	"numeric": isNumeric,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Arial, sans-serif; padding: 20px; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #ddd; padding: 8px; }
  th { background: #f3f3f3; text-align: left; }
  td.num { text-align: right; }
  tfoot td { font-weight: bold; }
</style>
</head>
<body onload="window.print(); setTimeout(function () { window.close(); }, 300);">
<h2>{{.Title}}</h2>
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- $t := . -}}
{{range .Rows}}<tr>{{range $i, $v := .}}<td{{if numeric $t $i}} class="num"{{end}}>{{$v}}</td>{{end}}</tr>
{{else}}<tr><td colspan="{{len .Headers}}">No data for selected filters.</td></tr>
{{end -}}
</tbody>
{{- if .Footer}}
<tfoot><tr>{{range $i, $v := .Footer}}<td{{if numeric $t $i}} class="num"{{end}}>{{$v}}</td>{{end}}</tr></tfoot>
{{- end}}
</table>
</body>
</html>
`))

// NewPrintWriter construye el writer.
func NewPrintWriter() *PrintWriter { return &PrintWriter{tmpl: printTemplate} }

func (PrintWriter) ContentType() string { return "text/html; charset=utf-8" }
func (PrintWriter) Extension() string   { return "html" }

// Write renderiza la tabla escapando todo el contenido.
func (p PrintWriter) Write(w io.Writer, t ledger.Table) error {
	tmpl := p.tmpl
	if tmpl == nil {
		tmpl = printTemplate
	}
	if err := tmpl.Execute(w, t); err != nil {
		return fmt.Errorf("print: render: %w", err)
	}
	return nil
}
