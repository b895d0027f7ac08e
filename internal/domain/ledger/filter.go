package ledger

import (
	"fmt"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// AllOption valor centinela de los selectores que equivale a "sin filtro".
const AllOption = "All"

// Criteria filtros del libro de utilidades. Todos opcionales, combinados con AND.
type Criteria struct {
	FromDate    string // YYYY-MM-DD, inclusivo
	ToDate      string // YYYY-MM-DD, inclusivo
	Description string // coincidencia exacta; "" o "All" = sin filtro
	Category    string // categoría del repuesto vía catálogo; "" o "All" = sin filtro
	GSM         string // coincidencia exacta; "" = sin filtro
}

// ExpenseCriteria filtros de gastos.
type ExpenseCriteria struct {
	FromDate string
	ToDate   string
	Item     string // coincidencia exacta; "" o "All" = sin filtro
}

// Expenses deriva los filtros aplicables a gastos (solo el rango de fechas).
func (c Criteria) Expenses() ExpenseCriteria {
	return ExpenseCriteria{FromDate: c.FromDate, ToDate: c.ToDate}
}

// Validate verifica que las fechas sean YYYY-MM-DD válidas.
func (c Criteria) Validate() error {
	return validateRange(c.FromDate, c.ToDate)
}

// Validate verifica que las fechas sean YYYY-MM-DD válidas.
func (c ExpenseCriteria) Validate() error {
	return validateRange(c.FromDate, c.ToDate)
}

func validateRange(from, to string) error {
	for _, s := range []string{from, to} {
		if s == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, s); err != nil {
			return fmt.Errorf("%w: fecha %q no es YYYY-MM-DD", domain.ErrInvalidInput, s)
		}
	}
	return nil
}

// dateRange rango de fechas de calendario ya normalizado. Las comparaciones
// se hacen sobre strings YYYY-MM-DD, cuyo orden lexicográfico es cronológico.
type dateRange struct {
	from, to string
	invalid  bool
	loc      *time.Location
}

func newDateRange(from, to string, loc *time.Location) dateRange {
	r := dateRange{loc: loc}
	var ok bool
	if r.from, ok = canonicalDate(from); !ok {
		r.invalid = true
	}
	if r.to, ok = canonicalDate(to); !ok {
		r.invalid = true
	}
	return r
}

func canonicalDate(s string) (string, bool) {
	if s == "" {
		return "", true
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", false
	}
	return t.Format(dateLayout), true
}

func (r dateRange) active() bool {
	return r.invalid || r.from != "" || r.to != ""
}

// contains falla cerrado: una fecha ausente excluye la fila siempre, porque
// no tiene mes donde agruparse; un límite inválido excluye todas.
func (r dateRange) contains(t time.Time) bool {
	if t.IsZero() || r.invalid {
		return false
	}
	if !r.active() {
		return true
	}
	d := NormalizedDate(t, r.loc)
	if r.from != "" && d < r.from {
		return false
	}
	if r.to != "" && d > r.to {
		return false
	}
	return true
}

func selected(v string) bool {
	return v != "" && v != AllOption
}

// FilterLedger devuelve la subsecuencia de filas que cumple todos los criterios.
func FilterLedger(rows []entity.LedgerRow, c Criteria, cat *Catalog, loc *time.Location) []entity.LedgerRow {
	rng := newDateRange(c.FromDate, c.ToDate, orLocal(loc))
	out := make([]entity.LedgerRow, 0, len(rows))
	for _, r := range rows {
		if c.GSM != "" && r.GSM != c.GSM {
			continue
		}
		if selected(c.Description) && r.Description != c.Description {
			continue
		}
		if selected(c.Category) {
			s, ok := cat.Lookup(r.GSM)
			if !ok || s.Category != c.Category {
				continue
			}
		}
		if !rng.contains(r.Date) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterExpenses devuelve los gastos dentro del rango y con el ítem indicado.
func FilterExpenses(expenses []entity.Expense, c ExpenseCriteria, loc *time.Location) []entity.Expense {
	rng := newDateRange(c.FromDate, c.ToDate, orLocal(loc))
	out := make([]entity.Expense, 0, len(expenses))
	for _, e := range expenses {
		if selected(c.Item) && e.Item != c.Item {
			continue
		}
		if !rng.contains(e.CreatedAt) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Descriptions descripciones distintas no vacías en orden de aparición (opciones del selector).
func Descriptions(rows []entity.LedgerRow) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range rows {
		if r.Description == "" {
			continue
		}
		if _, ok := seen[r.Description]; ok {
			continue
		}
		seen[r.Description] = struct{}{}
		out = append(out, r.Description)
	}
	return out
}
