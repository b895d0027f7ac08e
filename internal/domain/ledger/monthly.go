package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

const monthLayout = "2006-01"

// MonthlyAggregate acumulado de utilidad y gasto de un mes de calendario.
type MonthlyAggregate struct {
	Month   string // YYYY-MM
	Label   string // ej: "Jan 2024"
	Profit  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal // Profit - Expense
}

// MonthKey devuelve "YYYY-MM" de t en la zona loc. Fecha cero → "".
func MonthKey(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(orLocal(loc)).Format(monthLayout)
}

type bucket struct {
	profit  decimal.Decimal
	expense decimal.Decimal
}

// Aggregate agrupa por mes la utilidad de las filas y el monto de los gastos.
//
// El mes se toma de la fecha propia de cada registro, independiente del rango
// filtrado aguas arriba. Un mes con solo gastos (o solo utilidad) aparece con
// el otro lado en cero. Los registros sin fecha no se agrupan.
// La salida va ordenada por mes ascendente.
func Aggregate(rows []entity.LedgerRow, expenses []entity.Expense, loc *time.Location, locale Locale) []MonthlyAggregate {
	buckets := make(map[string]*bucket)
	get := func(k string) *bucket {
		b, ok := buckets[k]
		if !ok {
			b = &bucket{profit: decimal.Zero, expense: decimal.Zero}
			buckets[k] = b
		}
		return b
	}

	for _, r := range rows {
		k := MonthKey(r.Date, loc)
		if k == "" {
			continue
		}
		b := get(k)
		b.profit = b.profit.Add(r.Profit())
	}
	for _, e := range expenses {
		k := MonthKey(e.CreatedAt, loc)
		if k == "" {
			continue
		}
		b := get(k)
		b.expense = b.expense.Add(e.Amount)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]MonthlyAggregate, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		out = append(out, MonthlyAggregate{
			Month:   k,
			Label:   MonthLabel(k, locale),
			Profit:  b.profit,
			Expense: b.expense,
			Net:     b.profit.Sub(b.expense),
		})
	}
	return out
}

// ── Etiquetas ─────────────────────────────────────────────────────────────────

// Locale idioma de las etiquetas de mes.
type Locale int

const (
	LocaleEnglish Locale = iota
	LocaleSpanish
)

var (
	supportedLocales = []language.Tag{language.English, language.Spanish}
	localeMatcher    = language.NewMatcher(supportedLocales)

	shortMonths = [...][12]string{
		LocaleEnglish: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		LocaleSpanish: {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
	}
)

// ResolveLocale elige el idioma soportado más cercano a s ("es-CO", "en-IN", ...).
// Sin coincidencia usa inglés.
func ResolveLocale(s string) Locale {
	_, idx := language.MatchStrings(localeMatcher, s)
	if idx < 0 || idx >= len(shortMonths) {
		return LocaleEnglish
	}
	return Locale(idx)
}

// MonthLabel convierte "YYYY-MM" en "mes año" abreviado. Claves inválidas se devuelven tal cual.
func MonthLabel(key string, locale Locale) string {
	t, err := time.Parse(monthLayout, key)
	if err != nil {
		return key
	}
	if locale < 0 || int(locale) >= len(shortMonths) {
		locale = LocaleEnglish
	}
	return fmt.Sprintf("%s %d", shortMonths[locale][t.Month()-1], t.Year())
}
