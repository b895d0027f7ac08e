package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// NormalizedDate trunca t a "YYYY-MM-DD" en la zona loc. Fecha cero → "".
func NormalizedDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(orLocal(loc)).Format(dateLayout)
}

// DedupKey clave natural de una fila: fecha-gsm-descripción-cantidad-precio.
//
// Es una aproximación: no existe un identificador común entre facturación y
// el libro sincronizado, así que dos ventas distintas del mismo día con los
// cinco campos iguales colapsan en una.
func DedupKey(r entity.LedgerRow, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(NormalizedDate(r.Date, loc))
	b.WriteByte('-')
	b.WriteString(r.GSM)
	b.WriteByte('-')
	b.WriteString(r.Description)
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(r.Qty))
	b.WriteByte('-')
	b.WriteString(r.Price.String())
	return b.String()
}

// Dedup elimina filas repetidas por DedupKey. Gana la primera vista y se
// conserva el orden de primera aparición.
func Dedup(rows []entity.LedgerRow, loc *time.Location) []entity.LedgerRow {
	seen := make(map[string]struct{}, len(rows))
	out := make([]entity.LedgerRow, 0, len(rows))
	for _, r := range rows {
		k := DedupKey(r, loc)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
