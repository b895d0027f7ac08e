// Package ledger concilia las líneas facturadas contra el catálogo de stock y
// construye el libro de utilidades: normalización, deduplicación, filtros,
// agregación mensual y totales.
//
// Todo el paquete es puro y síncrono: recibe colecciones en memoria y devuelve
// colecciones nuevas sin modificar las de entrada.
package ledger

import (
	"strconv"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Catalog índice del stock por código GSM. Ante códigos repetidos gana el primero.
type Catalog struct {
	byGSM      map[string]entity.StockItem
	codes      []string
	categories []string
}

// NewCatalog indexa el stock respetando el orden de entrada.
func NewCatalog(stock []entity.StockItem) *Catalog {
	c := &Catalog{byGSM: make(map[string]entity.StockItem, len(stock))}
	seenCat := make(map[string]struct{})
	for _, s := range stock {
		if _, ok := c.byGSM[s.GSMNumber]; !ok {
			c.byGSM[s.GSMNumber] = s
			c.codes = append(c.codes, s.GSMNumber)
		}
		if s.Category == "" {
			continue
		}
		if _, ok := seenCat[s.Category]; !ok {
			seenCat[s.Category] = struct{}{}
			c.categories = append(c.categories, s.Category)
		}
	}
	return c
}

// Lookup devuelve el primer repuesto con ese código GSM.
func (c *Catalog) Lookup(gsm string) (entity.StockItem, bool) {
	if c == nil {
		return entity.StockItem{}, false
	}
	s, ok := c.byGSM[gsm]
	return s, ok
}

// Codes códigos GSM distintos en orden de catálogo.
func (c *Catalog) Codes() []string {
	if c == nil {
		return []string{}
	}
	return append([]string{}, c.codes...)
}

// Categories categorías no vacías distintas en orden de aparición.
func (c *Catalog) Categories() []string {
	if c == nil {
		return []string{}
	}
	return append([]string{}, c.categories...)
}

// NormalizeItem convierte una línea facturada en una fila del libro.
//
// Costo: el de la propia línea si es > 0; si no, el del primer repuesto con el
// mismo GSM; si no hay coincidencia, 0. Cantidad 0 o negativa se toma como 1.
func NormalizeItem(it entity.BillLineItem, cat *Catalog) entity.LedgerRow {
	qty := it.Quantity
	if qty <= 0 {
		qty = 1
	}
	price := nonNegative(it.Price)
	cost := nonNegative(it.CostPrice)
	if cost.IsZero() {
		if s, ok := cat.Lookup(it.GSMNumber); ok {
			cost = nonNegative(s.CostPrice)
		}
	}
	return entity.LedgerRow{
		ID:          strconv.FormatInt(it.ID, 10),
		Date:        it.BillDate,
		GSM:         it.GSMNumber,
		Description: it.Description,
		Qty:         qty,
		Price:       price,
		Cost:        cost,
	}
}

// Normalize aplica NormalizeItem a cada línea conservando el orden.
func Normalize(items []entity.BillLineItem, cat *Catalog) []entity.LedgerRow {
	rows := make([]entity.LedgerRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, NormalizeItem(it, cat))
	}
	return rows
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
