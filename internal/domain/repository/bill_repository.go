package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// BillRepository define el puerto de persistencia de facturas y sus líneas.
// Las líneas son inmutables: sólo se crean junto con la factura y se borran con ella.
type BillRepository interface {
	List(ctx context.Context) ([]entity.Bill, error)
	GetByID(ctx context.Context, id int64) (*entity.Bill, error)
	// Items líneas de una factura, con BillDate tomado de la cabecera.
	Items(ctx context.Context, billID int64) ([]entity.BillLineItem, error)
	// AllItems todas las líneas facturadas (fuente del libro de utilidades).
	AllItems(ctx context.Context) ([]entity.BillLineItem, error)
	// Create persiste cabecera y líneas; asigna IDs.
	Create(ctx context.Context, bill *entity.Bill, items []entity.BillLineItem) error
	Delete(ctx context.Context, id int64) error
}
