package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// StockRepository define el puerto de persistencia del catálogo de repuestos.
type StockRepository interface {
	List(ctx context.Context) ([]entity.StockItem, error)
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	Create(ctx context.Context, item *entity.StockItem) error
	Update(ctx context.Context, item *entity.StockItem) error
	Delete(ctx context.Context, id string) error
	// Decrement descuenta qty del primer repuesto con ese código GSM.
	// Devuelve false si ningún repuesto tiene el código.
	Decrement(ctx context.Context, gsm string, qty int) (bool, error)
}
