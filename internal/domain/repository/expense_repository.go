package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia de gastos.
type ExpenseRepository interface {
	List(ctx context.Context) ([]entity.Expense, error)
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Create(ctx context.Context, e *entity.Expense) error
	Update(ctx context.Context, e *entity.Expense) error
	Delete(ctx context.Context, id string) error
}
