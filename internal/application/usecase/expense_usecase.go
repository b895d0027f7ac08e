package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ExpenseUseCase casos de uso de gastos y su reporte.
type ExpenseUseCase struct {
	repo     repository.ExpenseRepository
	exporter ports.TableExporter
	loc      *time.Location
	now      func() time.Time
}

// NewExpenseUseCase construye el caso de uso. loc es la zona para filtrar por fecha.
func NewExpenseUseCase(repo repository.ExpenseRepository, exporter ports.TableExporter, loc *time.Location) *ExpenseUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ExpenseUseCase{repo: repo, exporter: exporter, loc: loc, now: time.Now}
}

// List gastos filtrados por rango de fechas y concepto, con el total Σ monto × cantidad.
func (uc *ExpenseUseCase) List(ctx context.Context, c ledger.ExpenseCriteria) (*dto.ExpenseListResponse, error) {
	filtered, err := uc.filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	resp := &dto.ExpenseListResponse{Items: make([]dto.ExpenseResponse, 0, len(filtered)), TotalAmount: decimal.Zero}
	for i := range filtered {
		resp.Items = append(resp.Items, toExpenseResponse(&filtered[i]))
		resp.TotalAmount = resp.TotalAmount.Add(filtered[i].LineTotal())
	}
	resp.TotalAmount = resp.TotalAmount.Round(2)
	return resp, nil
}

// Export reporte de gastos filtrado en el formato pedido.
func (uc *ExpenseUseCase) Export(ctx context.Context, c ledger.ExpenseCriteria, format string) (*dto.ExportFile, error) {
	filtered, err := uc.filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Export(ledger.ExpenseTable(filtered, uc.loc), format, "expense_ledger")
}

func (uc *ExpenseUseCase) filtered(ctx context.Context, c ledger.ExpenseCriteria) ([]entity.Expense, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.FilterExpenses(list, c, uc.loc), nil
}

// Create registra un gasto. La cantidad 0 se guarda como 1.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}
	e := &entity.Expense{
		ID:        uuid.New().String(),
		Item:      strings.TrimSpace(in.Item),
		Qty:       qtyOrOne(in.Qty),
		Amount:    in.Amount,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := toExpenseResponse(e)
	return &resp, nil
}

// Update modifica un gasto existente.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	e.Item = strings.TrimSpace(in.Item)
	e.Qty = qtyOrOne(in.Qty)
	e.Amount = in.Amount
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	resp := toExpenseResponse(e)
	return &resp, nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func validateExpense(in dto.ExpenseRequest) error {
	if strings.TrimSpace(in.Item) == "" {
		return fmt.Errorf("%w: item es requerido", domain.ErrInvalidInput)
	}
	if in.Qty < 0 || in.Amount.IsNegative() {
		return fmt.Errorf("%w: cantidad y monto no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

func qtyOrOne(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}

func toExpenseResponse(e *entity.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:        e.ID,
		Item:      e.Item,
		Qty:       e.Qty,
		Amount:    e.Amount,
		Total:     e.LineTotal().Round(2),
		CreatedAt: e.CreatedAt,
	}
}
