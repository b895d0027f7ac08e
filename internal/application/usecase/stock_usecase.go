package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// StockUseCase casos de uso CRUD para el catálogo de repuestos.
type StockUseCase struct {
	repo repository.StockRepository
	now  func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository) *StockUseCase {
	return &StockUseCase{repo: repo, now: time.Now}
}

// List catálogo completo.
func (uc *StockUseCase) List(ctx context.Context) ([]dto.StockResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(list))
	for i := range list {
		out = append(out, toStockResponse(&list[i]))
	}
	return out, nil
}

// GetByID obtiene un repuesto.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*dto.StockResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := toStockResponse(item)
	return &resp, nil
}

// Create registra un repuesto nuevo.
func (uc *StockUseCase) Create(ctx context.Context, in dto.StockRequest) (*dto.StockResponse, error) {
	if err := validateStock(in); err != nil {
		return nil, err
	}
	now := uc.now()
	item := &entity.StockItem{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	applyStock(item, in)
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := toStockResponse(item)
	return &resp, nil
}

// Update reemplaza los datos del repuesto.
func (uc *StockUseCase) Update(ctx context.Context, id string, in dto.StockRequest) (*dto.StockResponse, error) {
	if err := validateStock(in); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	applyStock(item, in)
	item.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	resp := toStockResponse(item)
	return &resp, nil
}

// Delete elimina un repuesto. Las facturas existentes no se tocan: el cruce es por GSM.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func validateStock(in dto.StockRequest) error {
	if strings.TrimSpace(in.GSMNumber) == "" {
		return fmt.Errorf("%w: gsm_number es requerido", domain.ErrInvalidInput)
	}
	if in.Stock < 0 || in.MinimumStock < 0 {
		return fmt.Errorf("%w: stock y minimum_stock no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

func applyStock(item *entity.StockItem, in dto.StockRequest) {
	item.GSMNumber = strings.TrimSpace(in.GSMNumber)
	item.Category = strings.TrimSpace(in.Category)
	item.Description = in.Description
	item.Manufacturer = in.Manufacturer
	item.Unit = in.Unit
	if item.Unit == "" {
		item.Unit = "pcs"
	}
	item.Stock = in.Stock
	item.MinimumStock = in.MinimumStock
	item.CostPrice = in.CostPrice
	item.SellingPrice = in.SellingPrice
}

func toStockResponse(s *entity.StockItem) dto.StockResponse {
	return dto.StockResponse{
		ID:           s.ID,
		GSMNumber:    s.GSMNumber,
		Category:     s.Category,
		Description:  s.Description,
		Manufacturer: s.Manufacturer,
		Unit:         s.Unit,
		Stock:        s.Stock,
		MinimumStock: s.MinimumStock,
		LowStock:     s.LowStock(),
		CostPrice:    s.CostPrice,
		SellingPrice: s.SellingPrice,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
