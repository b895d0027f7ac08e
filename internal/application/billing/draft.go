package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// DraftUseCase borrador de factura por sesión: las líneas se acumulan en la
// caché de sesión y al confirmar se crea la factura y se limpia el borrador.
type DraftUseCase struct {
	store   ports.SessionStore
	billing *BillingUseCase
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(store ports.SessionStore, billing *BillingUseCase) *DraftUseCase {
	return &DraftUseCase{store: store, billing: billing}
}

type draftBill struct {
	Items []dto.BillItemRequest `json:"items"`
}

// Get borrador actual; vacío si la sesión no tiene uno.
func (uc *DraftUseCase) Get(ctx context.Context, sessionID string) (*dto.DraftBillResponse, error) {
	d, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// AddItem agrega una línea al borrador.
func (uc *DraftUseCase) AddItem(ctx context.Context, sessionID string, item dto.BillItemRequest) (*dto.DraftBillResponse, error) {
	if _, err := toLineItems([]dto.BillItemRequest{item}); err != nil {
		return nil, err
	}
	d, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	d.Items = append(d.Items, item)
	if err := uc.store.Set(ctx, sessionID, ports.SessionKeyDraftBill, d); err != nil {
		return nil, fmt.Errorf("draft: guardar borrador: %w", err)
	}
	return toDraftResponse(d), nil
}

// Clear descarta el borrador.
func (uc *DraftUseCase) Clear(ctx context.Context, sessionID string) error {
	return uc.store.Delete(ctx, sessionID, ports.SessionKeyDraftBill)
}

// Confirm crea la factura con las líneas del borrador y lo limpia.
// Si la creación falla el borrador se conserva.
func (uc *DraftUseCase) Confirm(ctx context.Context, sessionID string, in dto.ConfirmDraftRequest) (*dto.BillDetailResponse, error) {
	d, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(d.Items) == 0 {
		return nil, domain.ErrEmptyDraft
	}
	bill, err := uc.billing.Create(ctx, dto.CreateBillRequest{
		CustomerName: in.CustomerName,
		PaymentMode:  in.PaymentMode,
		Status:       in.Status,
		Items:        d.Items,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.store.Delete(ctx, sessionID, ports.SessionKeyDraftBill); err != nil {
		uc.billing.log.Warn().Err(err).Str("session", sessionID).Msg("no se pudo limpiar el borrador")
	}
	return bill, nil
}

func (uc *DraftUseCase) load(ctx context.Context, sessionID string) (draftBill, error) {
	var d draftBill
	if _, err := uc.store.Get(ctx, sessionID, ports.SessionKeyDraftBill, &d); err != nil {
		return draftBill{}, fmt.Errorf("draft: leer borrador: %w", err)
	}
	return d, nil
}

func toDraftResponse(d draftBill) *dto.DraftBillResponse {
	items := d.Items
	if items == nil {
		items = []dto.BillItemRequest{}
	}
	return &dto.DraftBillResponse{Items: items, Subtotal: sumRequests(items).Round(2)}
}
