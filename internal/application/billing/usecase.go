package billing

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Config parámetros de presentación de facturas.
type Config struct {
	Location *time.Location
	Currency string
}

// BillingUseCase consulta, crea y elimina facturas y genera sus documentos.
type BillingUseCase struct {
	bills    repository.BillRepository
	tx       BillingTxRunner
	pdf      BillPDFGenerator
	printer  BillPrinter
	exporter ports.TableExporter
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// NewBillingUseCase construye el caso de uso inyectando todas sus dependencias.
func NewBillingUseCase(
	bills repository.BillRepository,
	tx BillingTxRunner,
	pdf BillPDFGenerator,
	printer BillPrinter,
	exporter ports.TableExporter,
	cfg Config,
	log zerolog.Logger,
) *BillingUseCase {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &BillingUseCase{
		bills: bills, tx: tx, pdf: pdf, printer: printer, exporter: exporter,
		cfg: cfg, log: log, now: time.Now,
	}
}

// List facturas (cabeceras), la más reciente primero.
func (uc *BillingUseCase) List(ctx context.Context) ([]dto.BillResponse, error) {
	bills, err := uc.bills.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillResponse(b))
	}
	return out, nil
}

// Get factura con sus líneas.
func (uc *BillingUseCase) Get(ctx context.Context, id int64) (*dto.BillDetailResponse, error) {
	bill, items, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BillDetailResponse{BillResponse: toBillResponse(*bill), Items: toItemResponses(items)}, nil
}

// Items líneas de una factura.
func (uc *BillingUseCase) Items(ctx context.Context, id int64) ([]dto.BillItemResponse, error) {
	_, items, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// Delete elimina la factura y sus líneas.
func (uc *BillingUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.bills.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("bill_id", id).Msg("factura eliminada")
	return nil
}

// Create registra la factura y sus líneas y descuenta el stock en una sola transacción.
// Si alguna validación falla no se escribe nada.
func (uc *BillingUseCase) Create(ctx context.Context, in dto.CreateBillRequest) (*dto.BillDetailResponse, error) {
	items, err := toLineItems(in.Items)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.BillStatusPending
	}
	now := uc.now()
	billDate := now
	if in.BillDate != nil && !in.BillDate.IsZero() {
		billDate = *in.BillDate
	}
	bill := &entity.Bill{
		CustomerName: in.CustomerName,
		PaymentMode:  in.PaymentMode,
		Status:       status,
		BillDate:     billDate,
		Subtotal:     BillDocument{Items: items}.Subtotal(),
		CreatedAt:    now,
	}

	err = uc.tx.RunBilling(ctx, func(bills repository.BillRepository, stock repository.StockRepository) error {
		if err := bills.Create(ctx, bill, items); err != nil {
			return err
		}
		for _, it := range items {
			found, err := stock.Decrement(ctx, it.GSMNumber, it.Quantity)
			if err != nil {
				return err
			}
			if !found {
				uc.log.Debug().Str("gsm", it.GSMNumber).Msg("línea sin repuesto en stock, no se descuenta")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("bill_id", bill.ID).Int("items", len(items)).Str("subtotal", bill.Subtotal.StringFixed(2)).Msg("factura creada")
	return &dto.BillDetailResponse{BillResponse: toBillResponse(*bill), Items: toItemResponses(items)}, nil
}

// Print HTML imprimible de la factura.
func (uc *BillingUseCase) Print(ctx context.Context, id int64) ([]byte, error) {
	doc, err := uc.document(ctx, id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := uc.printer.RenderBill(&buf, *doc); err != nil {
		return nil, fmt.Errorf("print: renderizar factura: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF documento PDF de la factura y su nombre de archivo.
func (uc *BillingUseCase) PDF(ctx context.Context, id int64) ([]byte, string, error) {
	doc, err := uc.document(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.GenerateBillPDF(ctx, *doc)
	if err != nil {
		return nil, "", err
	}
	return out, doc.Bill.Number() + ".pdf", nil
}

// Export listado de facturas con sus líneas en el formato pedido.
// Las líneas se cargan antes de construir la tabla.
func (uc *BillingUseCase) Export(ctx context.Context, format string) (*dto.ExportFile, error) {
	bills, err := uc.bills.List(ctx)
	if err != nil {
		return nil, err
	}
	all, err := uc.bills.AllItems(ctx)
	if err != nil {
		return nil, err
	}
	byBill := make(map[int64][]entity.BillLineItem, len(bills))
	for _, it := range all {
		byBill[it.BillID] = append(byBill[it.BillID], it)
	}
	return uc.exporter.Export(ledger.BillsTable(bills, byBill, uc.cfg.Location), format, "billing_list")
}

func (uc *BillingUseCase) load(ctx context.Context, id int64) (*entity.Bill, []entity.BillLineItem, error) {
	bill, err := uc.bills.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if bill == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.bills.Items(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return bill, items, nil
}

func (uc *BillingUseCase) document(ctx context.Context, id int64) (*BillDocument, error) {
	bill, items, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BillDocument{Bill: *bill, Items: items, Location: uc.cfg.Location, Currency: uc.cfg.Currency}, nil
}

// toLineItems valida las líneas: cantidad > 0, precio y costo no negativos.
func toLineItems(in []dto.BillItemRequest) ([]entity.BillLineItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: la factura no tiene líneas", domain.ErrInvalidInput)
	}
	items := make([]entity.BillLineItem, 0, len(in))
	for i, r := range in {
		if r.GSMNumber == "" {
			return nil, fmt.Errorf("%w: línea %d sin código GSM", domain.ErrInvalidInput, i+1)
		}
		if r.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea %d con cantidad %d", domain.ErrInvalidInput, i+1, r.Quantity)
		}
		if r.Price.IsNegative() || r.CostPrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d con importe negativo", domain.ErrInvalidInput, i+1)
		}
		items = append(items, entity.BillLineItem{
			GSMNumber:   r.GSMNumber,
			Description: r.Description,
			Quantity:    r.Quantity,
			Price:       r.Price,
			CostPrice:   r.CostPrice,
		})
	}
	return items, nil
}

func toBillResponse(b entity.Bill) dto.BillResponse {
	return dto.BillResponse{
		ID:           b.ID,
		Number:       b.Number(),
		CustomerName: b.CustomerName,
		PaymentMode:  b.PaymentMode,
		Status:       b.Status,
		BillDate:     b.BillDate,
		Subtotal:     b.Subtotal.Round(2),
		CreatedAt:    b.CreatedAt,
	}
}

func toItemResponses(items []entity.BillLineItem) []dto.BillItemResponse {
	out := make([]dto.BillItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.BillItemResponse{
			ID:          it.ID,
			BillID:      it.BillID,
			GSMNumber:   it.GSMNumber,
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.Price,
			CostPrice:   it.CostPrice,
			Total:       it.Total().Round(2),
		})
	}
	return out
}

func sumRequests(items []dto.BillItemRequest) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
