package billing_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/billing"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/export"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/session"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type memBills struct {
	mu     sync.Mutex
	nextID int64
	bills  []entity.Bill
	items  []entity.BillLineItem
}

func (m *memBills) List(context.Context) ([]entity.Bill, error) {
	return append([]entity.Bill{}, m.bills...), nil
}

func (m *memBills) GetByID(_ context.Context, id int64) (*entity.Bill, error) {
	for _, b := range m.bills {
		if b.ID == id {
			c := b
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memBills) Items(_ context.Context, billID int64) ([]entity.BillLineItem, error) {
	var out []entity.BillLineItem
	for _, it := range m.items {
		if it.BillID == billID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memBills) AllItems(context.Context) ([]entity.BillLineItem, error) {
	return append([]entity.BillLineItem{}, m.items...), nil
}

func (m *memBills) Create(_ context.Context, b *entity.Bill, items []entity.BillLineItem) error {
	m.nextID++
	b.ID = m.nextID
	m.bills = append(m.bills, *b)
	for i := range items {
		items[i].ID = int64(len(m.items) + 1)
		items[i].BillID = b.ID
		items[i].BillDate = b.BillDate
		m.items = append(m.items, items[i])
	}
	return nil
}

func (m *memBills) Delete(_ context.Context, id int64) error {
	for i, b := range m.bills {
		if b.ID == id {
			m.bills = append(m.bills[:i], m.bills[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memStock struct {
	repository.StockRepository
	levels map[string]int
}

func (m *memStock) Decrement(_ context.Context, gsm string, qty int) (bool, error) {
	cur, ok := m.levels[gsm]
	if !ok {
		return false, nil
	}
	if cur < qty {
		return true, fmt.Errorf("%w: stock insuficiente", domain.ErrConflict)
	}
	m.levels[gsm] = cur - qty
	return true, nil
}

// fakeTx aplica los cambios sólo si fn termina sin error.
type fakeTx struct {
	bills *memBills
	stock *memStock
}

func (f *fakeTx) RunBilling(_ context.Context, fn func(repository.BillRepository, repository.StockRepository) error) error {
	f.bills.mu.Lock()
	defer f.bills.mu.Unlock()
	bills := &memBills{nextID: f.bills.nextID, bills: append([]entity.Bill{}, f.bills.bills...), items: append([]entity.BillLineItem{}, f.bills.items...)}
	levels := make(map[string]int, len(f.stock.levels))
	for k, v := range f.stock.levels {
		levels[k] = v
	}
	stock := &memStock{levels: levels}
	if err := fn(bills, stock); err != nil {
		return err
	}
	f.bills.nextID, f.bills.bills, f.bills.items = bills.nextID, bills.bills, bills.items
	f.stock.levels = stock.levels
	return nil
}

type fakePDF struct{}

func (fakePDF) GenerateBillPDF(_ context.Context, doc billing.BillDocument) ([]byte, error) {
	return []byte("%PDF " + doc.Bill.Number()), nil
}

type fixture struct {
	bills *memBills
	stock *memStock
	uc    *billing.BillingUseCase
}

func newFixture() *fixture {
	bills := &memBills{}
	stock := &memStock{levels: map[string]int{"80": 5}}
	uc := billing.NewBillingUseCase(bills, &fakeTx{bills: bills, stock: stock}, fakePDF{}, export.NewInvoicePrinter(),
		export.NewRegistry(), billing.Config{Location: time.UTC, Currency: "Rs."}, zerolog.Nop())
	return &fixture{bills: bills, stock: stock, uc: uc}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var billDate = time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

func sampleRequest() dto.CreateBillRequest {
	return dto.CreateBillRequest{
		CustomerName: "Ravi",
		PaymentMode:  "Cash",
		BillDate:     &billDate,
		Items: []dto.BillItemRequest{
			{GSMNumber: "80", Description: "Brake pad", Quantity: 2, Price: d("10"), CostPrice: d("6")},
			{GSMNumber: "CUSTOM", Description: "Labour", Quantity: 1, Price: d("15.5")},
		},
	}
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestCreate_PersistsAndDecrementsStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	bill, err := f.uc.Create(ctx, sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", bill.Number)
	assert.Equal(t, entity.BillStatusPending, bill.Status)
	assert.True(t, d("35.5").Equal(bill.Subtotal))
	require.Len(t, bill.Items, 2)
	assert.Equal(t, 3, f.stock.levels["80"])

	got, err := f.uc.Get(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.True(t, d("20").Equal(got.Items[0].Total))
}

func TestCreate_RollsBackOnInsufficientStock(t *testing.T) {
	f := newFixture()
	req := sampleRequest()
	req.Items[0].Quantity = 9

	_, err := f.uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.bills.bills)
	assert.Equal(t, 5, f.stock.levels["80"])
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture()
	cases := []func(*dto.CreateBillRequest){
		func(r *dto.CreateBillRequest) { r.Items = nil },
		func(r *dto.CreateBillRequest) { r.Items[0].Quantity = 0 },
		func(r *dto.CreateBillRequest) { r.Items[1].Price = d("-1") },
		func(r *dto.CreateBillRequest) { r.Items[0].GSMNumber = "" },
	}
	for i, mutate := range cases {
		req := sampleRequest()
		mutate(&req)
		_, err := f.uc.Create(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
	assert.Empty(t, f.bills.bills)
}

func TestGetAndDelete_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Delete(context.Background(), 42), domain.ErrNotFound)
}

func TestPrintAndPDF(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bill, err := f.uc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	html, err := f.uc.Print(ctx, bill.ID)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Invoice INV-0001")
	assert.Contains(t, string(html), "Total: Rs.35.50")

	out, name, err := f.uc.PDF(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001.pdf", name)
	assert.Equal(t, "%PDF INV-0001", string(out))
}

func TestExport_MaterializesItems(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	file, err := f.uc.Export(ctx, "csv")
	require.NoError(t, err)
	assert.Equal(t, "billing_list.csv", file.FileName)
	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	require.Len(t, lines, 4, "cabecera, dos líneas y totales")
	assert.Equal(t, "INV-0001,Ravi,2024-01-05,Cash,Pending,80,Brake pad,2,10.00,20.00", lines[1])
	assert.Equal(t, "Total,,,,,,,,,35.50", lines[3])
}

func TestDraft_AddConfirmClear(t *testing.T) {
	f := newFixture()
	draft := billing.NewDraftUseCase(session.NewMemoryStore(time.Hour), f.uc)
	ctx := context.Background()

	empty, err := draft.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	_, err = draft.Confirm(ctx, "s1", dto.ConfirmDraftRequest{CustomerName: "Ravi"})
	assert.ErrorIs(t, err, domain.ErrEmptyDraft)

	_, err = draft.AddItem(ctx, "s1", dto.BillItemRequest{GSMNumber: "80", Quantity: 0, Price: d("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = draft.AddItem(ctx, "s1", dto.BillItemRequest{GSMNumber: "80", Description: "Brake pad", Quantity: 1, Price: d("10")})
	require.NoError(t, err)
	got, err := draft.AddItem(ctx, "s1", dto.BillItemRequest{GSMNumber: "90", Description: "Filter", Quantity: 2, Price: d("4.25")})
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.True(t, d("18.5").Equal(got.Subtotal))

	// otra sesión tiene su propio borrador
	other, err := draft.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	bill, err := draft.Confirm(ctx, "s1", dto.ConfirmDraftRequest{CustomerName: "Ravi", Status: entity.BillStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusPaid, bill.Status)
	assert.Len(t, bill.Items, 2)

	after, err := draft.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, after.Items)

	_, err = draft.AddItem(ctx, "s1", dto.BillItemRequest{GSMNumber: "80", Quantity: 1, Price: d("10")})
	require.NoError(t, err)
	require.NoError(t, draft.Clear(ctx, "s1"))
	after, err = draft.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, after.Items)
}
