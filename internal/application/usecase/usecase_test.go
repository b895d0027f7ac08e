package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/export"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── fakes en memoria ─────────────────────────────────────────────────────────

type memStock struct {
	mu    sync.Mutex
	items []entity.StockItem
}

func (m *memStock) List(context.Context) ([]entity.StockItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.StockItem{}, m.items...), nil
}

func (m *memStock) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			c := it
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memStock) Create(_ context.Context, item *entity.StockItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *item)
	return nil
}

func (m *memStock) Update(_ context.Context, item *entity.StockItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = *item
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStock) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStock) Decrement(context.Context, string, int) (bool, error) { return false, nil }

type memExpenses struct {
	list []entity.Expense
}

func (m *memExpenses) List(context.Context) ([]entity.Expense, error) { return m.list, nil }
func (m *memExpenses) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	for _, e := range m.list {
		if e.ID == id {
			c := e
			return &c, nil
		}
	}
	return nil, nil
}
func (m *memExpenses) Create(_ context.Context, e *entity.Expense) error {
	m.list = append(m.list, *e)
	return nil
}
func (m *memExpenses) Update(_ context.Context, e *entity.Expense) error {
	for i := range m.list {
		if m.list[i].ID == e.ID {
			m.list[i] = *e
			return nil
		}
	}
	return domain.ErrNotFound
}
func (m *memExpenses) Delete(context.Context, string) error { return nil }

type memUsers struct {
	list []entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.list = append(m.list, *u)
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.list {
		if u.ID == id {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}
func (m *memUsers) GetByUsername(_ context.Context, name string) (*entity.User, error) {
	for _, u := range m.list {
		if u.Username == name {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}
func (m *memUsers) List(context.Context) ([]entity.User, error) { return m.list, nil }
func (m *memUsers) Count(context.Context) (int, error)          { return len(m.list), nil }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Stock ────────────────────────────────────────────────────────────────────

func TestStockUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewStockUseCase(&memStock{})

	created, err := uc.Create(ctx, dto.StockRequest{GSMNumber: " 80 ", Category: "Brakes", Stock: 2, MinimumStock: 5, CostPrice: d("6"), SellingPrice: d("10")})
	require.NoError(t, err)
	assert.Equal(t, "80", created.GSMNumber)
	assert.Equal(t, "pcs", created.Unit)
	assert.True(t, created.LowStock)

	updated, err := uc.Update(ctx, created.ID, dto.StockRequest{GSMNumber: "80", Stock: 20, MinimumStock: 5, SellingPrice: d("11")})
	require.NoError(t, err)
	assert.False(t, updated.LowStock)
	assert.True(t, d("11").Equal(updated.SellingPrice))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewStockUseCase(&memStock{})

	tests := []dto.StockRequest{
		{GSMNumber: ""},
		{GSMNumber: "80", Stock: -1},
		{GSMNumber: "80", CostPrice: d("-0.01")},
	}
	for _, in := range tests {
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	_, err := uc.Update(ctx, "missing", dto.StockRequest{GSMNumber: "80"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Expenses ─────────────────────────────────────────────────────────────────

func TestExpenseUseCase_ListTotalsAmountTimesQty(t *testing.T) {
	repo := &memExpenses{list: []entity.Expense{
		{ID: "1", Item: "Rent", Qty: 1, Amount: d("100"), CreatedAt: time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)},
		{ID: "2", Item: "Oil", Qty: 3, Amount: d("2.5"), CreatedAt: time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)},
		{ID: "3", Item: "Rent", Qty: 1, Amount: d("100"), CreatedAt: time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)},
	}}
	uc := usecase.NewExpenseUseCase(repo, export.NewRegistry(), time.UTC)
	ctx := context.Background()

	all, err := uc.List(ctx, ledger.ExpenseCriteria{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.True(t, d("207.5").Equal(all.TotalAmount))

	jan, err := uc.List(ctx, ledger.ExpenseCriteria{FromDate: "2024-01-01", ToDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Len(t, jan.Items, 2)
	assert.True(t, d("107.5").Equal(jan.TotalAmount))

	rent, err := uc.List(ctx, ledger.ExpenseCriteria{Item: "Rent"})
	require.NoError(t, err)
	assert.Len(t, rent.Items, 2)

	_, err = uc.List(ctx, ledger.ExpenseCriteria{FromDate: "01-01-2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpenseUseCase_CreateUpdateExport(t *testing.T) {
	repo := &memExpenses{}
	uc := usecase.NewExpenseUseCase(repo, export.NewRegistry(), time.UTC)
	ctx := context.Background()

	e, err := uc.Create(ctx, dto.ExpenseRequest{Item: " Tea ", Qty: 0, Amount: d("1.25")})
	require.NoError(t, err)
	assert.Equal(t, "Tea", e.Item)
	assert.Equal(t, 1, e.Qty)

	_, err = uc.Create(ctx, dto.ExpenseRequest{Item: "Tea", Amount: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	up, err := uc.Update(ctx, e.ID, dto.ExpenseRequest{Item: "Tea", Qty: 4, Amount: d("1.25")})
	require.NoError(t, err)
	assert.True(t, d("5").Equal(up.Total))

	_, err = uc.Update(ctx, "missing", dto.ExpenseRequest{Item: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f, err := uc.Export(ctx, ledger.ExpenseCriteria{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "expense_ledger.csv", f.FileName)
	assert.Contains(t, string(f.Content), "Tea,4,1.25")
}

// ── Users ────────────────────────────────────────────────────────────────────

func TestUserUseCase_CreateAndDuplicate(t *testing.T) {
	repo := &memUsers{}
	uc := usecase.NewUserUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, u.Role)
	require.Len(t, repo.list, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.list[0].PasswordHash), []byte("supersecret")))

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "anothersecret"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "bob", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUseCase_EnsureAdmin(t *testing.T) {
	repo := &memUsers{}
	uc := usecase.NewUserUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "admin", ""))
	assert.Empty(t, repo.list)

	require.NoError(t, uc.EnsureAdmin(ctx, "admin", "changeme123"))
	require.Len(t, repo.list, 1)
	assert.Equal(t, entity.RoleAdmin, repo.list[0].Role)

	require.NoError(t, uc.EnsureAdmin(ctx, "other", "changeme123"))
	assert.Len(t, repo.list, 1)
}
