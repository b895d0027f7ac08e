package report_test

import (
	"context"
	"sync"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

type fakeBills struct {
	repository.BillRepository
	items []entity.BillLineItem
	err   error
}

func (f *fakeBills) AllItems(context.Context) ([]entity.BillLineItem, error) { return f.items, f.err }

type fakeExpenses struct {
	repository.ExpenseRepository
	list []entity.Expense
	err  error
}

func (f *fakeExpenses) List(context.Context) ([]entity.Expense, error) { return f.list, f.err }

type fakeStock struct {
	repository.StockRepository
	list []entity.StockItem
	err  error
}

func (f *fakeStock) List(context.Context) ([]entity.StockItem, error) { return f.list, f.err }

type fakeCache struct {
	mu        sync.Mutex
	rows      []entity.LedgerRow
	keys      map[string]struct{}
	listErr   error
	insertErr error
	inserted  []repository.LedgerEntry
}

func (f *fakeCache) List(context.Context) ([]entity.LedgerRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.LedgerRow(nil), f.rows...), f.listErr
}

func (f *fakeCache) Keys(context.Context) (map[string]struct{}, error) {
	if f.keys == nil {
		return map[string]struct{}{}, f.listErr
	}
	return f.keys, f.listErr
}

func (f *fakeCache) BulkInsert(_ context.Context, entries []repository.LedgerEntry) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, entries...)
	for _, e := range entries {
		f.rows = append(f.rows, e.Row)
	}
	return int64(len(entries)), nil
}

func (f *fakeCache) insertedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.inserted))
	for _, e := range f.inserted {
		keys = append(keys, e.Key)
	}
	return keys
}
