package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/entity"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/repository"
)

// In-memory repositories used across the service tests.

type mockProductRepository struct {
	products map[uuid.UUID]*entity.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*entity.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	for _, p := range m.products {
		if p.Name == product.Name {
			return repository.ErrDuplicate
		}
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, exists := m.products[id]
	if !exists {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, exists := m.products[id]; exists {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	for _, p := range m.products {
		if p.Name == name {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	for id, p := range m.products {
		if id != product.ID && p.Name == product.Name {
			return repository.ErrDuplicate
		}
	}
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	all, _ := m.ListAll(ctx)
	return all, int64(len(all)), nil
}

func (m *mockProductRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockProductRepository) AtomicSellBatch(ctx context.Context, quantities map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failedIDs []uuid.UUID
	for id, amount := range quantities {
		p, exists := m.products[id]
		if !exists || p.Stock < amount {
			failedIDs = append(failedIDs, id)
		}
	}
	if len(failedIDs) > 0 {
		return failedIDs, nil
	}
	for id, amount := range quantities {
		m.products[id].Stock -= amount
		m.products[id].UnitsSold += amount
	}
	return nil, nil
}

func (m *mockProductRepository) ImportBatch(ctx context.Context, updates, creates []*entity.Product) error {
	for _, p := range creates {
		for _, existing := range m.products {
			if existing.Name == p.Name {
				return repository.ErrDuplicate
			}
		}
	}
	for _, p := range updates {
		clone := *p
		m.products[p.ID] = &clone
	}
	for _, p := range creates {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		clone := *p
		m.products[p.ID] = &clone
	}
	return nil
}

func (m *mockProductRepository) RestoreStockBatch(ctx context.Context, quantities map[uuid.UUID]int) error {
	for id, amount := range quantities {
		if p, exists := m.products[id]; exists {
			p.Stock += amount
			p.UnitsSold -= amount
		}
	}
	return nil
}

type mockCustomerRepository struct {
	customers    map[uuid.UUID]*entity.Customer
	transactions *mockTransactionRepository
}

func newMockCustomerRepository(transactions *mockTransactionRepository) *mockCustomerRepository {
	return &mockCustomerRepository{
		customers:    make(map[uuid.UUID]*entity.Customer),
		transactions: transactions,
	}
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	for _, c := range m.customers {
		if c.Phone == customer.Phone {
			return repository.ErrDuplicate
		}
		if c.Email != nil && customer.Email != nil && *c.Email == *customer.Email {
			return repository.ErrDuplicate
		}
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	clone := *customer
	m.customers[customer.ID] = &clone
	return nil
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, exists := m.customers[id]
	if !exists {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	for id, c := range m.customers {
		if id == customer.ID {
			continue
		}
		if c.Phone == customer.Phone {
			return repository.ErrDuplicate
		}
	}
	clone := *customer
	m.customers[customer.ID] = &clone
	return nil
}

func (m *mockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.transactions != nil {
		m.transactions.deleteByCustomer(id)
	}
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerRepository) List(ctx context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	all, _ := m.ListAll(ctx)
	return all, int64(len(all)), nil
}

func (m *mockCustomerRepository) ListAll(ctx context.Context) ([]entity.Customer, error) {
	out := make([]entity.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type mockTransactionRepository struct {
	entries []entity.Transaction
}

func newMockTransactionRepository() *mockTransactionRepository {
	return &mockTransactionRepository{}
}

func (m *mockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	if transaction.Timestamp.IsZero() {
		transaction.Timestamp = time.Now()
	}
	m.entries = append(m.entries, *transaction)
	return nil
}

func (m *mockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			clone := m.entries[i]
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockTransactionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, t := range m.entries {
		if t.CustomerID != nil && *t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *mockTransactionRepository) List(ctx context.Context, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	all, _ := m.ListAll(ctx)
	return all, int64(len(all)), nil
}

func (m *mockTransactionRepository) ListAll(ctx context.Context) ([]entity.Transaction, error) {
	out := make([]entity.Transaction, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *mockTransactionRepository) deleteByCustomer(customerID uuid.UUID) {
	kept := m.entries[:0]
	for _, t := range m.entries {
		if t.CustomerID == nil || *t.CustomerID != customerID {
			kept = append(kept, t)
		}
	}
	m.entries = kept
}
