package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/entity"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/enum"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/pagination"
)

// TransactionRepository defines the interface for ledger entry operations.
// Entries are append-only: there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// ListByCustomer returns every entry for a customer, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error)
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	ListAll(ctx context.Context) ([]entity.Transaction, error)
}

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Status     *enum.TransactionStatus
	From       *time.Time
	To         *time.Time
}
