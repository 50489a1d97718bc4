package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/entity"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListAll(ctx context.Context) ([]entity.Product, error)
	// AtomicSellBatch atomically decrements stock and increments units sold
	// for every line of a sale, only if each product has sufficient stock.
	// Returns the IDs that failed the stock check. If any line fails the
	// entire statement batch is rolled back and nothing is sold.
	AtomicSellBatch(ctx context.Context, quantities map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// RestoreStockBatch reverses a sale's stock movement when a later step
	// of the checkout cannot complete.
	RestoreStockBatch(ctx context.Context, quantities map[uuid.UUID]int) error
	// ImportBatch persists a catalog merge atomically: every update and
	// create commits together or the whole import is rolled back.
	ImportBatch(ctx context.Context, updates, creates []*entity.Product) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	MinStock   *int
	SortBy     string
	SortOrder  string
}
