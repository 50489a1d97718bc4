package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/entity"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/repository"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/apperror"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/pagination"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/qrcode"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/storage"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
	store       *storage.LocalStore
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, store *storage.LocalStore) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		store:       store,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name       string
	Price      float64
	Stock      int
	Attributes map[string]string
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Name       *string
	Price      *float64
	Stock      *int
	Attributes map[string]string
}

// CreateProduct adds a product to the catalog and generates its QR code.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}

	product := &entity.Product{
		ID:         uuid.New(),
		Name:       input.Name,
		Stock:      input.Stock,
		Attributes: filterAttributes(input.Attributes),
	}
	product.SetPriceFromDecimal(input.Price)

	encoded, err := qrcode.GenerateBase64(qrcode.ProductPayload(product.ID), qrcode.DefaultSize)
	if err != nil {
		return nil, err
	}
	product.QRCode = &encoded

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError(fmt.Sprintf("Product %q already exists", input.Name))
		}
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct applies a partial update to a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Product name is required")
		}
		product.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.NewBadRequestError("Stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.Attributes != nil {
		product.Attributes = filterAttributes(input.Attributes)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError(fmt.Sprintf("Product %q already exists", product.Name))
		}
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product. Products that have been sold are kept so
// past receipts stay meaningful.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if product.HasSalesHistory() {
		return apperror.NewConflictError("Cannot delete a product with sales history")
	}

	if product.ImagePath != nil {
		_ = s.store.Remove(*product.ImagePath)
	}

	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with search and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pg := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pg), nil
}

// AttachImage stores an uploaded product image and links it to the product.
func (s *ProductService) AttachImage(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.store.Save(file)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	if product.ImagePath != nil {
		_ = s.store.Remove(*product.ImagePath)
	}

	product.ImagePath = &name
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// QRCodePNG returns the product's QR code as raw PNG bytes for download.
// Products seeded before QR generation get one on demand.
func (s *ProductService) QRCodePNG(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, "", err
	}

	png, err := qrcode.GeneratePNG(qrcode.ProductPayload(product.ID), qrcode.DefaultSize)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("QR_Code_%s.png", product.Name)
	return png, filename, nil
}

// productCSVRow is the CSV schema for product import and export
type productCSVRow struct {
	Name  string  `csv:"name"`
	Price float64 `csv:"price"`
	Stock int     `csv:"stock"`
}

// ImportResult reports what a CSV import changed
type ImportResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// ImportProducts merges a CSV file into the catalog. Rows are matched by
// product name: existing products get the imported price and their stock
// increased by the imported amount, unknown names become new products.
// The whole merge is staged first and written in one batch, so a failure
// on any row leaves the catalog untouched.
func (s *ProductService) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var rows []productCSVRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, apperror.NewBadRequestError("Check CSV data types (Price and Stock must be numbers)")
	}

	staged := make(map[string]*entity.Product)
	var updates, creates []*entity.Product
	for _, row := range rows {
		if row.Name == "" {
			continue
		}

		// Repeated names within one file keep merging into the staged row
		if product, ok := staged[row.Name]; ok {
			product.SetPriceFromDecimal(row.Price)
			product.Stock += row.Stock
			continue
		}

		existing, err := s.productRepo.GetByName(ctx, row.Name)
		if err != nil {
			return nil, err
		}

		if existing != nil {
			existing.SetPriceFromDecimal(row.Price)
			existing.Stock += row.Stock
			staged[row.Name] = existing
			updates = append(updates, existing)
			continue
		}

		product := &entity.Product{
			ID:    uuid.New(),
			Name:  row.Name,
			Stock: row.Stock,
		}
		product.SetPriceFromDecimal(row.Price)

		encoded, err := qrcode.GenerateBase64(qrcode.ProductPayload(product.ID), qrcode.DefaultSize)
		if err != nil {
			return nil, err
		}
		product.QRCode = &encoded

		staged[row.Name] = product
		creates = append(creates, product)
	}

	if err := s.productRepo.ImportBatch(ctx, updates, creates); err != nil {
		return nil, err
	}

	return &ImportResult{Added: len(creates), Updated: len(updates)}, nil
}

// ExportProductsCSV writes the whole catalog as CSV
func (s *ProductService) ExportProductsCSV(ctx context.Context) ([]byte, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]productCSVRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productCSVRow{
			Name:  p.Name,
			Price: p.GetPriceDecimal(),
			Stock: p.Stock,
		})
	}

	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// filterAttributes keeps only the supported custom attribute keys
func filterAttributes(attrs map[string]string) entity.Attributes {
	if attrs == nil {
		return nil
	}
	filtered := entity.Attributes{}
	for _, key := range entity.AttributeKeys {
		if v, ok := attrs[key]; ok && v != "" {
			filtered[key] = v
		}
	}
	return filtered
}
