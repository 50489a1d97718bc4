package service

import (
	"bytes"
	"context"
	"errors"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/entity"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/repository"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/apperror"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/pagination"
)

// CustomerService handles customer account operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// CreateCustomer adds a customer account. Phone numbers and emails must be
// unique across the shop.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if input.Phone == "" {
		return nil, apperror.NewBadRequestError("Customer phone is required")
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("A customer with this phone or email already exists")
		}
		return nil, err
	}

	return customer, nil
}

// QuickAddCustomer creates a minimal account from the till with just a name
// and phone, so a credit sale can proceed without leaving the checkout.
func (s *CustomerService) QuickAddCustomer(ctx context.Context, name, phone string) (*entity.Customer, error) {
	return s.CreateCustomer(ctx, &CreateCustomerInput{Name: name, Phone: phone})
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomer applies a partial update to a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Customer name is required")
		}
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone == "" {
			return nil, apperror.NewBadRequestError("Customer phone is required")
		}
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("A customer with this phone or email already exists")
		}
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer removes a customer together with their entire ledger
// history. Other customers' balances are unaffected.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with search and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *repository.CustomerFilterParams) (*pagination.PaginatedResult[entity.Customer], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pg := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(customers, pg), nil
}

// customerCSVRow is the CSV schema for customer export
type customerCSVRow struct {
	Name    string `csv:"name"`
	Phone   string `csv:"phone"`
	Email   string `csv:"email"`
	Address string `csv:"address"`
}

// ExportCustomersCSV writes all customer accounts as CSV
func (s *CustomerService) ExportCustomersCSV(ctx context.Context) ([]byte, error) {
	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]customerCSVRow, 0, len(customers))
	for _, c := range customers {
		row := customerCSVRow{Name: c.Name, Phone: c.Phone}
		if c.Email != nil {
			row.Email = *c.Email
		}
		if c.Address != nil {
			row.Address = *c.Address
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
