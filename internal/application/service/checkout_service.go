package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/entity"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/enum"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/repository"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/apperror"
)

// CheckoutService turns a cart into a committed sale: stock moves and a
// ledger entry is written, or neither happens.
type CheckoutService struct {
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	transactionRepo repository.TransactionRepository
	costRatio       float64
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	transactionRepo repository.TransactionRepository,
	costRatio float64,
) *CheckoutService {
	return &CheckoutService{
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		costRatio:       costRatio,
	}
}

// CartLineInput is one line of a checkout cart
type CartLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutInput represents the checkout request
type CheckoutInput struct {
	Items         []CartLineInput
	PaymentMethod enum.TransactionStatus
	CustomerID    *uuid.UUID
}

// CheckoutResult is the outcome of a committed sale
type CheckoutResult struct {
	Transaction *entity.Transaction
	Lines       []CheckoutLine
}

// CheckoutLine is a priced line of the committed sale, for the receipt
type CheckoutLine struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice int64
	Total     int64
}

// MarshalJSON serializes receipt lines with decimal amounts
func (l CheckoutLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProductID uuid.UUID `json:"product_id"`
		Name      string    `json:"name"`
		Quantity  int       `json:"quantity"`
		UnitPrice float64   `json:"unit_price"`
		Total     float64   `json:"total"`
	}{
		ProductID: l.ProductID,
		Name:      l.Name,
		Quantity:  l.Quantity,
		UnitPrice: float64(l.UnitPrice) / 100,
		Total:     float64(l.Total) / 100,
	})
}

// Checkout commits a sale. Every line must have sufficient stock or the
// whole sale is rejected and no stock moves.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	if !input.PaymentMethod.IsSale() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid payment method: %s", input.PaymentMethod))
	}

	// A credit sale must be attached to a customer account
	if input.PaymentMethod == enum.StatusCredit && input.CustomerID == nil {
		return nil, apperror.NewBadRequestError("Credit sales require a customer")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	// Merge duplicate lines and batch fetch products in one query
	quantities := make(map[uuid.UUID]int, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Quantity must be greater than zero")
		}
		quantities[item.ProductID] += item.Quantity
	}

	productIDs := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		productIDs = append(productIDs, id)
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var totalAmount int64
	lines := make([]CheckoutLine, 0, len(quantities))
	for id, qty := range quantities {
		product, exists := productMap[id]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", id))
		}

		lineTotal := product.Price * int64(qty)
		totalAmount += lineTotal
		lines = append(lines, CheckoutLine{
			ProductID: id,
			Name:      product.Name,
			Quantity:  qty,
			UnitPrice: product.Price,
			Total:     lineTotal,
		})
	}

	// Atomically move stock. If any line has insufficient stock the batch
	// rolls back and nothing is sold.
	failedIDs, err := s.productRepo.AtomicSellBatch(ctx, quantities)
	if err != nil {
		return nil, err
	}

	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Insufficient stock for %s", strings.Join(failedNames, ", ")))
	}

	totalCost := int64(float64(totalAmount) * s.costRatio)

	transaction := &entity.Transaction{
		TotalAmount: totalAmount,
		TotalCost:   totalCost,
		Status:      input.PaymentMethod,
		CustomerID:  input.CustomerID,
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		// Stock already moved, put it back
		if restoreErr := s.productRepo.RestoreStockBatch(ctx, quantities); restoreErr != nil {
			log.Printf("Failed to restore stock after ledger write failure: %v", restoreErr)
		}
		return nil, err
	}

	return &CheckoutResult{
		Transaction: transaction,
		Lines:       lines,
	}, nil
}
