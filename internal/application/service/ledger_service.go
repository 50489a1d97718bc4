package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/entity"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/enum"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/repository"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/apperror"
)

// Dead stock thresholds for the analysis report.
const (
	deadStockMinUnits = 10
	deadStockLimit    = 5
)

// LedgerService owns the credit-accounting model: per-customer outstanding
// balances, payment recording, and shop-wide financial aggregates. Balances
// are always recomputed from the full set of entries, never cached.
type LedgerService struct {
	transactionRepo repository.TransactionRepository
	customerRepo    repository.CustomerRepository
	productRepo     repository.ProductRepository
	costRatio       float64
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	transactionRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	costRatio float64,
) *LedgerService {
	return &LedgerService{
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
		productRepo:     productRepo,
		costRatio:       costRatio,
	}
}

// outstandingFromEntries folds a customer's entries into their balance:
// credit sales minus the absolute value of payments. Payments are stored
// with negative totals.
func outstandingFromEntries(entries []entity.Transaction) int64 {
	var credit, payments int64
	for _, t := range entries {
		switch t.Status {
		case enum.StatusCredit:
			credit += t.TotalAmount
		case enum.StatusPayment:
			payments += abs(t.TotalAmount)
		}
	}
	return credit - payments
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// OutstandingCredit recomputes how much a customer currently owes.
// A value of zero or less means no debt.
func (s *LedgerService) OutstandingCredit(ctx context.Context, customerID uuid.UUID) (int64, error) {
	entries, err := s.transactionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}
	return outstandingFromEntries(entries), nil
}

// RecordPayment settles part or all of a customer's outstanding credit.
// The amount is validated against the balance recomputed at call time and
// the payment is written as a negative ledger entry.
func (s *LedgerService) RecordPayment(ctx context.Context, customerID uuid.UUID, amount int64) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be greater than zero")
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	outstanding, err := s.OutstandingCredit(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if outstanding <= 0 {
		return nil, apperror.NewBadRequestError("Customer has no outstanding balance due")
	}

	if amount > outstanding {
		return nil, apperror.NewBadRequestError(fmt.Sprintf(
			"Payment amount (%.2f) exceeds the total due (%.2f)",
			float64(amount)/100, float64(outstanding)/100))
	}

	transaction := &entity.Transaction{
		TotalAmount: -amount,
		TotalCost:   0,
		Status:      enum.StatusPayment,
		CustomerID:  &customerID,
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// CustomerStatement is a customer's full ledger with their current balance.
type CustomerStatement struct {
	Customer    *entity.Customer
	Entries     []entity.Transaction
	Outstanding int64
}

// GetCustomerStatement returns a customer's entries, newest first, with
// their outstanding balance recomputed from those entries.
func (s *LedgerService) GetCustomerStatement(ctx context.Context, customerID uuid.UUID) (*CustomerStatement, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	entries, err := s.transactionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &CustomerStatement{
		Customer:    customer,
		Entries:     entries,
		Outstanding: outstandingFromEntries(entries),
	}, nil
}

// ShopSummary holds the shop-wide financial aggregates, all in minor units.
// Void entries are excluded from revenue, cost, and profit.
type ShopSummary struct {
	Revenue          int64
	CostOfGoods      int64
	GrossProfit      int64
	CashSales        int64
	CardSales        int64
	CreditSales      int64
	PaymentsReceived int64
	TotalCreditDue   int64
	LossEstimate     int64
	InventoryValue   int64
	DeadStock        []entity.Product
}

// GetShopSummary folds the whole ledger and the product catalog into the
// analysis figures.
func (s *LedgerService) GetShopSummary(ctx context.Context) (*ShopSummary, error) {
	entries, err := s.transactionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ShopSummary{}
	for _, t := range entries {
		if t.Status != enum.StatusVoid {
			summary.Revenue += t.TotalAmount
			summary.CostOfGoods += t.TotalCost
		}
		switch t.Status {
		case enum.StatusCash:
			summary.CashSales += t.TotalAmount
		case enum.StatusCard:
			summary.CardSales += t.TotalAmount
		case enum.StatusCredit:
			summary.CreditSales += t.TotalAmount
		case enum.StatusPayment:
			summary.PaymentsReceived += abs(t.TotalAmount)
		}
	}
	summary.GrossProfit = summary.Revenue - summary.CostOfGoods
	summary.TotalCreditDue = summary.CreditSales - summary.PaymentsReceived
	summary.LossEstimate = summary.TotalCreditDue

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		estimatedCostPerUnit := int64(float64(p.Price) * s.costRatio)
		summary.InventoryValue += estimatedCostPerUnit * int64(p.Stock)
		if p.Stock > deadStockMinUnits && len(summary.DeadStock) < deadStockLimit {
			summary.DeadStock = append(summary.DeadStock, p)
		}
	}

	return summary, nil
}
