package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/entity"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/enum"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/apperror"
)

func newCheckoutFixture() (*CheckoutService, *mockProductRepository, *mockCustomerRepository, *mockTransactionRepository) {
	transactionRepo := newMockTransactionRepository()
	customerRepo := newMockCustomerRepository(transactionRepo)
	productRepo := newMockProductRepository()
	svc := NewCheckoutService(productRepo, customerRepo, transactionRepo, 0.70)
	return svc, productRepo, customerRepo, transactionRepo
}

func seedProduct(t *testing.T, repo *mockProductRepository, name string, price int64, stock int) uuid.UUID {
	t.Helper()
	product := &entity.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, repo.Create(context.Background(), product))
	return product.ID
}

func TestCheckout_RecordsSingleAggregateEntry(t *testing.T) {
	svc, productRepo, _, transactionRepo := newCheckoutFixture()
	shirt := seedProduct(t, productRepo, "Red T-Shirt", 25000, 50)
	jeans := seedProduct(t, productRepo, "Blue Jeans", 120000, 30)

	result, err := svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CartLineInput{
			{ProductID: shirt, Quantity: 2},
			{ProductID: jeans, Quantity: 1},
		},
		PaymentMethod: enum.StatusCash,
	})
	require.NoError(t, err)

	// 2*250.00 + 1*1200.00 = 1700.00, cost 1190.00
	assert.Equal(t, int64(170000), result.Transaction.TotalAmount)
	assert.Equal(t, int64(119000), result.Transaction.TotalCost)
	assert.Equal(t, enum.StatusCash, result.Transaction.Status)
	assert.Nil(t, result.Transaction.CustomerID)
	assert.Len(t, transactionRepo.entries, 1)

	shirtAfter, _ := productRepo.GetByID(context.Background(), shirt)
	jeansAfter, _ := productRepo.GetByID(context.Background(), jeans)
	assert.Equal(t, 48, shirtAfter.Stock)
	assert.Equal(t, 29, jeansAfter.Stock)
	assert.Equal(t, 2, shirtAfter.UnitsSold)
	assert.Equal(t, 1, jeansAfter.UnitsSold)
}

func TestCheckout_InsufficientStockRollsBackEverything(t *testing.T) {
	svc, productRepo, _, transactionRepo := newCheckoutFixture()
	plenty := seedProduct(t, productRepo, "Red T-Shirt", 25000, 5)
	scarce := seedProduct(t, productRepo, "Leather Wallet", 45000, 1)

	_, err := svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CartLineInput{
			{ProductID: plenty, Quantity: 3},
			{ProductID: scarce, Quantity: 2},
		},
		PaymentMethod: enum.StatusCash,
	})
	require.Error(t, err)
	assert.Contains(t, apperror.GetAppError(err).Message, "Insufficient stock for Leather Wallet")

	// Neither line moved and no ledger entry was written
	plentyAfter, _ := productRepo.GetByID(context.Background(), plenty)
	scarceAfter, _ := productRepo.GetByID(context.Background(), scarce)
	assert.Equal(t, 5, plentyAfter.Stock)
	assert.Equal(t, 1, scarceAfter.Stock)
	assert.Empty(t, transactionRepo.entries)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	svc, _, _, _ := newCheckoutFixture()

	_, err := svc.Checkout(context.Background(), &CheckoutInput{
		PaymentMethod: enum.StatusCash,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCheckout_InvalidPaymentMethodRejected(t *testing.T) {
	svc, productRepo, _, _ := newCheckoutFixture()
	shirt := seedProduct(t, productRepo, "Red T-Shirt", 25000, 50)

	for _, method := range []enum.TransactionStatus{enum.StatusPayment, enum.StatusVoid, "Barter"} {
		_, err := svc.Checkout(context.Background(), &CheckoutInput{
			Items:         []CartLineInput{{ProductID: shirt, Quantity: 1}},
			PaymentMethod: method,
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	}
}

func TestCheckout_CreditRequiresCustomer(t *testing.T) {
	svc, productRepo, _, _ := newCheckoutFixture()
	shirt := seedProduct(t, productRepo, "Red T-Shirt", 25000, 50)

	_, err := svc.Checkout(context.Background(), &CheckoutInput{
		Items:         []CartLineInput{{ProductID: shirt, Quantity: 1}},
		PaymentMethod: enum.StatusCredit,
	})
	require.Error(t, err)
	assert.Equal(t, "Credit sales require a customer", apperror.GetAppError(err).Message)
}

func TestCheckout_CreditSaleRaisesOutstandingBalance(t *testing.T) {
	svc, productRepo, customerRepo, transactionRepo := newCheckoutFixture()
	shirt := seedProduct(t, productRepo, "Red T-Shirt", 25000, 50)
	customerID := seedCustomer(t, customerRepo, "Karan", "9876543210")

	result, err := svc.Checkout(context.Background(), &CheckoutInput{
		Items:         []CartLineInput{{ProductID: shirt, Quantity: 2}},
		PaymentMethod: enum.StatusCredit,
		CustomerID:    &customerID,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Transaction.CustomerID)
	assert.Equal(t, customerID, *result.Transaction.CustomerID)

	ledger := NewLedgerService(transactionRepo, customerRepo, productRepo, 0.70)
	outstanding, err := ledger.OutstandingCredit(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), outstanding)
}

func TestCheckout_UnknownProductRejected(t *testing.T) {
	svc, _, _, transactionRepo := newCheckoutFixture()

	_, err := svc.Checkout(context.Background(), &CheckoutInput{
		Items:         []CartLineInput{{ProductID: uuid.New(), Quantity: 1}},
		PaymentMethod: enum.StatusCash,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
	assert.Empty(t, transactionRepo.entries)
}

type failingTransactionRepository struct {
	*mockTransactionRepository
}

func (r *failingTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return errors.New("write failed")
}

func TestCheckout_LedgerFailureRestoresStock(t *testing.T) {
	transactionRepo := &failingTransactionRepository{newMockTransactionRepository()}
	customerRepo := newMockCustomerRepository(transactionRepo.mockTransactionRepository)
	productRepo := newMockProductRepository()
	svc := NewCheckoutService(productRepo, customerRepo, transactionRepo, 0.70)

	shirt := seedProduct(t, productRepo, "Red T-Shirt", 25000, 50)

	_, err := svc.Checkout(context.Background(), &CheckoutInput{
		Items:         []CartLineInput{{ProductID: shirt, Quantity: 2}},
		PaymentMethod: enum.StatusCash,
	})
	require.Error(t, err)

	// Compensation put the moved stock back
	after, _ := productRepo.GetByID(context.Background(), shirt)
	assert.Equal(t, 50, after.Stock)
	assert.Equal(t, 0, after.UnitsSold)
	assert.Empty(t, transactionRepo.entries)
}

func TestCheckout_MergesDuplicateCartLines(t *testing.T) {
	svc, productRepo, _, _ := newCheckoutFixture()
	shirt := seedProduct(t, productRepo, "Red T-Shirt", 25000, 50)

	result, err := svc.Checkout(context.Background(), &CheckoutInput{
		Items: []CartLineInput{
			{ProductID: shirt, Quantity: 2},
			{ProductID: shirt, Quantity: 3},
		},
		PaymentMethod: enum.StatusCard,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(125000), result.Transaction.TotalAmount)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, 5, result.Lines[0].Quantity)

	after, _ := productRepo.GetByID(context.Background(), shirt)
	assert.Equal(t, 45, after.Stock)
}
