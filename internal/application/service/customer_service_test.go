package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/enum"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/apperror"
)

func newCustomerFixture() (*CustomerService, *mockCustomerRepository, *mockTransactionRepository) {
	transactionRepo := newMockTransactionRepository()
	customerRepo := newMockCustomerRepository(transactionRepo)
	return NewCustomerService(customerRepo), customerRepo, transactionRepo
}

func TestCreateCustomer_DuplicatePhoneConflicts(t *testing.T) {
	svc, _, _ := newCustomerFixture()

	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{Name: "Karan", Phone: "9876543210"})
	require.NoError(t, err)

	_, err = svc.CreateCustomer(context.Background(), &CreateCustomerInput{Name: "Other Karan", Phone: "9876543210"})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateCustomer_RequiresNameAndPhone(t *testing.T) {
	svc, _, _ := newCustomerFixture()

	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{Phone: "9876543210"})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.CreateCustomer(context.Background(), &CreateCustomerInput{Name: "Karan"})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestQuickAddCustomer(t *testing.T) {
	svc, _, _ := newCustomerFixture()

	customer, err := svc.QuickAddCustomer(context.Background(), "Karan", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "Karan", customer.Name)
	assert.Nil(t, customer.Email)
}

func TestDeleteCustomer_RemovesOnlyTheirLedger(t *testing.T) {
	svc, customerRepo, transactionRepo := newCustomerFixture()

	karan := seedCustomer(t, customerRepo, "Karan", "9876543210")
	priya := seedCustomer(t, customerRepo, "Priya", "9988776655")

	seedEntry(t, transactionRepo, karan, 50000, enum.StatusCredit)
	seedEntry(t, transactionRepo, karan, -20000, enum.StatusPayment)
	seedEntry(t, transactionRepo, priya, 80000, enum.StatusCredit)

	require.NoError(t, svc.DeleteCustomer(context.Background(), karan))

	gone, err := customerRepo.GetByID(context.Background(), karan)
	require.NoError(t, err)
	assert.Nil(t, gone)

	karanEntries, err := transactionRepo.ListByCustomer(context.Background(), karan)
	require.NoError(t, err)
	assert.Empty(t, karanEntries)

	// Priya's ledger and balance are untouched
	priyaEntries, err := transactionRepo.ListByCustomer(context.Background(), priya)
	require.NoError(t, err)
	assert.Len(t, priyaEntries, 1)
}

func TestUpdateCustomer_PartialUpdate(t *testing.T) {
	svc, customerRepo, _ := newCustomerFixture()
	id := seedCustomer(t, customerRepo, "Karan", "9876543210")

	email := "karan@example.com"
	updated, err := svc.UpdateCustomer(context.Background(), id, &UpdateCustomerInput{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Karan", updated.Name)
	require.NotNil(t, updated.Email)
	assert.Equal(t, email, *updated.Email)
}

func TestExportCustomersCSV(t *testing.T) {
	svc, customerRepo, _ := newCustomerFixture()
	seedCustomer(t, customerRepo, "Karan", "9876543210")

	data, err := svc.ExportCustomersCSV(context.Background())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "name,phone,email,address")
	assert.Contains(t, out, "Karan")
}
