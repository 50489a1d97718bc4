package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSaleCoversExactlyTheSaleStatuses(t *testing.T) {
	for _, status := range SaleStatuses {
		assert.True(t, status.IsSale(), "%s should be accepted at checkout", status)
	}

	for _, status := range []TransactionStatus{StatusPayment, StatusVoid, "Barter", ""} {
		assert.False(t, status.IsSale(), "%s should be rejected at checkout", status)
	}
}

func TestValid(t *testing.T) {
	for _, status := range []TransactionStatus{StatusCash, StatusCard, StatusCredit, StatusPayment, StatusVoid} {
		assert.True(t, status.Valid())
	}
	assert.False(t, TransactionStatus("Barter").Valid())
}
