package request

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindPayment(t *testing.T, body string) (RecordPaymentRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/customers/1/payments", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req RecordPaymentRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

// A zero or negative amount must pass binding so the ledger can answer
// with its own rejection message instead of a generic body error.
func TestRecordPaymentRequest_ZeroAmountPassesBinding(t *testing.T) {
	req, err := bindPayment(t, `{"amount": 0}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, req.Amount)

	req, err = bindPayment(t, `{"amount": -5.50}`)
	require.NoError(t, err)
	assert.Equal(t, -5.50, req.Amount)
}

func TestRecordPaymentRequest_MalformedBodyRejected(t *testing.T) {
	_, err := bindPayment(t, `{"amount": "ten"}`)
	require.Error(t, err)
}
