package request

// CreateCustomerRequest represents a create customer request
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Phone   string  `json:"phone" binding:"required,max=20"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// QuickAddCustomerRequest creates an account from the till mid-sale
type QuickAddCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Phone string `json:"phone" binding:"required,max=20"`
}

// RecordPaymentRequest represents a debt settlement request. The amount is
// not validated here: the ledger owns the rejection messages, including the
// one for a zero amount.
type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
}
