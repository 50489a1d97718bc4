package request

// CartLine is one line of a checkout cart
type CartLine struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest represents a checkout request
type CheckoutRequest struct {
	Items         []CartLine `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string     `json:"payment_method"`
	CustomerID    *string    `json:"customer_id" binding:"omitempty,uuid"`
}
