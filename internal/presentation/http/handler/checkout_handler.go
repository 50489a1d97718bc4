package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/application/service"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/enum"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/presentation/http/dto/request"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/presentation/http/dto/response"
)

// CheckoutHandler handles the point-of-sale checkout endpoint
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CheckoutInput{
		PaymentMethod: enum.StatusCash,
	}

	if req.PaymentMethod != "" {
		input.PaymentMethod = enum.TransactionStatus(req.PaymentMethod)
	}

	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &customerID
	}

	for _, line := range req.Items {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return
		}
		input.Items = append(input.Items, service.CartLineInput{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", gin.H{
		"transaction": result.Transaction,
		"lines":       result.Lines,
	})
}
