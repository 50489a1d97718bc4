package request

// CreateProductRequest represents a create product request
type CreateProductRequest struct {
	Name       string            `json:"name" binding:"required,max=255"`
	Price      float64           `json:"price" binding:"required,gte=0"`
	Stock      int               `json:"stock" binding:"gte=0"`
	Attributes map[string]string `json:"attributes"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name       *string           `json:"name" binding:"omitempty,max=255"`
	Price      *float64          `json:"price" binding:"omitempty,gte=0"`
	Stock      *int              `json:"stock" binding:"omitempty,gte=0"`
	Attributes map[string]string `json:"attributes"`
}
