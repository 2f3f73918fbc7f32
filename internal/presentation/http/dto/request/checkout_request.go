package request

import "github.com/google/uuid"

// CheckoutItemRequest is one cart line of a checkout
type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents a point-of-sale checkout request
type CheckoutRequest struct {
	CustomerID    *uuid.UUID            `json:"customer_id"`
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
	DiscountType  string                `json:"discount_type" binding:"omitempty,oneof=percentage amount"`
	DiscountValue float64               `json:"discount_value" binding:"min=0"`
	VATPercentage float64               `json:"vat_percentage" binding:"min=0,max=100"`
	Method        string                `json:"method" binding:"required"`
	Tendered      float64               `json:"tendered" binding:"min=0"`
	ReferenceNo   string                `json:"reference_no" binding:"omitempty,max=100"`
}
