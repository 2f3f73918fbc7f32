package request

import (
	"time"

	"github.com/google/uuid"
)

// OrderLineRequest represents one line item of an order request
type OrderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	UnitCost  float64   `json:"unit_cost" binding:"min=0"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	Kind           string             `json:"kind" binding:"required,oneof=purchase customer"`
	CounterpartyID uuid.UUID          `json:"counterparty_id" binding:"required"`
	OrderDate      *time.Time         `json:"order_date"`
	ExpectedDate   *time.Time         `json:"expected_date"`
	TaxPercentage  float64            `json:"tax_percentage" binding:"min=0,max=100"`
	Notes          string             `json:"notes" binding:"omitempty,max=2000"`
	Items          []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest represents a draft order update request
type UpdateOrderRequest struct {
	ExpectedDate  *time.Time         `json:"expected_date"`
	TaxPercentage *float64           `json:"tax_percentage" binding:"omitempty,min=0,max=100"`
	Notes         *string            `json:"notes" binding:"omitempty,max=2000"`
	Items         []OrderLineRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// TransitionOrderRequest names the target lifecycle state
type TransitionOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// FulfillLineRequest records the delivered quantity for one line
type FulfillLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=0"`
}

// FulfillOrderRequest represents an order fulfilment request. Lines left
// out are fulfilled at their ordered quantity.
type FulfillOrderRequest struct {
	Lines []FulfillLineRequest `json:"lines" binding:"omitempty,dive"`
}

// ConvertLineRequest represents a line-to-cash conversion request
type ConvertLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Reason    string    `json:"reason" binding:"omitempty,max=255"`
}

// RevertLineRequest represents a line conversion revert request
type RevertLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}
