package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kipsang/dukapos-api/internal/domain/enum"
	"github.com/kipsang/dukapos-api/pkg/apperror"
)

// Order represents a purchase or customer order. Both variants share this
// shape; Kind selects whether CounterpartyID references a supplier or a
// customer.
//
// Totals invariant, restored by RecomputeTotals after every mutation:
//
//	SubTotal = sum of LineTotal over non-voided items
//	Tax      = round(SubTotal * TaxPercentage / 100)
//	Total    = SubTotal + Tax + sum of adjustment amounts
type Order struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Kind           enum.OrderKind   `gorm:"size:20;not null;index" json:"kind"`
	OrderNo        string           `gorm:"size:100;unique;not null" json:"order_no"`
	CounterpartyID uuid.UUID        `gorm:"type:uuid;not null;index" json:"counterparty_id"`
	OrderDate      time.Time        `gorm:"type:date;not null" json:"order_date"`
	ExpectedDate   *time.Time       `gorm:"type:date" json:"expected_date,omitempty"`
	Status         enum.OrderStatus `gorm:"default:0" json:"status"`
	SubTotal       int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Tax            int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total          int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxPercentage  float64          `gorm:"type:decimal(5,2);default:0" json:"tax_percentage"`
	Notes          string           `gorm:"type:text" json:"notes"`
	Version        int64            `gorm:"default:1" json:"version"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Items       []OrderLineItem   `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Adjustments []OrderAdjustment `gorm:"foreignKey:OrderID" json:"adjustments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(o),
		SubTotal: float64(o.SubTotal) / 100,
		Tax:      float64(o.Tax) / 100,
		Total:    float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// RecomputeTotals restores the totals invariant from non-voided line items,
// the tax rate, and the adjustments.
func (o *Order) RecomputeTotals() {
	var subtotal int64
	for _, item := range o.Items {
		if item.IsVoided {
			continue
		}
		subtotal += item.LineTotal
	}
	var adjustments int64
	for _, adj := range o.Adjustments {
		adjustments += adj.Amount
	}
	o.SubTotal = subtotal
	o.Tax = int64(math.Round(float64(subtotal) * o.TaxPercentage / 100))
	o.Total = subtotal + o.Tax + adjustments
}

// TransitionTo moves the order to target when the move is legal and leaves
// it untouched otherwise.
func (o *Order) TransitionTo(target enum.OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return apperror.ErrInvalidTransition
	}
	o.Status = target
	return nil
}

// LineForProduct returns the line item for the product, or nil.
func (o *Order) LineForProduct(productID uuid.UUID) *OrderLineItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

// ConvertLineToCash voids the line for the product and offsets it with a
// negative cash_conversion adjustment. All checks run before any field is
// touched, so a failed call leaves the order unchanged.
func (o *Order) ConvertLineToCash(productID uuid.UUID, reason string) error {
	if o.Status == enum.OrderStatusFulfilled || o.Status == enum.OrderStatusCancelled {
		return apperror.ErrOrderLocked
	}
	line := o.LineForProduct(productID)
	if line == nil {
		return apperror.ErrLineNotFound
	}
	if line.IsVoided {
		return apperror.ErrLineAlreadyVoided
	}

	line.IsVoided = true
	line.VoidReason = reason
	pid := productID
	o.Adjustments = append(o.Adjustments, OrderAdjustment{
		OrderID:   o.ID,
		Type:      enum.AdjustmentTypeCashConversion,
		Amount:    -line.LineTotal,
		ProductID: &pid,
	})
	o.RecomputeTotals()
	return nil
}

// RevertLineToCash is the exact inverse of ConvertLineToCash: it restores
// the line and removes the single matching cash_conversion adjustment, so a
// convert followed by a revert reproduces the original items, adjustments,
// and totals.
func (o *Order) RevertLineToCash(productID uuid.UUID) error {
	line := o.LineForProduct(productID)
	if line == nil {
		return apperror.ErrLineNotFound
	}
	if !line.IsVoided {
		return apperror.ErrLineNotVoided
	}

	line.IsVoided = false
	line.VoidReason = ""
	for i := range o.Adjustments {
		adj := o.Adjustments[i]
		if adj.Type == enum.AdjustmentTypeCashConversion && adj.ProductID != nil && *adj.ProductID == productID {
			o.Adjustments = append(o.Adjustments[:i], o.Adjustments[i+1:]...)
			break
		}
	}
	o.RecomputeTotals()
	return nil
}

// GetTotalDecimal returns the total as a decimal
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.Total) / 100
}

// OrderLineItem represents a line item in an order. LineTotal is fixed at
// creation; voiding keeps the line in place for audit and only excludes it
// from subtotal recomputation.
type OrderLineItem struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	QuantityOrdered   int            `gorm:"not null" json:"quantity_ordered"`
	QuantityFulfilled int            `gorm:"default:0" json:"quantity_fulfilled"`
	UnitCost          int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	LineTotal         int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	IsVoided          bool           `gorm:"default:false" json:"is_voided"`
	VoidReason        string         `gorm:"size:255" json:"void_reason,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (li OrderLineItem) MarshalJSON() ([]byte, error) {
	type Alias OrderLineItem
	return json.Marshal(&struct {
		Alias
		UnitCost  float64 `json:"unit_cost"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(li),
		UnitCost:  float64(li.UnitCost) / 100,
		LineTotal: float64(li.LineTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new line item
func (li *OrderLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLineItem model
func (OrderLineItem) TableName() string {
	return "order_line_items"
}

// OrderAdjustment represents a signed amount applied on top of an order's
// subtotal and tax. Adjustments are created and removed only by the line
// conversion methods on Order, never by presentation code.
type OrderAdjustment struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"order_id"`
	Type        enum.AdjustmentType `gorm:"size:50;not null" json:"type"`
	Amount      int64               `gorm:"not null" json:"-"` // Stored in cents, signed
	Description string              `gorm:"size:255" json:"description,omitempty"`
	ProductID   *uuid.UUID          `gorm:"type:uuid;index" json:"product_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (a OrderAdjustment) MarshalJSON() ([]byte, error) {
	type Alias OrderAdjustment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(a),
		Amount: float64(a.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new adjustment
func (a *OrderAdjustment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderAdjustment model
func (OrderAdjustment) TableName() string {
	return "order_adjustments"
}
