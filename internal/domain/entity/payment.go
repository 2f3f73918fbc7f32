package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kipsang/dukapos-api/internal/domain/enum"
)

// Payment records money moving against one order, or, when consolidated,
// against several orders with an explicit share each. A payment is immutable
// after creation except for its status and deposit fields, which only move
// forward.
type Payment struct {
	ID             uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	PaymentNo      string                `gorm:"size:100;unique;not null" json:"payment_no"`
	PayableID      uuid.UUID             `gorm:"type:uuid;not null;index" json:"payable_id"`
	PayableKind    enum.OrderKind        `gorm:"size:20;not null;index" json:"payable_kind"`
	Direction      enum.PaymentDirection `gorm:"size:20;not null;index" json:"direction"`
	Method         enum.PaymentMethod    `gorm:"size:30;not null" json:"method"`
	Amount         int64                 `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	BankName       string                `gorm:"size:255" json:"bank_name,omitempty"`
	AccountNo      string                `gorm:"size:100" json:"account_no,omitempty"`
	ReferenceNo    string                `gorm:"size:100" json:"reference_no,omitempty"`
	DateReceived   time.Time             `gorm:"type:date;not null" json:"date_received"`
	Deposited      bool                  `gorm:"default:false" json:"deposited"`
	DepositDate    *time.Time            `gorm:"type:date" json:"deposit_date,omitempty"`
	Status         enum.PaymentStatus    `gorm:"size:50;not null" json:"status"`
	IsConsolidated bool                  `gorm:"default:false" json:"is_consolidated"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	DeletedAt      gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Allocations []PaymentAllocation `gorm:"foreignKey:PaymentID" json:"allocations,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// AllocationTotal sums the per-order shares of a consolidated payment.
func (p *Payment) AllocationTotal() int64 {
	var total int64
	for _, alloc := range p.Allocations {
		total += alloc.Amount
	}
	return total
}

// AllocationFor returns the share recorded for an order, reporting whether
// the payment covers it at all.
func (p *Payment) AllocationFor(orderID uuid.UUID) (int64, bool) {
	for _, alloc := range p.Allocations {
		if alloc.OrderID == orderID {
			return alloc.Amount, true
		}
	}
	return 0, false
}

// Covers reports whether the payment settles any part of the order, either
// directly or through a consolidated share.
func (p *Payment) Covers(orderID uuid.UUID) bool {
	if p.IsConsolidated {
		_, ok := p.AllocationFor(orderID)
		return ok
	}
	return p.PayableID == orderID
}

// PaymentAllocation is one order's share of a consolidated payment. The
// recorded amount is authoritative for reconciliation; it is never prorated
// from the payment total.
type PaymentAllocation struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"payment_id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	OrderKind enum.OrderKind `gorm:"size:20;not null" json:"order_kind"`
	Amount    int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (a PaymentAllocation) MarshalJSON() ([]byte, error) {
	type Alias PaymentAllocation
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(a),
		Amount: float64(a.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new allocation
func (a *PaymentAllocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentAllocation model
func (PaymentAllocation) TableName() string {
	return "payment_allocations"
}
