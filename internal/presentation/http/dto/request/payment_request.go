package request

import (
	"time"

	"github.com/google/uuid"
)

// AllocationRequest is one order's share of a consolidated payment
type AllocationRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	Amount  float64   `json:"amount" binding:"required,gt=0"`
}

// CreatePaymentRequest represents a payment creation request. Allocations
// present makes it consolidated; payable_id is required otherwise.
type CreatePaymentRequest struct {
	PayableID    *uuid.UUID          `json:"payable_id"`
	Method       string              `json:"method" binding:"required"`
	Amount       float64             `json:"amount" binding:"required,gt=0"`
	BankName     string              `json:"bank_name" binding:"omitempty,max=255"`
	AccountNo    string              `json:"account_no" binding:"omitempty,max=100"`
	ReferenceNo  string              `json:"reference_no" binding:"omitempty,max=100"`
	DateReceived *time.Time          `json:"date_received"`
	Status       *string             `json:"status"`
	Allocations  []AllocationRequest `json:"allocations" binding:"omitempty,min=1,dive"`
}

// UpdatePaymentStatusRequest advances a payment along its status row
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DepositPaymentRequest marks a payment as banked
type DepositPaymentRequest struct {
	DepositDate *time.Time `json:"deposit_date"`
}

// PaymentFilterRequest represents payment filter parameters
type PaymentFilterRequest struct {
	PayableID string `form:"payable_id"`
	Kind      string `form:"kind"`
	Direction string `form:"direction"`
	Method    string `form:"method"`
	Deposited string `form:"deposited"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
