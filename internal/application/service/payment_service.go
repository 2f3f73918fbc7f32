package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kipsang/dukapos-api/internal/domain/entity"
	"github.com/kipsang/dukapos-api/internal/domain/enum"
	"github.com/kipsang/dukapos-api/internal/domain/repository"
	"github.com/kipsang/dukapos-api/pkg/apperror"
	"github.com/kipsang/dukapos-api/pkg/money"
	"github.com/kipsang/dukapos-api/pkg/pagination"
)

// PaymentService records payments against orders. Direction always follows
// the order kind: purchase orders pay out, customer orders pay in. Status
// rows come from the method and direction and only ever move forward.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// AllocationInput is one order's share of a consolidated payment
type AllocationInput struct {
	OrderID uuid.UUID
	Amount  float64
}

// CreatePaymentInput represents the create payment input. A non-empty
// Allocations slice makes the payment consolidated; PayableID is then
// ignored and derived from the counterparty the orders share.
type CreatePaymentInput struct {
	PayableID    uuid.UUID
	Method       enum.PaymentMethod
	Amount       float64
	BankName     string
	AccountNo    string
	ReferenceNo  string
	DateReceived time.Time
	Status       *enum.PaymentStatus
	Allocations  []AllocationInput
}

func (s *PaymentService) validateInput(input *CreatePaymentInput) []apperror.FieldError {
	var fields []apperror.FieldError
	if !input.Method.Valid() {
		fields = append(fields, apperror.FieldError{Field: "method", Message: "is not a supported payment method"})
	}
	if input.Amount <= 0 {
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	for i, alloc := range input.Allocations {
		if alloc.OrderID == uuid.Nil {
			fields = append(fields, apperror.FieldError{Field: fmt.Sprintf("allocations[%d].order_id", i), Message: "is required"})
		}
		if alloc.Amount <= 0 {
			fields = append(fields, apperror.FieldError{Field: fmt.Sprintf("allocations[%d].amount", i), Message: "must be greater than zero"})
		}
	}
	return fields
}

// CreatePayment records a payment. For a direct payment the target order
// fixes kind and direction. For a consolidated payment every allocated order
// must share one kind and one counterparty, and the shares must sum exactly
// to the payment amount.
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	if fields := s.validateInput(input); len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	amountCents := money.ToCents(input.Amount)
	consolidated := len(input.Allocations) > 0

	var kind enum.OrderKind
	var payableID uuid.UUID
	var allocations []entity.PaymentAllocation

	if consolidated {
		var allocTotal int64
		var counterparty uuid.UUID
		for i, alloc := range input.Allocations {
			order, err := s.orderRepo.GetByID(ctx, alloc.OrderID)
			if err != nil {
				return nil, err
			}
			if order == nil {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Order %s", alloc.OrderID))
			}
			if i == 0 {
				kind = order.Kind
				counterparty = order.CounterpartyID
			} else {
				if order.Kind != kind {
					return nil, apperror.NewBadRequestError("Consolidated payment cannot mix purchase and customer orders")
				}
				if order.CounterpartyID != counterparty {
					return nil, apperror.NewBadRequestError("Consolidated payment orders must share one counterparty")
				}
			}
			shareCents := money.ToCents(alloc.Amount)
			allocTotal += shareCents
			allocations = append(allocations, entity.PaymentAllocation{
				OrderID:   alloc.OrderID,
				OrderKind: order.Kind,
				Amount:    shareCents,
			})
		}
		if allocTotal != amountCents {
			return nil, apperror.ErrConsolidationMismatch
		}
		payableID = counterparty
	} else {
		order, err := s.orderRepo.GetByID(ctx, input.PayableID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.NewNotFoundError("Order")
		}
		kind = order.Kind
		payableID = order.ID
	}

	direction := kind.Direction()

	status := enum.DefaultPaymentStatus(input.Method, direction)
	if input.Status != nil {
		if !enum.ValidPaymentStatus(input.Method, direction, *input.Status) {
			return nil, apperror.ErrInvalidPaymentStatus
		}
		status = *input.Status
	}

	dateReceived := input.DateReceived
	if dateReceived.IsZero() {
		dateReceived = time.Now()
	}

	payment := &entity.Payment{
		PaymentNo:      fmt.Sprintf("PAY-%s", uuid.New().String()[:8]),
		PayableID:      payableID,
		PayableKind:    kind,
		Direction:      direction,
		Method:         input.Method,
		Amount:         amountCents,
		BankName:       input.BankName,
		AccountNo:      input.AccountNo,
		ReferenceNo:    input.ReferenceNo,
		DateReceived:   dateReceived,
		Status:         status,
		IsConsolidated: consolidated,
		Allocations:    allocations,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments lists payments with filtering
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// UpdatePaymentStatus advances a payment along its status row. Backward
// moves and statuses from another method/direction row are rejected.
func (s *PaymentService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, target enum.PaymentStatus) (*entity.Payment, error) {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !enum.ValidPaymentStatus(payment.Method, payment.Direction, target) {
		return nil, apperror.ErrInvalidPaymentStatus
	}
	if !enum.CanAdvancePaymentStatus(payment.Method, payment.Direction, payment.Status, target) {
		return nil, apperror.ErrInvalidStatusTransition
	}

	payment.Status = target
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// MarkDeposited flags a payment as banked
func (s *PaymentService) MarkDeposited(ctx context.Context, id uuid.UUID, depositDate time.Time) (*entity.Payment, error) {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.Deposited {
		return nil, apperror.NewBadRequestError("Payment is already deposited")
	}

	if depositDate.IsZero() {
		depositDate = time.Now()
	}
	payment.Deposited = true
	payment.DepositDate = &depositDate

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// DeletePayment removes a payment and its allocations
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return err
	}
	return s.paymentRepo.Delete(ctx, payment.ID)
}
