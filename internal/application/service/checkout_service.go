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
	"github.com/kipsang/dukapos-api/pkg/pricing"
)

// CheckoutService runs a point-of-sale checkout end to end: prices the
// cart, checks the tender, draws down stock, and records the fulfilled
// customer order together with its inbound payment.
type CheckoutService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
) *CheckoutService {
	return &CheckoutService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
	}
}

// CheckoutItemInput is one cart line; the unit price comes from the product
// record, never from the client.
type CheckoutItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutInput represents a point-of-sale checkout. CustomerID nil means a
// walk-in sale.
type CheckoutInput struct {
	CustomerID    *uuid.UUID
	Items         []CheckoutItemInput
	DiscountType  pricing.DiscountType
	DiscountValue float64
	VATPercentage float64
	Method        enum.PaymentMethod
	Tendered      float64
	ReferenceNo   string
}

// CheckoutResult echoes the priced cart plus the created records
type CheckoutResult struct {
	Order    *entity.Order   `json:"order"`
	Payment  *entity.Payment `json:"payment"`
	Subtotal float64         `json:"subtotal"`
	Discount float64         `json:"discount"`
	Total    float64         `json:"total"`
	NetOfVAT float64         `json:"net_of_vat"`
	Tax      float64         `json:"tax"`
	Tendered float64         `json:"tendered,omitempty"`
	Change   float64         `json:"change,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Checkout prices the cart and, when the tender covers it, persists the
// sale. Cash requires tendered >= total; other methods settle exactly, and
// a missing reference is echoed as a warning rather than refusing the sale.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	var fields []apperror.FieldError
	if len(input.Items) == 0 {
		fields = append(fields, apperror.FieldError{Field: "items", Message: "at least one line item is required"})
	}
	for i, item := range input.Items {
		if item.ProductID == uuid.Nil {
			fields = append(fields, apperror.FieldError{Field: fmt.Sprintf("items[%d].product_id", i), Message: "is required"})
		}
		if item.Quantity <= 0 {
			fields = append(fields, apperror.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be greater than zero"})
		}
	}
	if !input.Method.Valid() {
		fields = append(fields, apperror.FieldError{Field: "method", Message: "is not a supported payment method"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	var customerID uuid.UUID
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customerID = customer.ID
	}

	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	cart := make([]pricing.Item, 0, len(input.Items))
	lines := make([]entity.OrderLineItem, 0, len(input.Items))
	stockMoves := make(map[uuid.UUID]int, len(input.Items))
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		cart = append(cart, pricing.Item{Qty: item.Quantity, UnitPrice: product.SellingPrice})
		lines = append(lines, entity.OrderLineItem{
			ProductID:         item.ProductID,
			QuantityOrdered:   item.Quantity,
			QuantityFulfilled: item.Quantity,
			UnitCost:          product.SellingPrice,
			LineTotal:         product.SellingPrice * int64(item.Quantity),
		})
		stockMoves[item.ProductID] = item.Quantity
	}

	summary, err := pricing.Compute(cart, input.DiscountType, input.DiscountValue, input.VATPercentage)
	if err != nil {
		return nil, err
	}

	var change pricing.Money
	if input.Method == enum.PaymentMethodCash {
		change, err = pricing.Change(money.ToCents(input.Tendered), summary.Total)
		if err != nil {
			return nil, err
		}
	}

	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockMoves)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	// A checkout sale is born fulfilled; its totals come from the priced
	// cart, discount included, not from line recomputation.
	order := &entity.Order{
		Kind:           enum.OrderKindCustomer,
		OrderNo:        fmt.Sprintf("SO-%s", uuid.New().String()[:8]),
		CounterpartyID: customerID,
		OrderDate:      time.Now(),
		Status:         enum.OrderStatusFulfilled,
		SubTotal:       summary.Subtotal,
		Tax:            summary.Tax,
		Total:          summary.Total,
		TaxPercentage:  input.VATPercentage,
		Version:        1,
		Items:          lines,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Stock already moved, undo before surfacing the error
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockMoves)
		return nil, err
	}

	payment := &entity.Payment{
		PaymentNo:    fmt.Sprintf("PAY-%s", uuid.New().String()[:8]),
		PayableID:    order.ID,
		PayableKind:  enum.OrderKindCustomer,
		Direction:    enum.PaymentDirectionInbound,
		Method:       input.Method,
		Amount:       summary.Total,
		ReferenceNo:  input.ReferenceNo,
		DateReceived: time.Now(),
		Status:       enum.DefaultPaymentStatus(input.Method, enum.PaymentDirectionInbound),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		// Leave nothing behind: the order and the stock move are both
		// undone so the sale can be retried cleanly.
		_ = s.orderRepo.Delete(ctx, order.ID)
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockMoves)
		return nil, err
	}

	result := &CheckoutResult{
		Order:    order,
		Payment:  payment,
		Subtotal: money.FromCents(summary.Subtotal),
		Discount: money.FromCents(summary.Discount),
		Total:    money.FromCents(summary.Total),
		NetOfVAT: money.FromCents(summary.NetOfVAT),
		Tax:      money.FromCents(summary.Tax),
	}
	if input.Method == enum.PaymentMethodCash {
		result.Tendered = input.Tendered
		result.Change = money.FromCents(change)
	}
	if input.Method.RequiresReference() && input.ReferenceNo == "" {
		result.Warnings = append(result.Warnings, input.Method.MissingReferenceWarning())
	}
	return result, nil
}
