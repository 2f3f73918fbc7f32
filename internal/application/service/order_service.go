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

// OrderService handles the order lifecycle for both purchase and customer
// orders. Stock moves only at fulfilment: purchase orders add to stock,
// customer orders draw from it.
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// OrderLineInput represents a line item in an order
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitCost  float64
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	Kind           enum.OrderKind
	CounterpartyID uuid.UUID
	OrderDate      time.Time
	ExpectedDate   *time.Time
	TaxPercentage  float64
	Notes          string
	Items          []OrderLineInput
}

// UpdateOrderInput carries the draft-only editable fields. Nil pointers
// leave the stored value untouched; a non-nil Items slice replaces every
// line item.
type UpdateOrderInput struct {
	ExpectedDate  *time.Time
	TaxPercentage *float64
	Notes         *string
	Items         []OrderLineInput
}

// FulfillLineInput records how much of one line actually arrived or shipped.
type FulfillLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

func (s *OrderService) validateLines(items []OrderLineInput) []apperror.FieldError {
	var fields []apperror.FieldError
	if len(items) == 0 {
		fields = append(fields, apperror.FieldError{Field: "items", Message: "at least one line item is required"})
	}
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			fields = append(fields, apperror.FieldError{Field: fmt.Sprintf("items[%d].product_id", i), Message: "is required"})
		}
		if item.Quantity <= 0 {
			fields = append(fields, apperror.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be greater than zero"})
		}
		if item.UnitCost < 0 {
			fields = append(fields, apperror.FieldError{Field: fmt.Sprintf("items[%d].unit_cost", i), Message: "must be zero or positive"})
		}
	}
	return fields
}

func (s *OrderService) checkCounterparty(ctx context.Context, kind enum.OrderKind, id uuid.UUID) error {
	if kind == enum.OrderKindPurchase {
		supplier, err := s.supplierRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}
		return nil
	}
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return nil
}

// buildLineItems converts inputs to line items after confirming every
// referenced product exists. LineTotal is fixed here and never recomputed.
func (s *OrderService) buildLineItems(ctx context.Context, items []OrderLineInput) ([]entity.OrderLineItem, error) {
	productIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
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

	lines := make([]entity.OrderLineItem, 0, len(items))
	for _, item := range items {
		if _, exists := productMap[item.ProductID]; !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		unitCostCents := money.ToCents(item.UnitCost)
		lines = append(lines, entity.OrderLineItem{
			ProductID:       item.ProductID,
			QuantityOrdered: item.Quantity,
			UnitCost:        unitCostCents,
			LineTotal:       unitCostCents * int64(item.Quantity),
		})
	}
	return lines, nil
}

// CreateOrder creates a new draft order with its line items
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	fields := s.validateLines(input.Items)
	if !input.Kind.Valid() {
		fields = append(fields, apperror.FieldError{Field: "kind", Message: "must be purchase or customer"})
	}
	if input.CounterpartyID == uuid.Nil {
		fields = append(fields, apperror.FieldError{Field: "counterparty_id", Message: "is required"})
	}
	if input.TaxPercentage < 0 || input.TaxPercentage > 100 {
		fields = append(fields, apperror.FieldError{Field: "tax_percentage", Message: "must be between 0 and 100"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	if err := s.checkCounterparty(ctx, input.Kind, input.CounterpartyID); err != nil {
		return nil, err
	}

	lines, err := s.buildLineItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	prefix := "SO"
	if input.Kind == enum.OrderKindPurchase {
		prefix = "PO"
	}

	order := &entity.Order{
		Kind:           input.Kind,
		OrderNo:        fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8]),
		CounterpartyID: input.CounterpartyID,
		OrderDate:      orderDate,
		ExpectedDate:   input.ExpectedDate,
		Status:         enum.OrderStatusDraft,
		TaxPercentage:  input.TaxPercentage,
		Notes:          input.Notes,
		Version:        1,
		Items:          lines,
	}
	order.RecomputeTotals()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// GetOrderByNo retrieves an order by its order number
func (s *OrderService) GetOrderByNo(ctx context.Context, orderNo string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateOrder edits a draft order. Submitted and terminal orders reject
// every edit.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, input *UpdateOrderInput) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != enum.OrderStatusDraft {
		return nil, apperror.ErrOrderLocked
	}

	if input.ExpectedDate != nil {
		order.ExpectedDate = input.ExpectedDate
	}
	if input.TaxPercentage != nil {
		if *input.TaxPercentage < 0 || *input.TaxPercentage > 100 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "tax_percentage", Message: "must be between 0 and 100"},
			})
		}
		order.TaxPercentage = *input.TaxPercentage
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	if input.Items != nil {
		if fields := s.validateLines(input.Items); len(fields) > 0 {
			return nil, apperror.NewValidationError(fields)
		}
		lines, err := s.buildLineItems(ctx, input.Items)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		order.Items = lines
		order.RecomputeTotals()
		if err := s.orderRepo.ReplaceLineItems(ctx, order, lines); err != nil {
			return nil, err
		}
		return s.GetOrder(ctx, id)
	}

	order.RecomputeTotals()
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SubmitOrder moves a draft order to submitted
func (s *OrderService) SubmitOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(enum.OrderStatusSubmitted); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// FulfillOrder marks a submitted order fulfilled and applies the stock
// movement. Lines without an explicit quantity count as fully fulfilled;
// voided lines never move stock. Purchase orders add the fulfilled
// quantities to stock, customer orders draw them down atomically.
func (s *OrderService) FulfillOrder(ctx context.Context, id uuid.UUID, lines []FulfillLineInput) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	requested := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		requested[line.ProductID] = line.Quantity
	}

	var fields []apperror.FieldError
	stockMoves := make(map[uuid.UUID]int)
	for i := range order.Items {
		item := &order.Items[i]
		if item.IsVoided {
			continue
		}
		qty, ok := requested[item.ProductID]
		if !ok {
			qty = item.QuantityOrdered
		}
		if qty < 0 || qty > item.QuantityOrdered {
			fields = append(fields, apperror.FieldError{
				Field:   fmt.Sprintf("lines.%s.quantity", item.ProductID),
				Message: fmt.Sprintf("must be between 0 and %d", item.QuantityOrdered),
			})
			continue
		}
		item.QuantityFulfilled = qty
		if qty > 0 {
			stockMoves[item.ProductID] = qty
		}
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	if err := order.TransitionTo(enum.OrderStatusFulfilled); err != nil {
		return nil, err
	}

	if len(stockMoves) > 0 {
		if order.Kind == enum.OrderKindPurchase {
			if err := s.productRepo.AtomicIncrementBatch(ctx, stockMoves); err != nil {
				return nil, err
			}
		} else {
			failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockMoves)
			if err != nil {
				return nil, err
			}
			if len(failedIDs) > 0 {
				return nil, apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for products: %v", failedIDs))
			}
		}
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		// Stock already moved, undo before surfacing the error
		if len(stockMoves) > 0 {
			if order.Kind == enum.OrderKindPurchase {
				_, _ = s.productRepo.AtomicDecrementBatch(ctx, stockMoves)
			} else {
				_ = s.productRepo.AtomicIncrementBatch(ctx, stockMoves)
			}
		}
		return nil, err
	}
	return order, nil
}

// CancelOrder cancels a draft or submitted order. Stock never moved for
// these states, so there is nothing to restore.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(enum.OrderStatusCancelled); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
