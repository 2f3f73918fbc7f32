package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/kipsang/dukapos-api/internal/domain/entity"
	"github.com/kipsang/dukapos-api/internal/domain/repository"
	"github.com/kipsang/dukapos-api/pkg/apperror"
	"github.com/kipsang/dukapos-api/pkg/pagination"
)

// In-memory repositories backing the service tests. They mirror the
// behavior that matters to the services: generated IDs, the optimistic
// version check on order updates, and all-or-nothing stock batches.

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = append([]entity.OrderLineItem(nil), o.Items...)
	cp.Adjustments = append([]entity.OrderAdjustment(nil), o.Adjustments...)
	return &cp
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

func (r *fakeOrderRepo) GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error) {
	for _, order := range r.orders {
		if order.OrderNo == orderNo {
			return cloneOrder(order), nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	stored, ok := r.orders[order.ID]
	if !ok || stored.Version != order.Version {
		return apperror.ErrConflict
	}
	order.Version++
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *fakeOrderRepo) ReplaceLineItems(ctx context.Context, order *entity.Order, items []entity.OrderLineItem) error {
	stored, ok := r.orders[order.ID]
	if !ok || stored.Version != order.Version {
		return apperror.ErrConflict
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].OrderID = order.ID
	}
	order.Items = items
	order.Version++
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, order := range r.orders {
		if params.Kind != nil && order.Kind != *params.Kind {
			continue
		}
		if params.Status != nil && order.Status != *params.Status {
			continue
		}
		if params.Search != "" && !strings.Contains(order.OrderNo, params.Search) {
			continue
		}
		out = append(out, *cloneOrder(order))
	}
	return out, int64(len(out)), nil
}

type fakePaymentRepo struct {
	payments  map[uuid.UUID]*entity.Payment
	createErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func clonePayment(p *entity.Payment) *entity.Payment {
	cp := *p
	cp.Allocations = append([]entity.PaymentAllocation(nil), p.Allocations...)
	return &cp
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	for i := range payment.Allocations {
		if payment.Allocations[i].ID == uuid.Nil {
			payment.Allocations[i].ID = uuid.New()
		}
		payment.Allocations[i].PaymentID = payment.ID
	}
	r.payments[payment.ID] = clonePayment(payment)
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	return clonePayment(payment), nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	if _, ok := r.payments[payment.ID]; !ok {
		return apperror.NewNotFoundError("Payment")
	}
	r.payments[payment.ID] = clonePayment(payment)
	return nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

func (r *fakePaymentRepo) List(ctx context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var out []entity.Payment
	for _, payment := range r.payments {
		if params.PayableID != nil && payment.PayableID != *params.PayableID {
			continue
		}
		if params.Direction != nil && payment.Direction != *params.Direction {
			continue
		}
		if params.Method != nil && payment.Method != *params.Method {
			continue
		}
		out = append(out, *clonePayment(payment))
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) ListForOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, payment := range r.payments {
		if payment.Covers(orderID) {
			out = append(out, *clonePayment(payment))
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *product
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	for _, product := range r.products {
		if product.SKU == sku {
			cp := *product
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, product := range r.products {
		out = append(out, *product)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, qty := range decrements {
		product, ok := r.products[id]
		if !ok || product.Quantity < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		r.products[id].Quantity -= qty
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		if product, ok := r.products[id]; ok {
			product.Quantity += qty
		}
	}
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *customer
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, customer := range r.customers {
		if search != "" && !strings.Contains(strings.ToLower(customer.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, *customer)
	}
	return out, int64(len(out)), nil
}

type fakeSupplierRepo struct {
	suppliers map[uuid.UUID]*entity.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: make(map[uuid.UUID]*entity.Supplier)}
}

func (r *fakeSupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	cp := *supplier
	r.suppliers[supplier.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *supplier
	return &cp, nil
}

func (r *fakeSupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	cp := *supplier
	r.suppliers[supplier.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	var out []entity.Supplier
	for _, supplier := range r.suppliers {
		if search != "" && !strings.Contains(strings.ToLower(supplier.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, *supplier)
	}
	return out, int64(len(out)), nil
}

// testEnv wires the fakes behind every service with a seeded customer,
// supplier, and two products.
type testEnv struct {
	orderRepo    *fakeOrderRepo
	paymentRepo  *fakePaymentRepo
	productRepo  *fakeProductRepo
	customerRepo *fakeCustomerRepo
	supplierRepo *fakeSupplierRepo

	orders      *OrderService
	adjustments *AdjustmentService
	payments    *PaymentService
	checkout    *CheckoutService
	reconcile   *ReconcileService

	customer *entity.Customer
	supplier *entity.Supplier
	productA *entity.Product
	productB *entity.Product
}

func newTestEnv() *testEnv {
	env := &testEnv{
		orderRepo:    newFakeOrderRepo(),
		paymentRepo:  newFakePaymentRepo(),
		productRepo:  newFakeProductRepo(),
		customerRepo: newFakeCustomerRepo(),
		supplierRepo: newFakeSupplierRepo(),
	}
	env.orders = NewOrderService(env.orderRepo, env.productRepo, env.customerRepo, env.supplierRepo)
	env.adjustments = NewAdjustmentService(env.orderRepo)
	env.payments = NewPaymentService(env.paymentRepo, env.orderRepo)
	env.checkout = NewCheckoutService(env.productRepo, env.customerRepo, env.orderRepo, env.paymentRepo)
	env.reconcile = NewReconcileService(env.orderRepo, env.paymentRepo)

	ctx := context.Background()
	env.customer = &entity.Customer{Name: "Wanjiku Stores"}
	_ = env.customerRepo.Create(ctx, env.customer)
	env.supplier = &entity.Supplier{Name: "Mombasa Wholesale Ltd"}
	_ = env.supplierRepo.Create(ctx, env.supplier)
	env.productA = &entity.Product{Name: "Maize Flour 2kg", SKU: "MAIZ-000001", Quantity: 50, BuyingPrice: 12000, SellingPrice: 18500}
	_ = env.productRepo.Create(ctx, env.productA)
	env.productB = &entity.Product{Name: "Cooking Oil 1L", SKU: "COOK-000001", Quantity: 20, BuyingPrice: 25000, SellingPrice: 32000}
	_ = env.productRepo.Create(ctx, env.productB)

	return env
}
