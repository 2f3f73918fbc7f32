package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipsang/dukapos-api/internal/domain/enum"
	"github.com/kipsang/dukapos-api/pkg/apperror"
)

func (env *testEnv) createPurchaseOrder(t *testing.T) *CreateOrderInput {
	t.Helper()
	return &CreateOrderInput{
		Kind:           enum.OrderKindPurchase,
		CounterpartyID: env.supplier.ID,
		TaxPercentage:  16,
		Items: []OrderLineInput{
			{ProductID: env.productA.ID, Quantity: 10, UnitCost: 120},
			{ProductID: env.productB.ID, Quantity: 4, UnitCost: 250},
		},
	}
}

func TestCreateOrderGeneratesNumberAndTotals(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, env.createPurchaseOrder(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNo, "PO-"))
	assert.Equal(t, enum.OrderStatusDraft, order.Status)
	assert.Equal(t, int64(1), order.Version)
	// 10 x 120.00 + 4 x 250.00 = 2200.00, 16% tax on top
	assert.Equal(t, int64(220000), order.SubTotal)
	assert.Equal(t, int64(35200), order.Tax)
	assert.Equal(t, int64(255200), order.Total)

	stored, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
}

func TestCreateCustomerOrderUsesSalesPrefix(t *testing.T) {
	env := newTestEnv()

	order, err := env.orders.CreateOrder(context.Background(), &CreateOrderInput{
		Kind:           enum.OrderKindCustomer,
		CounterpartyID: env.customer.ID,
		Items:          []OrderLineInput{{ProductID: env.productA.ID, Quantity: 1, UnitCost: 185}},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderNo, "SO-"))
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv()

	_, err := env.orders.CreateOrder(context.Background(), &CreateOrderInput{
		Kind:           "invoice",
		CounterpartyID: uuid.Nil,
		TaxPercentage:  150,
		Items:          []OrderLineInput{{ProductID: env.productA.ID, Quantity: 0, UnitCost: -1}},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)

	var fields []string
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "kind")
	assert.Contains(t, fields, "counterparty_id")
	assert.Contains(t, fields, "tax_percentage")
	assert.Contains(t, fields, "items[0].quantity")
	assert.Contains(t, fields, "items[0].unit_cost")
}

func TestCreateOrderUnknownCounterparty(t *testing.T) {
	env := newTestEnv()

	input := env.createPurchaseOrder(t)
	input.CounterpartyID = uuid.New()
	_, err := env.orders.CreateOrder(context.Background(), input)
	assert.ErrorContains(t, err, "Supplier not found")
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	env := newTestEnv()

	input := env.createPurchaseOrder(t)
	input.Items[0].ProductID = uuid.New()
	_, err := env.orders.CreateOrder(context.Background(), input)
	assert.ErrorContains(t, err, "not found")
}

func TestSubmitAndFulfillPurchaseOrderAddsStock(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, env.createPurchaseOrder(t))
	require.NoError(t, err)

	order, err = env.orders.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusSubmitted, order.Status)

	order, err = env.orders.FulfillOrder(ctx, order.ID, []FulfillLineInput{
		{ProductID: env.productA.ID, Quantity: 8},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusFulfilled, order.Status)

	// 8 of A arrived, B defaulted to the full ordered quantity
	productA, _ := env.productRepo.GetByID(ctx, env.productA.ID)
	productB, _ := env.productRepo.GetByID(ctx, env.productB.ID)
	assert.Equal(t, 58, productA.Quantity)
	assert.Equal(t, 24, productB.Quantity)
}

func TestFulfillCustomerOrderDrawsStock(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		Kind:           enum.OrderKindCustomer,
		CounterpartyID: env.customer.ID,
		Items:          []OrderLineInput{{ProductID: env.productA.ID, Quantity: 5, UnitCost: 185}},
	})
	require.NoError(t, err)
	_, err = env.orders.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.orders.FulfillOrder(ctx, order.ID, nil)
	require.NoError(t, err)

	product, _ := env.productRepo.GetByID(ctx, env.productA.ID)
	assert.Equal(t, 45, product.Quantity)
}

func TestFulfillRejectsQuantityAboveOrdered(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, env.createPurchaseOrder(t))
	require.NoError(t, err)
	_, err = env.orders.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.orders.FulfillOrder(ctx, order.ID, []FulfillLineInput{
		{ProductID: env.productA.ID, Quantity: 11},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.GetAppError(err).Kind)

	stored, _ := env.orders.GetOrder(ctx, order.ID)
	assert.Equal(t, enum.OrderStatusSubmitted, stored.Status)
}

func TestFulfillDraftOrderRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, env.createPurchaseOrder(t))
	require.NoError(t, err)

	_, err = env.orders.FulfillOrder(ctx, order.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestFulfillInsufficientStockLeavesOrderSubmitted(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		Kind:           enum.OrderKindCustomer,
		CounterpartyID: env.customer.ID,
		Items:          []OrderLineInput{{ProductID: env.productB.ID, Quantity: 100, UnitCost: 320}},
	})
	require.NoError(t, err)
	_, err = env.orders.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.orders.FulfillOrder(ctx, order.ID, nil)
	require.Error(t, err)

	stored, _ := env.orders.GetOrder(ctx, order.ID)
	assert.Equal(t, enum.OrderStatusSubmitted, stored.Status)
	product, _ := env.productRepo.GetByID(ctx, env.productB.ID)
	assert.Equal(t, 20, product.Quantity)
}

func TestCancelOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, env.createPurchaseOrder(t))
	require.NoError(t, err)

	order, err = env.orders.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, order.Status)

	// Terminal, every further transition fails
	_, err = env.orders.SubmitOrder(ctx, order.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestUpdateOrderDraftOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, env.createPurchaseOrder(t))
	require.NoError(t, err)

	notes := "deliver to the back gate"
	updated, err := env.orders.UpdateOrder(ctx, order.ID, &UpdateOrderInput{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)

	_, err = env.orders.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.orders.UpdateOrder(ctx, order.ID, &UpdateOrderInput{Notes: &notes})
	assert.ErrorIs(t, err, apperror.ErrOrderLocked)
}

func TestUpdateOrderReplacesLines(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, env.createPurchaseOrder(t))
	require.NoError(t, err)

	updated, err := env.orders.UpdateOrder(ctx, order.ID, &UpdateOrderInput{
		Items: []OrderLineInput{{ProductID: env.productA.ID, Quantity: 3, UnitCost: 100}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, int64(30000), updated.SubTotal)
}

func TestStaleOrderUpdateConflicts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, env.createPurchaseOrder(t))
	require.NoError(t, err)

	stale, err := env.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.orders.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)

	err = env.orderRepo.Update(ctx, stale)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.True(t, apperror.IsRetryable(err))
}
