package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kipsang/dukapos-api/internal/domain/enum"
)

func TestComputeOutstanding(t *testing.T) {
	orderID := uuid.New()
	otherID := uuid.New()
	order := &Order{ID: orderID, Kind: enum.OrderKindCustomer, Total: 500000}

	payments := []Payment{
		// direct payment for this order
		{PayableID: orderID, Amount: 100000},
		// direct payment for another order, ignored
		{PayableID: otherID, Amount: 999999},
		// consolidated payment covering both orders: only this order's
		// recorded share counts, never the payment's full amount
		{
			Amount:         300000,
			IsConsolidated: true,
			Allocations: []PaymentAllocation{
				{OrderID: orderID, OrderKind: enum.OrderKindCustomer, Amount: 150000},
				{OrderID: otherID, OrderKind: enum.OrderKindCustomer, Amount: 150000},
			},
		},
		// consolidated payment not covering this order
		{
			Amount:         50000,
			IsConsolidated: true,
			Allocations:    []PaymentAllocation{{OrderID: otherID, Amount: 50000}},
		},
	}

	balance := ComputeOutstanding(order, payments)
	assert.Equal(t, int64(250000), balance.TotalPaid)
	assert.Equal(t, int64(250000), balance.Outstanding)
}

func TestComputeOutstandingClampsOverpayment(t *testing.T) {
	orderID := uuid.New()
	order := &Order{ID: orderID, Total: 100000}

	balance := ComputeOutstanding(order, []Payment{{PayableID: orderID, Amount: 150000}})
	assert.Equal(t, int64(150000), balance.TotalPaid)
	assert.Equal(t, int64(0), balance.Outstanding)
}

func TestComputeOutstandingNoPayments(t *testing.T) {
	order := &Order{ID: uuid.New(), Total: 75000}

	balance := ComputeOutstanding(order, nil)
	assert.Equal(t, int64(0), balance.TotalPaid)
	assert.Equal(t, int64(75000), balance.Outstanding)
}
