package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipsang/dukapos-api/internal/domain/enum"
	"github.com/kipsang/dukapos-api/pkg/apperror"
)

func testOrder() *Order {
	o := &Order{
		ID:            uuid.New(),
		Kind:          enum.OrderKindCustomer,
		OrderNo:       "SO-test0001",
		Status:        enum.OrderStatusSubmitted,
		TaxPercentage: 0,
		Items: []OrderLineItem{
			{ID: uuid.New(), ProductID: uuid.New(), QuantityOrdered: 2, UnitCost: 25000, LineTotal: 50000},
			{ID: uuid.New(), ProductID: uuid.New(), QuantityOrdered: 1, UnitCost: 100000, LineTotal: 100000},
		},
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	o.RecomputeTotals()
	return o
}

func TestRecomputeTotalsExcludesVoidedLines(t *testing.T) {
	o := testOrder()
	assert.Equal(t, int64(150000), o.SubTotal)
	assert.Equal(t, int64(150000), o.Total)

	o.Items[0].IsVoided = true
	o.RecomputeTotals()
	assert.Equal(t, int64(100000), o.SubTotal)
	assert.Len(t, o.Items, 2, "voided line stays in the list for audit")
}

func TestRecomputeTotalsAppliesTaxAndAdjustments(t *testing.T) {
	o := testOrder()
	o.TaxPercentage = 16
	o.Adjustments = append(o.Adjustments, OrderAdjustment{
		OrderID: o.ID,
		Type:    enum.AdjustmentTypeCashConversion,
		Amount:  -50000,
	})
	o.RecomputeTotals()

	assert.Equal(t, int64(150000), o.SubTotal)
	assert.Equal(t, int64(24000), o.Tax)
	assert.Equal(t, int64(150000+24000-50000), o.Total)
}

func TestTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    enum.OrderStatus
		to      enum.OrderStatus
		wantErr bool
	}{
		{"draft to submitted", enum.OrderStatusDraft, enum.OrderStatusSubmitted, false},
		{"draft to cancelled", enum.OrderStatusDraft, enum.OrderStatusCancelled, false},
		{"submitted to fulfilled", enum.OrderStatusSubmitted, enum.OrderStatusFulfilled, false},
		{"submitted to cancelled", enum.OrderStatusSubmitted, enum.OrderStatusCancelled, false},
		{"draft to fulfilled skips submit", enum.OrderStatusDraft, enum.OrderStatusFulfilled, true},
		{"fulfilled is terminal", enum.OrderStatusFulfilled, enum.OrderStatusCancelled, true},
		{"cancelled is terminal", enum.OrderStatusCancelled, enum.OrderStatusSubmitted, true},
		{"no backward move", enum.OrderStatusSubmitted, enum.OrderStatusDraft, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := testOrder()
			o.Status = tt.from
			err := o.TransitionTo(tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
				assert.Equal(t, tt.from, o.Status, "failed transition leaves order unchanged")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.to, o.Status)
			}
		})
	}
}

func TestConvertLineToCash(t *testing.T) {
	o := testOrder()
	productID := o.Items[0].ProductID

	require.NoError(t, o.ConvertLineToCash(productID, "damaged on arrival"))

	assert.True(t, o.Items[0].IsVoided)
	assert.Equal(t, "damaged on arrival", o.Items[0].VoidReason)
	require.Len(t, o.Adjustments, 1)
	assert.Equal(t, enum.AdjustmentTypeCashConversion, o.Adjustments[0].Type)
	assert.Equal(t, int64(-50000), o.Adjustments[0].Amount)
	require.NotNil(t, o.Adjustments[0].ProductID)
	assert.Equal(t, productID, *o.Adjustments[0].ProductID)

	assert.Equal(t, int64(100000), o.SubTotal)
	assert.Equal(t, int64(50000), o.Total)
}

func TestConvertLineToCashErrors(t *testing.T) {
	o := testOrder()
	productID := o.Items[0].ProductID

	t.Run("unknown product", func(t *testing.T) {
		assert.ErrorIs(t, o.ConvertLineToCash(uuid.New(), ""), apperror.ErrLineNotFound)
	})

	t.Run("already voided", func(t *testing.T) {
		require.NoError(t, o.ConvertLineToCash(productID, ""))
		assert.ErrorIs(t, o.ConvertLineToCash(productID, ""), apperror.ErrLineAlreadyVoided)
		assert.Len(t, o.Adjustments, 1, "failed convert adds nothing")
	})

	t.Run("locked when fulfilled", func(t *testing.T) {
		locked := testOrder()
		locked.Status = enum.OrderStatusFulfilled
		assert.ErrorIs(t, locked.ConvertLineToCash(locked.Items[0].ProductID, ""), apperror.ErrOrderLocked)
	})

	t.Run("locked when cancelled", func(t *testing.T) {
		locked := testOrder()
		locked.Status = enum.OrderStatusCancelled
		assert.ErrorIs(t, locked.ConvertLineToCash(locked.Items[0].ProductID, ""), apperror.ErrOrderLocked)
	})
}

func TestConvertRevertRoundTrip(t *testing.T) {
	o := testOrder()
	productID := o.Items[1].ProductID

	before := *o
	beforeItems := make([]OrderLineItem, len(o.Items))
	copy(beforeItems, o.Items)

	require.NoError(t, o.ConvertLineToCash(productID, "customer changed mind"))
	require.NoError(t, o.RevertLineToCash(productID))

	assert.Equal(t, beforeItems, o.Items)
	assert.Empty(t, o.Adjustments)
	assert.Equal(t, before.SubTotal, o.SubTotal)
	assert.Equal(t, before.Tax, o.Tax)
	assert.Equal(t, before.Total, o.Total)
}

func TestRevertLineToCashErrors(t *testing.T) {
	o := testOrder()

	assert.ErrorIs(t, o.RevertLineToCash(uuid.New()), apperror.ErrLineNotFound)
	assert.ErrorIs(t, o.RevertLineToCash(o.Items[0].ProductID), apperror.ErrLineNotVoided)
}

func TestRevertRemovesOnlyMatchingAdjustment(t *testing.T) {
	o := testOrder()
	first := o.Items[0].ProductID
	second := o.Items[1].ProductID

	require.NoError(t, o.ConvertLineToCash(first, ""))
	require.NoError(t, o.ConvertLineToCash(second, ""))
	require.Len(t, o.Adjustments, 2)

	require.NoError(t, o.RevertLineToCash(first))
	require.Len(t, o.Adjustments, 1)
	assert.Equal(t, second, *o.Adjustments[0].ProductID)
	assert.True(t, o.Items[1].IsVoided)
	assert.False(t, o.Items[0].IsVoided)
}
