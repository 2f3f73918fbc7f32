package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipsang/dukapos-api/pkg/apperror"
)

func cart(lines ...Item) []Item { return lines }

func TestComputePercentageDiscountWithVAT(t *testing.T) {
	// subtotal 1000.00, 10% discount, 12% VAT
	sum, err := Compute(cart(Item{Qty: 10, UnitPrice: 10000}), DiscountPercentage, 10, 12)
	require.NoError(t, err)

	assert.Equal(t, Money(100000), sum.Subtotal)
	assert.Equal(t, Money(10000), sum.Discount)
	assert.Equal(t, Money(90000), sum.Total)
	assert.Equal(t, Money(80357), sum.NetOfVAT)
	assert.Equal(t, Money(9643), sum.Tax)
}

func TestComputeAmountDiscount(t *testing.T) {
	sum, err := Compute(cart(Item{Qty: 2, UnitPrice: 25000}), DiscountAmount, 100, 0)
	require.NoError(t, err)

	assert.Equal(t, Money(50000), sum.Subtotal)
	assert.Equal(t, Money(10000), sum.Discount)
	assert.Equal(t, Money(40000), sum.Total)
	assert.Equal(t, Money(0), sum.Tax)
}

func TestComputeDiscountNeverExceedsSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		dtype DiscountType
		value float64
	}{
		{"amount larger than cart", DiscountAmount, 9999},
		{"percentage above hundred clamps", DiscountPercentage, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, err := Compute(cart(Item{Qty: 1, UnitPrice: 5000}), tt.dtype, tt.value, 16)
			require.NoError(t, err)
			assert.LessOrEqual(t, sum.Discount, sum.Subtotal)
			assert.GreaterOrEqual(t, sum.Total, Money(0))
		})
	}
}

func TestComputeNetPlusTaxEqualsTotal(t *testing.T) {
	for _, vat := range []float64{0, 7.5, 12, 16, 100} {
		sum, err := Compute(cart(Item{Qty: 3, UnitPrice: 33333}), DiscountPercentage, 5, vat)
		require.NoError(t, err)
		assert.Equal(t, sum.Total, sum.NetOfVAT+sum.Tax, "vat=%v", vat)
	}
}

func TestComputeSkipsNonPositiveQuantities(t *testing.T) {
	sum, err := Compute(cart(Item{Qty: 0, UnitPrice: 10000}, Item{Qty: -2, UnitPrice: 10000}, Item{Qty: 1, UnitPrice: 2500}), DiscountPercentage, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Money(2500), sum.Subtotal)
}

func TestComputeRejectsBadInputs(t *testing.T) {
	_, err := Compute(cart(Item{Qty: 1, UnitPrice: 100}), DiscountPercentage, -1, 12)
	assert.True(t, apperror.IsAppError(err))

	_, err = Compute(cart(Item{Qty: 1, UnitPrice: 100}), DiscountPercentage, 0, 120)
	assert.True(t, apperror.IsAppError(err))

	_, err = Compute(cart(Item{Qty: 1, UnitPrice: 100}), DiscountType("bogus"), 0, 12)
	assert.True(t, apperror.IsAppError(err))
}

func TestChange(t *testing.T) {
	change, err := Change(100000, 90000)
	require.NoError(t, err)
	assert.Equal(t, Money(10000), change)

	change, err = Change(90000, 90000)
	require.NoError(t, err)
	assert.Equal(t, Money(0), change)

	_, err = Change(80000, 90000)
	assert.ErrorIs(t, err, apperror.ErrInsufficientTender)
}
