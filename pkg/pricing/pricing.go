package pricing

import (
	"math"

	"github.com/kipsang/dukapos-api/pkg/apperror"
	"github.com/kipsang/dukapos-api/pkg/money"
)

// Money is a monetary value in minor units (cents).
type Money = int64

// DiscountType selects how the discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

// Item describes a cart line used for pricing calculation.
type Item struct {
	Qty       int
	UnitPrice Money
}

// Summary aggregates the computed checkout components. Total is
// VAT-inclusive; NetOfVAT and Tax are derived by dividing the rate back out,
// so NetOfVAT + Tax == Total always holds exactly.
type Summary struct {
	Subtotal Money
	Discount Money
	Total    Money
	NetOfVAT Money
	Tax      Money
}

// Compute calculates cart totals given the provided inputs.
// discountValue is a percent for DiscountPercentage and a decimal amount for
// DiscountAmount. vatPct must be within [0,100].
func Compute(items []Item, discountType DiscountType, discountValue float64, vatPct float64) (Summary, error) {
	var fields []apperror.FieldError
	if discountValue < 0 || math.IsNaN(discountValue) || math.IsInf(discountValue, 0) {
		fields = append(fields, apperror.FieldError{Field: "discount_value", Message: "must be zero or positive"})
	}
	if vatPct < 0 || vatPct > 100 || math.IsNaN(vatPct) {
		fields = append(fields, apperror.FieldError{Field: "vat_percentage", Message: "must be between 0 and 100"})
	}
	switch discountType {
	case DiscountPercentage, DiscountAmount:
	default:
		fields = append(fields, apperror.FieldError{Field: "discount_type", Message: "must be percentage or amount"})
	}
	if len(fields) > 0 {
		return Summary{}, apperror.NewValidationError(fields)
	}

	var subtotal Money
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal += Money(it.Qty) * it.UnitPrice
	}

	var discount Money
	if discountType == DiscountPercentage {
		pct := math.Min(discountValue, 100)
		discount = Money(math.Round(float64(subtotal) * pct / 100))
	} else {
		discount = money.ToCents(discountValue)
	}
	if discount > subtotal {
		discount = subtotal
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	netOfVAT := Money(math.Round(float64(total) / (1 + vatPct/100)))
	tax := total - netOfVAT

	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
		NetOfVAT: netOfVAT,
		Tax:      tax,
	}, nil
}

// Change returns the cash to hand back for the tendered amount. Checkout is
// blocked until tendered covers the total.
func Change(tendered, total Money) (Money, error) {
	if tendered < total {
		return 0, apperror.ErrInsufficientTender
	}
	return tendered - total, nil
}
