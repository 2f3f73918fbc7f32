package entity

import "encoding/json"

// Balance is the reconciliation result for one order.
type Balance struct {
	TotalPaid   int64
	Outstanding int64
}

// MarshalJSON converts cents to decimal for API responses
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]float64{
		"total_paid":          float64(b.TotalPaid) / 100,
		"outstanding_balance": float64(b.Outstanding) / 100,
	})
}

// ComputeOutstanding derives how much of the order's total is already
// settled by the given payments. Direct payments count with their full
// amount; a consolidated payment contributes only the share recorded for
// this order, trusted exactly as written. The outstanding balance never goes
// negative, overpayment clamps to zero.
func ComputeOutstanding(order *Order, payments []Payment) Balance {
	var paid int64
	for i := range payments {
		p := &payments[i]
		if p.IsConsolidated {
			if share, ok := p.AllocationFor(order.ID); ok {
				paid += share
			}
			continue
		}
		if p.PayableID == order.ID {
			paid += p.Amount
		}
	}
	outstanding := order.Total - paid
	if outstanding < 0 {
		outstanding = 0
	}
	return Balance{TotalPaid: paid, Outstanding: outstanding}
}
