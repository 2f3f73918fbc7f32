package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus int

const (
	OrderStatusDraft     OrderStatus = 0
	OrderStatusSubmitted OrderStatus = 1
	// OrderStatusFulfilled is the terminal delivered state; it reads as
	// "received" for purchase orders.
	OrderStatusFulfilled OrderStatus = 2
	OrderStatusCancelled OrderStatus = 3
)

// orderTransitions lists the legal forward-only moves. Fulfilled and
// cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:     {OrderStatusSubmitted, OrderStatusCancelled},
	OrderStatusSubmitted: {OrderStatusFulfilled, OrderStatusCancelled},
	OrderStatusFulfilled: {},
	OrderStatusCancelled: {},
}

// CanTransitionTo reports whether moving to target is a legal transition.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

func (s OrderStatus) String() string {
	names := [...]string{"draft", "submitted", "fulfilled", "cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "draft"
	}
	return names[s]
}

// ParseOrderStatus maps a boundary string to its status, reporting whether
// the string belongs to the closed set.
func ParseOrderStatus(str string) (OrderStatus, bool) {
	switch str {
	case "draft":
		return OrderStatusDraft, true
	case "submitted":
		return OrderStatusSubmitted, true
	case "fulfilled", "received":
		return OrderStatusFulfilled, true
	case "cancelled":
		return OrderStatusCancelled, true
	}
	return OrderStatusDraft, false
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	if parsed, ok := ParseOrderStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
