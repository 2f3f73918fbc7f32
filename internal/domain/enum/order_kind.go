package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderKind tags the two order variants sharing one structural shape.
// Purchase orders face a supplier, customer orders face a customer.
type OrderKind string

const (
	OrderKindPurchase OrderKind = "purchase"
	OrderKindCustomer OrderKind = "customer"
)

func (k OrderKind) String() string {
	return string(k)
}

// Valid reports whether the kind is one of the closed set.
func (k OrderKind) Valid() bool {
	return k == OrderKindPurchase || k == OrderKindCustomer
}

// Direction returns the payment direction this kind settles in: purchase
// orders are payables (outbound), customer orders are receivables (inbound).
func (k OrderKind) Direction() PaymentDirection {
	if k == OrderKindPurchase {
		return PaymentDirectionOutbound
	}
	return PaymentDirectionInbound
}

func (k OrderKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *OrderKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*k = OrderKind(str)
	return nil
}

func (k OrderKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *OrderKind) Scan(value interface{}) error {
	if value == nil {
		*k = OrderKindCustomer
		return nil
	}
	switch v := value.(type) {
	case string:
		*k = OrderKind(v)
	case []byte:
		*k = OrderKind(string(v))
	}
	return nil
}
