package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentDirection distinguishes money paid out (payables) from money
// received (receivables).
type PaymentDirection string

const (
	PaymentDirectionInbound  PaymentDirection = "inbound"
	PaymentDirectionOutbound PaymentDirection = "outbound"
)

func (d PaymentDirection) String() string {
	return string(d)
}

// Valid reports whether the direction is one of the closed set.
func (d PaymentDirection) Valid() bool {
	return d == PaymentDirectionInbound || d == PaymentDirectionOutbound
}

func (d PaymentDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

func (d *PaymentDirection) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*d = PaymentDirection(str)
	return nil
}

func (d PaymentDirection) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *PaymentDirection) Scan(value interface{}) error {
	if value == nil {
		*d = PaymentDirectionInbound
		return nil
	}
	switch v := value.(type) {
	case string:
		*d = PaymentDirection(v)
	case []byte:
		*d = PaymentDirection(string(v))
	}
	return nil
}
