package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod represents how a payment moves money
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodOnlineWallet PaymentMethod = "online_wallet"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// Valid reports whether the method is one of the closed set.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheque, PaymentMethodBankTransfer,
		PaymentMethodCreditCard, PaymentMethodOnlineWallet:
		return true
	}
	return false
}

// RequiresReference reports whether the method expects a bank or reference
// identifier to be recorded alongside the payment. The absence is a
// non-blocking warning at checkout, not an error.
func (m PaymentMethod) RequiresReference() bool {
	return m != PaymentMethodCash
}

// MissingReferenceWarning is the warning recorded when a method that expects
// a reference is captured without one.
func (m PaymentMethod) MissingReferenceWarning() string {
	return fmt.Sprintf("no reference recorded for %s payment", m)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	}
	return nil
}
