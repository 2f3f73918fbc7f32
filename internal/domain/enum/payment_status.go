package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus is the method- and direction-dependent settlement state of a
// payment. The vocabulary allowed for a payment is the row returned by
// StatusFlow; statuses only ever move forward within their row.
type PaymentStatus string

const (
	PaymentStatusPaid                PaymentStatus = "paid"
	PaymentStatusReceived            PaymentStatus = "received"
	PaymentStatusPendingClearance    PaymentStatus = "pending_clearance"
	PaymentStatusDeposited           PaymentStatus = "deposited"
	PaymentStatusCleared             PaymentStatus = "cleared"
	PaymentStatusPendingVerification PaymentStatus = "pending_verification"
	PaymentStatusVerified            PaymentStatus = "verified"
	PaymentStatusTransferred         PaymentStatus = "transferred"
	PaymentStatusPendingConfirmation PaymentStatus = "pending_confirmation"
	PaymentStatusConfirmed           PaymentStatus = "confirmed"
	PaymentStatusSettled             PaymentStatus = "settled"
	PaymentStatusCharged             PaymentStatus = "charged"
	PaymentStatusSent                PaymentStatus = "sent"
)

type statusFlowKey struct {
	Method    PaymentMethod
	Direction PaymentDirection
}

// statusFlows is the fixed method x direction lookup. The slice order is the
// forward-only transition order; index 0 is the default on creation.
var statusFlows = map[statusFlowKey][]PaymentStatus{
	{PaymentMethodCash, PaymentDirectionOutbound}:         {PaymentStatusPaid},
	{PaymentMethodCheque, PaymentDirectionOutbound}:       {PaymentStatusPendingClearance, PaymentStatusCleared},
	{PaymentMethodBankTransfer, PaymentDirectionOutbound}: {PaymentStatusPendingVerification, PaymentStatusVerified, PaymentStatusTransferred},
	{PaymentMethodCreditCard, PaymentDirectionOutbound}:   {PaymentStatusCharged},
	{PaymentMethodOnlineWallet, PaymentDirectionOutbound}: {PaymentStatusSent, PaymentStatusConfirmed},

	{PaymentMethodCash, PaymentDirectionInbound}:         {PaymentStatusReceived},
	{PaymentMethodCheque, PaymentDirectionInbound}:       {PaymentStatusDeposited, PaymentStatusCleared},
	{PaymentMethodBankTransfer, PaymentDirectionInbound}: {PaymentStatusPendingConfirmation, PaymentStatusConfirmed, PaymentStatusSettled},
	{PaymentMethodCreditCard, PaymentDirectionInbound}:   {PaymentStatusCharged},
	{PaymentMethodOnlineWallet, PaymentDirectionInbound}: {PaymentStatusReceived, PaymentStatusSettled},
}

// StatusFlow returns the ordered status vocabulary for a method and
// direction. The returned slice must not be mutated.
func StatusFlow(method PaymentMethod, direction PaymentDirection) []PaymentStatus {
	return statusFlows[statusFlowKey{method, direction}]
}

// DefaultPaymentStatus returns the first status of the row, assigned when a
// payment is created without an explicit status.
func DefaultPaymentStatus(method PaymentMethod, direction PaymentDirection) PaymentStatus {
	flow := StatusFlow(method, direction)
	if len(flow) == 0 {
		return ""
	}
	return flow[0]
}

// StatusIndex returns the position of s within the row, or -1 when s is not
// part of the row's vocabulary.
func StatusIndex(method PaymentMethod, direction PaymentDirection, s PaymentStatus) int {
	for i, candidate := range StatusFlow(method, direction) {
		if candidate == s {
			return i
		}
	}
	return -1
}

// ValidPaymentStatus reports whether s belongs to the row for the method and
// direction.
func ValidPaymentStatus(method PaymentMethod, direction PaymentDirection, s PaymentStatus) bool {
	return StatusIndex(method, direction, s) >= 0
}

// CanAdvancePaymentStatus reports whether moving from one status to the next
// is a strictly forward step within the row.
func CanAdvancePaymentStatus(method PaymentMethod, direction PaymentDirection, from, to PaymentStatus) bool {
	fromIdx := StatusIndex(method, direction, from)
	toIdx := StatusIndex(method, direction, to)
	return fromIdx >= 0 && toIdx > fromIdx
}

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = PaymentStatus(str)
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(string(v))
	}
	return nil
}
