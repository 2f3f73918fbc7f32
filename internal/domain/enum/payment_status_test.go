package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFlowRows(t *testing.T) {
	tests := []struct {
		method    PaymentMethod
		direction PaymentDirection
		want      []PaymentStatus
	}{
		{PaymentMethodCash, PaymentDirectionOutbound, []PaymentStatus{PaymentStatusPaid}},
		{PaymentMethodCheque, PaymentDirectionOutbound, []PaymentStatus{PaymentStatusPendingClearance, PaymentStatusCleared}},
		{PaymentMethodBankTransfer, PaymentDirectionOutbound, []PaymentStatus{PaymentStatusPendingVerification, PaymentStatusVerified, PaymentStatusTransferred}},
		{PaymentMethodCreditCard, PaymentDirectionOutbound, []PaymentStatus{PaymentStatusCharged}},
		{PaymentMethodOnlineWallet, PaymentDirectionOutbound, []PaymentStatus{PaymentStatusSent, PaymentStatusConfirmed}},
		{PaymentMethodCash, PaymentDirectionInbound, []PaymentStatus{PaymentStatusReceived}},
		{PaymentMethodCheque, PaymentDirectionInbound, []PaymentStatus{PaymentStatusDeposited, PaymentStatusCleared}},
		{PaymentMethodBankTransfer, PaymentDirectionInbound, []PaymentStatus{PaymentStatusPendingConfirmation, PaymentStatusConfirmed, PaymentStatusSettled}},
		{PaymentMethodCreditCard, PaymentDirectionInbound, []PaymentStatus{PaymentStatusCharged}},
		{PaymentMethodOnlineWallet, PaymentDirectionInbound, []PaymentStatus{PaymentStatusReceived, PaymentStatusSettled}},
	}
	for _, tt := range tests {
		t.Run(string(tt.method)+"/"+string(tt.direction), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFlow(tt.method, tt.direction))
			assert.Equal(t, tt.want[0], DefaultPaymentStatus(tt.method, tt.direction))
		})
	}
}

func TestDefaultOutboundChequeIsPendingClearance(t *testing.T) {
	assert.Equal(t, PaymentStatusPendingClearance, DefaultPaymentStatus(PaymentMethodCheque, PaymentDirectionOutbound))
}

func TestValidPaymentStatusRejectsForeignRows(t *testing.T) {
	// verified belongs to outbound bank transfers only
	assert.False(t, ValidPaymentStatus(PaymentMethodCheque, PaymentDirectionOutbound, PaymentStatusVerified))
	assert.True(t, ValidPaymentStatus(PaymentMethodBankTransfer, PaymentDirectionOutbound, PaymentStatusVerified))
	assert.False(t, ValidPaymentStatus(PaymentMethodCash, PaymentDirectionInbound, PaymentStatusPaid))
}

func TestCanAdvancePaymentStatusForwardOnly(t *testing.T) {
	m, d := PaymentMethodBankTransfer, PaymentDirectionInbound

	assert.True(t, CanAdvancePaymentStatus(m, d, PaymentStatusPendingConfirmation, PaymentStatusConfirmed))
	assert.True(t, CanAdvancePaymentStatus(m, d, PaymentStatusPendingConfirmation, PaymentStatusSettled))
	assert.True(t, CanAdvancePaymentStatus(m, d, PaymentStatusConfirmed, PaymentStatusSettled))

	// no backward or sideways moves
	assert.False(t, CanAdvancePaymentStatus(m, d, PaymentStatusSettled, PaymentStatusConfirmed))
	assert.False(t, CanAdvancePaymentStatus(m, d, PaymentStatusConfirmed, PaymentStatusConfirmed))
	assert.False(t, CanAdvancePaymentStatus(m, d, PaymentStatusConfirmed, PaymentStatusVerified))
}

func TestOrderKindDirection(t *testing.T) {
	assert.Equal(t, PaymentDirectionOutbound, OrderKindPurchase.Direction())
	assert.Equal(t, PaymentDirectionInbound, OrderKindCustomer.Direction())
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusDraft.CanTransitionTo(OrderStatusSubmitted))
	assert.True(t, OrderStatusDraft.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusSubmitted.CanTransitionTo(OrderStatusFulfilled))
	assert.True(t, OrderStatusSubmitted.CanTransitionTo(OrderStatusCancelled))

	assert.False(t, OrderStatusDraft.CanTransitionTo(OrderStatusFulfilled))
	assert.False(t, OrderStatusFulfilled.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusFulfilled.CanTransitionTo(OrderStatusDraft))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusSubmitted))
	assert.False(t, OrderStatusSubmitted.CanTransitionTo(OrderStatusDraft))

	assert.True(t, OrderStatusFulfilled.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusDraft.Terminal())
}
