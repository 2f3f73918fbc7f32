package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipsang/dukapos-api/internal/domain/entity"
	"github.com/kipsang/dukapos-api/internal/domain/enum"
	"github.com/kipsang/dukapos-api/pkg/apperror"
)

func (env *testEnv) submittedOrder(t *testing.T) *entity.Order {
	t.Helper()
	ctx := context.Background()
	order, err := env.orders.CreateOrder(ctx, env.createPurchaseOrder(t))
	require.NoError(t, err)
	order, err = env.orders.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)
	return order
}

func TestConvertLineToCash(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	order := env.submittedOrder(t)

	converted, err := env.adjustments.ConvertLineToCash(ctx, order.ID, env.productA.ID, "out of stock at supplier")
	require.NoError(t, err)

	line := converted.LineForProduct(env.productA.ID)
	require.NotNil(t, line)
	assert.True(t, line.IsVoided)
	assert.Equal(t, "out of stock at supplier", line.VoidReason)

	require.Len(t, converted.Adjustments, 1)
	assert.Equal(t, enum.AdjustmentTypeCashConversion, converted.Adjustments[0].Type)
	assert.Equal(t, -line.LineTotal, converted.Adjustments[0].Amount)

	// Subtotal drops by the line, the adjustment offsets it in the total
	assert.Equal(t, int64(100000), converted.SubTotal)
	assert.Equal(t, int64(16000), converted.Tax)
	assert.Equal(t, int64(100000+16000-120000), converted.Total)
}

func TestConvertRevertRoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	order := env.submittedOrder(t)

	before, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.adjustments.ConvertLineToCash(ctx, order.ID, env.productB.ID, "damaged in transit")
	require.NoError(t, err)

	after, err := env.adjustments.RevertLineToCash(ctx, order.ID, env.productB.ID)
	require.NoError(t, err)

	assert.Equal(t, before.SubTotal, after.SubTotal)
	assert.Equal(t, before.Tax, after.Tax)
	assert.Equal(t, before.Total, after.Total)
	assert.Empty(t, after.Adjustments)
	for i := range after.Items {
		assert.False(t, after.Items[i].IsVoided)
		assert.Empty(t, after.Items[i].VoidReason)
	}
}

func TestConvertLineErrors(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	order := env.submittedOrder(t)

	_, err := env.adjustments.ConvertLineToCash(ctx, order.ID, uuid.New(), "")
	assert.ErrorIs(t, err, apperror.ErrLineNotFound)

	_, err = env.adjustments.ConvertLineToCash(ctx, order.ID, env.productA.ID, "")
	require.NoError(t, err)
	_, err = env.adjustments.ConvertLineToCash(ctx, order.ID, env.productA.ID, "")
	assert.ErrorIs(t, err, apperror.ErrLineAlreadyVoided)
}

func TestConvertLineOnLockedOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	order := env.submittedOrder(t)

	_, err := env.orders.FulfillOrder(ctx, order.ID, nil)
	require.NoError(t, err)

	_, err = env.adjustments.ConvertLineToCash(ctx, order.ID, env.productA.ID, "")
	assert.ErrorIs(t, err, apperror.ErrOrderLocked)
}

func TestRevertLineErrors(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	order := env.submittedOrder(t)

	_, err := env.adjustments.RevertLineToCash(ctx, order.ID, env.productA.ID)
	assert.ErrorIs(t, err, apperror.ErrLineNotVoided)

	_, err = env.adjustments.RevertLineToCash(ctx, order.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrLineNotFound)
}

func TestConvertOnMissingOrder(t *testing.T) {
	env := newTestEnv()

	_, err := env.adjustments.ConvertLineToCash(context.Background(), uuid.New(), uuid.New(), "")
	assert.ErrorContains(t, err, "Order not found")
}
