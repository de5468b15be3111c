package order_test

import (
	"testing"

	"terabia/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatus_TransitionTo(t *testing.T) {
	t.Run("pending_to_success", func(t *testing.T) {
		got, err := order.PaymentPending.TransitionTo(order.PaymentSuccess)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentSuccess, got)
	})

	t.Run("pending_to_failed", func(t *testing.T) {
		got, err := order.PaymentPending.TransitionTo(order.PaymentFailed)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentFailed, got)
	})

	t.Run("success_is_terminal", func(t *testing.T) {
		_, err := order.PaymentSuccess.TransitionTo(order.PaymentFailed)
		require.Error(t, err)
	})

	t.Run("failed_is_terminal", func(t *testing.T) {
		_, err := order.PaymentFailed.TransitionTo(order.PaymentSuccess)
		require.Error(t, err)
	})

	t.Run("cannot_return_to_pending", func(t *testing.T) {
		_, err := order.PaymentPending.TransitionTo(order.PaymentPending)
		require.Error(t, err)
	})

	t.Run("unknown_target", func(t *testing.T) {
		_, err := order.PaymentPending.TransitionTo(order.PaymentStatus("refunded"))
		require.Error(t, err)
	})
}

func TestPaymentStatus_Validate(t *testing.T) {
	require.NoError(t, order.PaymentPending.Validate())
	require.NoError(t, order.PaymentSuccess.Validate())
	require.NoError(t, order.PaymentFailed.Validate())
	require.Error(t, order.PaymentStatus("refunded").Validate())
}
