package order_test

import (
	"testing"

	"terabia/internal/core/domain/model/order"
	"terabia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []order.Status{
		order.StatusPending,
		order.StatusAccepted,
		order.StatusInTransit,
		order.StatusDelivered,
		order.StatusCancelled,
	}
	for _, s := range valid {
		t.Run(string(s), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	t.Run("unknown_status_is_invalid", func(t *testing.T) {
		err := order.Status("shipped").Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty_status_is_invalid", func(t *testing.T) {
		require.Error(t, order.Status("").Validate())
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    order.Status
		to      order.Status
		wantErr bool
	}{
		{"pending_to_accepted", order.StatusPending, order.StatusAccepted, false},
		{"accepted_to_in_transit", order.StatusAccepted, order.StatusInTransit, false},
		{"in_transit_to_delivered", order.StatusInTransit, order.StatusDelivered, false},
		{"pending_to_cancelled", order.StatusPending, order.StatusCancelled, false},
		{"accepted_to_cancelled", order.StatusAccepted, order.StatusCancelled, false},
		{"in_transit_to_cancelled", order.StatusInTransit, order.StatusCancelled, false},
		{"pending_to_in_transit_skips_accepted", order.StatusPending, order.StatusInTransit, true},
		{"pending_to_delivered_skips_everything", order.StatusPending, order.StatusDelivered, true},
		{"delivered_is_terminal", order.StatusDelivered, order.StatusCancelled, true},
		{"cancelled_is_terminal", order.StatusCancelled, order.StatusAccepted, true},
		{"delivered_to_in_transit_is_backwards", order.StatusDelivered, order.StatusInTransit, true},
		{"unknown_target", order.StatusPending, order.Status("shipped"), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.from.TransitionTo(tc.to)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, got)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.False(t, order.StatusPending.IsTerminal())
	assert.False(t, order.StatusAccepted.IsTerminal())
	assert.False(t, order.StatusInTransit.IsTerminal())
}
