package delivery_test

import (
	"testing"
	"time"

	"terabia/internal/core/domain/model/delivery"
	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDelivery(t *testing.T) {
	t.Run("starts_available_and_unclaimed", func(t *testing.T) {
		d, err := delivery.NewDelivery(7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), d.OrderID())
		assert.Equal(t, delivery.StatusAvailable, d.Status())
		assert.Nil(t, d.Agency())
		assert.Nil(t, d.AcceptedAt())
		assert.Nil(t, d.CompletedAt())
		assert.False(t, d.CreatedAt().IsZero())
	})

	t.Run("rejects_invalid_order_id", func(t *testing.T) {
		_, err := delivery.NewDelivery(0)
		require.Error(t, err)
	})
}

func TestDelivery_Claim(t *testing.T) {
	t.Run("claims_available_delivery", func(t *testing.T) {
		d, err := delivery.NewDelivery(7)
		require.NoError(t, err)
		agency := kernel.NewUUID()

		require.NoError(t, d.Claim(agency))

		assert.Equal(t, delivery.StatusAccepted, d.Status())
		require.NotNil(t, d.Agency())
		assert.True(t, agency.IsEqual(*d.Agency()))
		assert.NotNil(t, d.AcceptedAt())
	})

	t.Run("second_claim_conflicts_even_for_same_agency", func(t *testing.T) {
		d, err := delivery.NewDelivery(7)
		require.NoError(t, err)
		agency := kernel.NewUUID()
		require.NoError(t, d.Claim(agency))

		err = d.Claim(agency)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("claim_by_other_agency_conflicts", func(t *testing.T) {
		d, err := delivery.NewDelivery(7)
		require.NoError(t, err)
		require.NoError(t, d.Claim(kernel.NewUUID()))

		err = d.Claim(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("cancelled_delivery_cannot_be_claimed", func(t *testing.T) {
		d, err := delivery.NewDelivery(7)
		require.NoError(t, err)
		require.NoError(t, d.Cancel())

		require.ErrorIs(t, d.Claim(kernel.NewUUID()), errs.ErrConflict)
	})

	t.Run("rejects_invalid_agency", func(t *testing.T) {
		d, err := delivery.NewDelivery(7)
		require.NoError(t, err)
		require.Error(t, d.Claim(kernel.UUID{}))
		assert.Equal(t, delivery.StatusAvailable, d.Status())
	})
}

func TestDelivery_HappyPath(t *testing.T) {
	d, err := delivery.NewDelivery(7)
	require.NoError(t, err)

	require.NoError(t, d.Claim(kernel.NewUUID()))
	require.NoError(t, d.StartRoute())
	require.NoError(t, d.Complete())

	assert.Equal(t, delivery.StatusDelivered, d.Status())
	assert.NotNil(t, d.CompletedAt())

	t.Run("terminal_state_rejects_further_transitions", func(t *testing.T) {
		require.Error(t, d.StartRoute())
		require.Error(t, d.Cancel())
	})
}

func TestDelivery_Cancel(t *testing.T) {
	t.Run("from_available", func(t *testing.T) {
		d, err := delivery.NewDelivery(7)
		require.NoError(t, err)

		require.NoError(t, d.Cancel())
		assert.Equal(t, delivery.StatusCancelled, d.Status())
		assert.NotNil(t, d.CompletedAt())
	})

	t.Run("from_en_route", func(t *testing.T) {
		d, err := delivery.NewDelivery(7)
		require.NoError(t, err)
		require.NoError(t, d.Claim(kernel.NewUUID()))
		require.NoError(t, d.StartRoute())

		require.NoError(t, d.Cancel())
		assert.Equal(t, delivery.StatusCancelled, d.Status())
	})
}

func TestRestoreDelivery(t *testing.T) {
	now := time.Now().UTC()

	t.Run("restores_claimed_delivery", func(t *testing.T) {
		agency := kernel.NewUUID()

		d, err := delivery.RestoreDelivery(3, 7, &agency, delivery.StatusAccepted, now, &now, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(3), d.ID())
		require.NotNil(t, d.Agency())
		assert.True(t, agency.IsEqual(*d.Agency()))
	})

	t.Run("available_with_agency_breaks_invariant", func(t *testing.T) {
		agency := kernel.NewUUID()

		_, err := delivery.RestoreDelivery(3, 7, &agency, delivery.StatusAvailable, now, nil, nil)

		require.Error(t, err)
	})

	t.Run("accepted_without_agency_breaks_invariant", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(3, 7, nil, delivery.StatusAccepted, now, &now, nil)

		require.Error(t, err)
	})

	t.Run("cancelled_without_agency_is_legal", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(3, 7, nil, delivery.StatusCancelled, now, nil, &now)

		require.NoError(t, err)
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    delivery.Status
		to      delivery.Status
		wantErr bool
	}{
		{"available_to_accepted", delivery.StatusAvailable, delivery.StatusAccepted, false},
		{"accepted_to_en_route", delivery.StatusAccepted, delivery.StatusEnRoute, false},
		{"en_route_to_delivered", delivery.StatusEnRoute, delivery.StatusDelivered, false},
		{"available_to_cancelled", delivery.StatusAvailable, delivery.StatusCancelled, false},
		{"accepted_to_cancelled", delivery.StatusAccepted, delivery.StatusCancelled, false},
		{"available_to_en_route_skips_accepted", delivery.StatusAvailable, delivery.StatusEnRoute, true},
		{"delivered_is_terminal", delivery.StatusDelivered, delivery.StatusCancelled, true},
		{"cancelled_is_terminal", delivery.StatusCancelled, delivery.StatusAccepted, true},
		{"unknown_target", delivery.StatusAvailable, delivery.Status("claimed"), true},
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
