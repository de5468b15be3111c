package services_test

import (
	"testing"
	"time"

	"terabia/internal/core/domain/services"
	"terabia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderNumberSequencer_Compose(t *testing.T) {
	seq := services.NewOrderNumberSequencer()

	t.Run("renders_zero_padded_number", func(t *testing.T) {
		number, err := seq.Compose("20260830", 42)

		require.NoError(t, err)
		assert.Equal(t, "TRB20260830000042", number)
	})

	t.Run("renders_max_sequence", func(t *testing.T) {
		number, err := seq.Compose("20260830", services.OrderNumberMaxSequence)

		require.NoError(t, err)
		assert.Equal(t, "TRB20260830999999", number)
	})

	t.Run("exhausted_daily_namespace", func(t *testing.T) {
		_, err := seq.Compose("20260830", services.OrderNumberMaxSequence+1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrSequenceIsExhausted)
	})

	t.Run("rejects_non_positive_sequence", func(t *testing.T) {
		_, err := seq.Compose("20260830", 0)
		require.Error(t, err)
	})

	t.Run("rejects_malformed_day", func(t *testing.T) {
		_, err := seq.Compose("2026-08-30", 1)
		require.Error(t, err)

		_, err = seq.Compose("20261345", 1)
		require.Error(t, err)
	})
}

func TestOrderNumberSequencer_Day(t *testing.T) {
	seq := services.NewOrderNumberSequencer()

	instant := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "20260830", seq.Day(instant))

	t.Run("normalizes_to_utc", func(t *testing.T) {
		// 23:30 UTC-2 is already the next day in UTC.
		zone := time.FixedZone("UTC-2", -2*60*60)
		late := time.Date(2026, 8, 30, 23, 30, 0, 0, zone)
		assert.Equal(t, "20260831", seq.Day(late))
	})
}

func TestOrderNumberSequencer_Parse(t *testing.T) {
	seq := services.NewOrderNumberSequencer()

	t.Run("round_trips_compose", func(t *testing.T) {
		number, err := seq.Compose("20260830", 42)
		require.NoError(t, err)

		day, sequence, err := seq.Parse(number)

		require.NoError(t, err)
		assert.Equal(t, "20260830", day)
		assert.Equal(t, int64(42), sequence)
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		for _, bad := range []string{
			"",
			"TRB",
			"ORD20260830000042",
			"TRB2026083000042",     // sequence too short
			"TRB202608300000420",   // sequence too long
			"TRB20269999000042",    // impossible date
			"TRB20260830000000",    // zero sequence
			"trb20260830000042",    // wrong case
		} {
			_, _, err := seq.Parse(bad)
			require.Error(t, err, "expected %q to be rejected", bad)
		}
	})
}
