package errs_test

import (
	"errors"
	"testing"

	"terabia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("deliveryId", "42", cause)

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, "42", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: deliveryId, ID is: 42 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("renders numeric ids", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", int64(42))
		assert.Equal(t, "object not found: 42", err.Error())

		cause := errors.New("gone")
		withCause := errs.NewObjectNotFoundErrorWithCause("orderId", int64(42), cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 42 (cause: gone)",
			withCause.Error())
	})

	t.Run("classification via errors.Is", func(t *testing.T) {
		var err error = errs.NewObjectNotFoundError("orderId", "123")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.NotErrorIs(t, err, errs.ErrConflict)
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("deliveryId", 7)

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, 7, err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "conflict: 7", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("already claimed by another agency")
		err := errs.NewConflictErrorWithCause("deliveryId", 7, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"conflict: param is: deliveryId, ID is: 7 (cause: already claimed by another agency)",
			err.Error())
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("price")

		assert.Equal(t, "price", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: price", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("not a number")
		err := errs.NewValueIsInvalidErrorWithCause("price", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: price (cause: not a number)", err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("buyer_id")

	assert.Equal(t, "buyer_id", err.ParamName)
	assert.Equal(t, "value is required: buyer_id", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("latitude", 95.0, -90.0, 90.0)

	assert.Equal(t, "latitude", err.ParamName)
	assert.Equal(t, 95.0, err.Value)
	assert.Equal(t, -90.0, err.Min)
	assert.Equal(t, 90.0, err.Max)
	assert.Equal(t, "value is invalid: 95 is latitude, min value is -90, max value is 90", err.Error())
	assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
}

func TestSequenceExhaustedError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("duplicated key not allowed")
		err := errs.NewSequenceExhaustedError(3, cause)

		assert.Equal(t, 3, err.Attempts)
		assert.Equal(t,
			"sequence allocation retries exhausted after 3 attempts (cause: duplicated key not allowed)",
			err.Error())
		assert.ErrorIs(t, err, errs.ErrSequenceIsExhausted)
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewSequenceExhaustedError(3, nil)
		assert.Equal(t, "sequence allocation retries exhausted after 3 attempts", err.Error())
	})
}
