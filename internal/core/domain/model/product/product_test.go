package product_test

import (
	"testing"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		seller := kernel.NewUUID()
		p, err := product.NewProduct(seller, "Tomates fraîches", 500)

		require.NoError(t, err)
		assert.True(t, seller.IsEqual(p.SellerID()))
		assert.True(t, p.IsActive())
		assert.Zero(t, p.ID())
	})

	t.Run("requires_seller", func(t *testing.T) {
		_, err := product.NewProduct(kernel.UUID{}, "Tomates", 500)
		require.Error(t, err)
	})

	t.Run("requires_name", func(t *testing.T) {
		_, err := product.NewProduct(kernel.NewUUID(), "", 500)
		require.Error(t, err)
	})

	t.Run("rejects_negative_price", func(t *testing.T) {
		_, err := product.NewProduct(kernel.NewUUID(), "Tomates", -1)
		require.Error(t, err)
	})
}

func TestProduct_ActivationToggle(t *testing.T) {
	p, err := product.NewProduct(kernel.NewUUID(), "Tomates", 500)
	require.NoError(t, err)

	p.Deactivate()
	assert.False(t, p.IsActive())
	p.Activate()
	assert.True(t, p.IsActive())
}

func TestRestoreProduct(t *testing.T) {
	p, err := product.RestoreProduct(9, kernel.NewUUID(), "Tomates", 500, false)

	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID())
	assert.False(t, p.IsActive())
}
