// Package productrepo provides data transfer objects and mapping functions
// for the catalog rows the coordination core reads: seller ownership,
// activity flags, and current prices.
package productrepo

import (
	"time"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database row for a catalog product.
type ProductDTO struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	SellerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name     string    `gorm:"not null"`
	Price    float64   `gorm:"not null"`
	IsActive bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:       aggregate.ID(),
		SellerID: aggregate.SellerID().Google(),
		Name:     aggregate.Name(),
		Price:    aggregate.Price(),
		IsActive: aggregate.IsActive(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	sellerID, err := kernel.UUIDFromGoogle(dto.SellerID)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(dto.ID, sellerID, dto.Name, dto.Price, dto.IsActive)
}
