// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery-job persistence, including the conditional update that decides
// claim races.
package deliveryrepo

import (
	"time"

	"terabia/internal/core/domain/model/delivery"
	"terabia/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database row for a delivery job. order_id is
// unique: a delivery is bound 1:1 to its order.
type DeliveryDTO struct {
	ID       int64      `gorm:"primaryKey;autoIncrement"`
	OrderID  int64      `gorm:"uniqueIndex;not null"`
	AgencyID *uuid.UUID `gorm:"type:uuid;index"`
	Status   string     `gorm:"size:20;index;not null"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	AcceptedAt  *time.Time
	CompletedAt *time.Time
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var agencyID *uuid.UUID
	if id := aggregate.Agency(); id != nil {
		raw := id.Google()
		agencyID = &raw
	}

	return DeliveryDTO{
		ID:          aggregate.ID(),
		OrderID:     aggregate.OrderID(),
		AgencyID:    agencyID,
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
		AcceptedAt:  aggregate.AcceptedAt(),
		CompletedAt: aggregate.CompletedAt(),
	}
}

// toDomain converts a database row back to a delivery aggregate, re-running
// the agency/status consistency invariant via RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	var agencyID *kernel.UUID
	if dto.AgencyID != nil {
		id, err := kernel.UUIDFromGoogle(*dto.AgencyID)
		if err != nil {
			return nil, err
		}
		agencyID = &id
	}

	return delivery.RestoreDelivery(
		dto.ID,
		dto.OrderID,
		agencyID,
		delivery.Status(dto.Status),
		dto.CreatedAt,
		dto.AcceptedAt,
		dto.CompletedAt,
	)
}
