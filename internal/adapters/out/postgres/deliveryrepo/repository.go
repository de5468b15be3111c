package deliveryrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"terabia/internal/core/domain/model/delivery"
	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		// order_id is unique: a second job for the same order is a conflict,
		// not a storage failure.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("orderId", aggregate.OrderID(), err)
		}
		return err
	}

	if err := aggregate.MarkPersisted(dto.ID); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("agency_id", "status", "accepted_at", "completed_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id int64) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves the delivery bound to the given order.
func (r *GormDeliveryRepository) GetByOrder(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every delivery, newest first.
func (r *GormDeliveryRepository) GetAll(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllAvailable retrieves unclaimed deliveries, oldest job first.
func (r *GormDeliveryRepository) GetAllAvailable(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", delivery.StatusAvailable.String()).
		Order("created_at ASC, id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllByAgency retrieves deliveries bound to the agency, newest first.
func (r *GormDeliveryRepository) GetAllByAgency(ctx context.Context, agencyID kernel.UUID) ([]*delivery.Delivery, error) {
	if err := agencyID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID.Google()).
		Order("id DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Delete removes a delivery.
func (r *GormDeliveryRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&DeliveryDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", id)
	}
	return nil
}

// Claim atomically binds the agency to the delivery if it is still available.
//
// The decision is a single conditional UPDATE filtered on status, judged by
// rows affected; there is no read before the write, so two agencies racing
// for the same job resolve to exactly one winner at the database. On zero
// rows affected a follow-up read tells a missing delivery (ObjectNotFound)
// apart from one that was claimed first (Conflict).
func (r *GormDeliveryRepository) Claim(ctx context.Context, deliveryID int64, agencyID kernel.UUID) (*delivery.Delivery, error) {
	if err := agencyID.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", deliveryID, delivery.StatusAvailable.String()).
		Updates(map[string]any{
			"agency_id":   agencyID.Google(),
			"status":      delivery.StatusAccepted.String(),
			"accepted_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		var dto DeliveryDTO
		err := r.db.WithContext(ctx).First(&dto, "id = ?", deliveryID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", deliveryID)
		}
		if err != nil {
			return nil, err
		}
		return nil, errs.NewConflictErrorWithCause("deliveryId", deliveryID,
			fmt.Errorf("delivery is %s", dto.Status))
	}

	claimed, err := r.Get(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(claimed.ID(), claimed)
	return claimed, nil
}

func toDomainSlice(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}
