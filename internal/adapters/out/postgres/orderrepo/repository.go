package orderrepo

import (
	"context"
	"errors"
	"time"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/core/domain/model/order"
	"terabia/internal/core/domain/services"
	"terabia/internal/metrics"
	"terabia/internal/pkg/errs"

	"gorm.io/gorm"
)

// maxAllocationAttempts bounds the retry loop around order-number allocation.
const maxAllocationAttempts = 3

// incrementCounterSQL advances the per-day counter and returns the new value
// in a single statement. The unqualified last_value on the right-hand side
// refers to the stored row, so concurrent callers serialize on the row lock
// and each observe a distinct value.
const incrementCounterSQL = `
INSERT INTO order_number_counters (day, last_value) VALUES (?, 1)
ON CONFLICT (day) DO UPDATE SET last_value = last_value + 1
RETURNING last_value`

// GormOrderRepository implements OrderRepository using GORM.
//
// Requires the connection to be opened with gorm.Config{TranslateError: true}
// so unique violations surface as gorm.ErrDuplicatedKey.
type GormOrderRepository struct {
	db        *gorm.DB
	tracker   aggregateTracker
	sequencer services.OrderNumberSequencer
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:        db,
		tracker:   tracker,
		sequencer: services.NewOrderNumberSequencer(),
	}
}

// Add persists a new order, allocating its order number on the way in.
//
// Each attempt advances the per-day counter, renders the number, and inserts
// the row inside a savepoint. A unique violation on order_number (a row
// predating the counter, or an operator-inserted number) rolls back only the
// insert: the counter advance survives, so the next attempt draws a fresh
// value instead of colliding forever. After maxAllocationAttempts the loop
// gives up with ErrSequenceIsExhausted.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.OrderNumber() != "" {
		return order.ErrOrderNumberAlreadyAssigned
	}

	var lastErr error
	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		day := r.sequencer.Day(time.Now())

		var sequence int64
		if err := r.db.WithContext(ctx).Raw(incrementCounterSQL, day).Scan(&sequence).Error; err != nil {
			return err
		}

		number, err := r.sequencer.Compose(day, sequence)
		if err != nil {
			return err
		}

		dto := fromDomain(aggregate)
		dto.OrderNumber = number

		// Nested Transaction degrades to a savepoint when r.db is already
		// transactional, keeping the enclosing unit of work usable after a
		// failed insert.
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(&dto).Error
		})
		if err == nil {
			if assignErr := aggregate.AssignNumber(number); assignErr != nil {
				return assignErr
			}
			if persistErr := aggregate.MarkPersisted(dto.ID); persistErr != nil {
				return persistErr
			}
			r.tracker.TrackAggregate(aggregate.ID(), aggregate)
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		metrics.OrderNumberRetriesTotal.Inc()
		lastErr = err
	}

	return errs.NewSequenceExhaustedError(maxAllocationAttempts, lastErr)
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("items", "subtotal", "delivery_fee", "total",
			"status", "payment_status",
			"delivery_address", "delivery_city", "delivery_lat", "delivery_lon",
			"agency_id", "buyer_notes").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every order, newest first.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllByBuyer retrieves a buyer's orders, newest first.
func (r *GormOrderRepository) GetAllByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error) {
	if err := buyerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID.Google()).
		Order("id DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Delete removes an order.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}
	return nil
}

// GetIDsWithoutDelivery returns ids of non-cancelled orders that have no
// delivery record yet, oldest first.
func (r *GormOrderRepository) GetIDsWithoutDelivery(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Raw(`
SELECT o.id FROM orders o
LEFT JOIN deliveries d ON d.order_id = o.id
WHERE d.id IS NULL AND o.status <> ?
ORDER BY o.id`, order.StatusCancelled.String()).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
