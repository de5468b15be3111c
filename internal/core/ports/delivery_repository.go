package ports

import (
	"context"

	"terabia/internal/core/domain/model/delivery"
	"terabia/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery jobs.
type DeliveryRepository interface {
	// Add persists a new delivery.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by its surrogate key.
	Get(ctx context.Context, id int64) (*delivery.Delivery, error)

	// GetByOrder retrieves the delivery bound to the given order.
	GetByOrder(ctx context.Context, orderID int64) (*delivery.Delivery, error)

	// GetAll retrieves every delivery, newest first.
	GetAll(ctx context.Context) ([]*delivery.Delivery, error)

	// GetAllAvailable retrieves unclaimed deliveries, oldest job first. The
	// result is a snapshot: a listed delivery may already be claimed by the
	// time a client attempts to accept it.
	GetAllAvailable(ctx context.Context) ([]*delivery.Delivery, error)

	// GetAllByAgency retrieves deliveries currently or previously bound to
	// the agency, newest first.
	GetAllByAgency(ctx context.Context, agencyID kernel.UUID) ([]*delivery.Delivery, error)

	// Delete removes a delivery (administrative action).
	Delete(ctx context.Context, id int64) error

	// Claim atomically binds the agency to the delivery if and only if it is
	// still available, via a single conditional update ("... WHERE id = ?
	// AND status = 'available'") checked by rows affected. Never implemented
	// as read-then-write in application code.
	//
	// On zero rows affected the implementation disambiguates with a
	// follow-up read: errs.ErrObjectNotFound if the delivery does not exist,
	// errs.ErrConflict if it exists but is no longer claimable. A repeated
	// claim by the winning agency is a Conflict too; the operation is not
	// idempotent. Returns the claimed delivery on success.
	Claim(ctx context.Context, deliveryID int64, agencyID kernel.UUID) (*delivery.Delivery, error)
}
