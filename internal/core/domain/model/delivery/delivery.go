package delivery

import (
	"errors"
	"fmt"
	"time"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")

// Delivery is the aggregate root for one delivery job, bound 1:1 to an
// order. It starts unclaimed (available, no agency) and is claimed by
// exactly one agency over its whole lifetime: agency binding transitions
// from nil to a single fixed value exactly once.
type Delivery struct {
	id       int64
	orderID  int64
	agencyID *kernel.UUID
	status   Status

	createdAt   time.Time
	acceptedAt  *time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewDelivery creates an unclaimed delivery for the given order.
func NewDelivery(orderID int64) (*Delivery, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not a valid order id", orderID))
	}

	return &Delivery{
		orderID:       orderID,
		status:        StatusAvailable,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistence, re-checking the
// agency/status consistency invariant.
func RestoreDelivery(
	id int64,
	orderID int64,
	agencyID *kernel.UUID,
	status Status,
	createdAt time.Time,
	acceptedAt *time.Time,
	completedAt *time.Time,
) (*Delivery, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not a valid order id", orderID))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.validateCanHaveAgency(agencyID != nil); err != nil {
		return nil, err
	}

	d := &Delivery{
		id:            id,
		orderID:       orderID,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if agencyID != nil {
		if err := agencyID.Validate(); err != nil {
			return nil, err
		}
		bound := *agencyID
		d.agencyID = &bound
	}
	if acceptedAt != nil {
		at := *acceptedAt
		d.acceptedAt = &at
	}
	if completedAt != nil {
		ct := *completedAt
		d.completedAt = &ct
	}

	return d, nil
}

// validateCanHaveAgency enforces: available deliveries have no agency, all
// other states have exactly one.
func (s Status) validateCanHaveAgency(hasAgency bool) error {
	if hasAgency && s == StatusAvailable {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("an available delivery cannot have a bound agency"),
		)
	}
	if !hasAgency && s != StatusAvailable && s != StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("a delivery in status %s must have a bound agency", s),
		)
	}
	return nil
}

// Validate ensures the Delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by storage id.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id != 0 && d.id == other.id
}

// ID returns the storage-assigned surrogate key, zero before first persist.
func (d *Delivery) ID() int64 {
	return d.id
}

// OrderID returns the bound order's id.
func (d *Delivery) OrderID() int64 {
	return d.orderID
}

// Agency returns the claiming agency's id, nil while unclaimed.
func (d *Delivery) Agency() *kernel.UUID {
	return d.agencyID
}

// Status returns the current lifecycle state.
func (d *Delivery) Status() Status {
	return d.status
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// AcceptedAt returns when the delivery was claimed, nil while unclaimed.
func (d *Delivery) AcceptedAt() *time.Time {
	return d.acceptedAt
}

// CompletedAt returns when the delivery reached a terminal state.
func (d *Delivery) CompletedAt() *time.Time {
	return d.completedAt
}

// MarkPersisted records the storage-assigned id after the initial insert.
func (d *Delivery) MarkPersisted(id int64) error {
	if d.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("delivery already persisted with id %d", d.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid storage id", id))
	}
	d.id = id
	return nil
}

// Claim binds the delivery to the winning agency and moves it to accepted.
//
// This expresses the state rule only. Under concurrency the decision of WHO
// wins is made by the repository's atomic conditional update; use cases call
// Claim on the aggregate reloaded after that update has already succeeded,
// or rely on the repository result directly.
func (d *Delivery) Claim(agencyID kernel.UUID) error {
	if err := agencyID.Validate(); err != nil {
		return err
	}
	if d.agencyID != nil {
		return errs.NewConflictErrorWithCause("deliveryId", d.id,
			fmt.Errorf("already claimed by agency %s", d.agencyID))
	}

	newStatus, err := d.status.TransitionTo(StatusAccepted)
	if err != nil {
		return errs.NewConflictErrorWithCause("deliveryId", d.id, err)
	}

	now := time.Now().UTC()
	d.status = newStatus
	bound := agencyID
	d.agencyID = &bound
	d.acceptedAt = &now
	return nil
}

// StartRoute moves a claimed delivery onto the road.
func (d *Delivery) StartRoute() error {
	newStatus, err := d.status.TransitionTo(StatusEnRoute)
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

// Complete marks the delivery as handed over to the buyer.
func (d *Delivery) Complete() error {
	newStatus, err := d.status.TransitionTo(StatusDelivered)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	d.status = newStatus
	d.completedAt = &now
	return nil
}

// Cancel aborts the delivery from any non-terminal state.
func (d *Delivery) Cancel() error {
	newStatus, err := d.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	d.status = newStatus
	d.completedAt = &now
	return nil
}
