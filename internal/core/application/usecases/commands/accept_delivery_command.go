package commands

import (
	"errors"
	"fmt"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand represents an agency's attempt to claim an available
// delivery job. Under concurrency at most one such command per delivery
// succeeds; the rest fail with a Conflict.
type AcceptDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID int64
	agencyID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand creates a validated claim command.
func NewAcceptDeliveryCommand(deliveryID int64, agencyID kernel.UUID) (AcceptDeliveryCommand, error) {
	cmd := AcceptDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if deliveryID <= 0 {
		return AcceptDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"delivery_id", fmt.Errorf("%d is not a valid delivery id", deliveryID))
	}
	if err := agencyID.Validate(); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	cmd.deliveryID = deliveryID
	cmd.agencyID = agencyID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's storage id.
func (c AcceptDeliveryCommand) DeliveryID() int64 {
	return c.deliveryID
}

// AgencyID returns the claiming agency's identifier.
func (c AcceptDeliveryCommand) AgencyID() kernel.UUID {
	return c.agencyID
}
