package commands

import (
	"errors"

	"terabia/internal/pkg/guard"
)

var ErrBackfillDeliveriesCommandIsNotConstructed = errors.New(
	"BackfillDeliveriesCommand must be created via NewBackfillDeliveriesCommand constructor",
)

// BackfillDeliveriesCommand opens available delivery jobs for every
// non-cancelled order that has none. Parameterless; issued periodically by
// the background job.
type BackfillDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewBackfillDeliveriesCommand creates the backfill command.
func NewBackfillDeliveriesCommand() BackfillDeliveriesCommand {
	return BackfillDeliveriesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c BackfillDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrBackfillDeliveriesCommandIsNotConstructed)
}
