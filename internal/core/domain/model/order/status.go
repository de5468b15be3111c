package order

import (
	"fmt"

	"terabia/internal/pkg/errs"
)

// Status represents the delivery lifecycle state of an order.
//
// State transitions:
//
//	pending ──> accepted ──> in_transit ──> delivered
//	   │            │             │
//	   └────────────┴─────────────┴──> cancelled
//
// delivered and cancelled are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusPending:   {},
		StatusAccepted:  {},
		StatusInTransit: {},
		StatusDelivered: {},
		StatusCancelled: {},
	}
}

// Validate checks that the status is one of the defined lifecycle states.
// Used when reconstructing orders from persistence or parsing client input.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TransitionTo validates the move from s to next and returns next on success.
//
// Allowed transitions:
//   - pending -> accepted
//   - accepted -> in_transit
//   - in_transit -> delivered
//   - any non-terminal -> cancelled
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}

	if next == StatusCancelled {
		if s.IsTerminal() {
			return "", errs.NewValueIsInvalidErrorWithCause(
				"status",
				fmt.Errorf("%s is terminal and cannot be cancelled", s),
			)
		}
		return StatusCancelled, nil
	}

	allowed := map[Status]Status{
		StatusPending:   StatusAccepted,
		StatusAccepted:  StatusInTransit,
		StatusInTransit: StatusDelivered,
	}

	if target, ok := allowed[s]; ok && target == next {
		return next, nil
	}

	return "", errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("cannot transition order from %s to %s", s, next),
	)
}
