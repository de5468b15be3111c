package delivery

import (
	"fmt"

	"terabia/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery job.
//
// State transitions:
//
//	available ──> accepted ──> en_route ──> delivered
//	    │             │            │
//	    └─────────────┴────────────┴──> cancelled
//
// available is the only state reachable by more than one candidate agency;
// all later states are single-owner. delivered and cancelled are terminal.
type Status string

const (
	StatusAvailable Status = "available"
	StatusAccepted  Status = "accepted"
	StatusEnRoute   Status = "en_route"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	switch s {
	case StatusAvailable, StatusAccepted, StatusEnRoute, StatusDelivered, StatusCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a valid delivery status", string(s)),
		)
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the delivery is retired.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TransitionTo validates the move from s to next and returns next on success.
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
		StatusAvailable: StatusAccepted,
		StatusAccepted:  StatusEnRoute,
		StatusEnRoute:   StatusDelivered,
	}

	if target, ok := allowed[s]; ok && target == next {
		return next, nil
	}

	return "", errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("cannot transition delivery from %s to %s", s, next),
	)
}
