package order

import (
	"fmt"

	"terabia/internal/pkg/errs"
)

// PaymentStatus tracks payment settlement independently of the delivery
// lifecycle. Payment processing itself happens outside this core; only the
// outcome is recorded here.
//
// Transitions: pending -> success, pending -> failed. Both outcomes are
// terminal; no further payment attempts are modeled.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// Validate checks that the payment status is one of the defined states.
func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentPending, PaymentSuccess, PaymentFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"payment_status",
			fmt.Errorf("%q is not a valid payment status", string(p)),
		)
	}
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsTerminal reports whether the payment outcome is settled.
func (p PaymentStatus) IsTerminal() bool {
	return p == PaymentSuccess || p == PaymentFailed
}

// TransitionTo validates the move from p to next and returns next on success.
func (p PaymentStatus) TransitionTo(next PaymentStatus) (PaymentStatus, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}

	if p != PaymentPending {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"payment_status",
			fmt.Errorf("payment status %s is terminal", p),
		)
	}
	if next == PaymentPending {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"payment_status",
			fmt.Errorf("cannot transition payment status back to %s", next),
		)
	}

	return next, nil
}
