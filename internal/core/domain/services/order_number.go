package services

import (
	"fmt"
	"regexp"
	"time"

	"terabia/internal/pkg/errs"
)

const (
	// OrderNumberPrefix is the literal prefix of every order number.
	OrderNumberPrefix = "TRB"

	// OrderNumberSequenceDigits is the width of the zero-padded daily sequence.
	OrderNumberSequenceDigits = 6

	// OrderNumberMaxSequence is the highest sequence value representable in a
	// single day. Allocation beyond it means the daily namespace is full.
	OrderNumberMaxSequence = 999999

	orderNumberDayLayout = "20060102"
)

var orderNumberPattern = regexp.MustCompile(`^TRB(\d{8})(\d{6})$`)

// OrderNumberSequencer renders and parses human-readable order numbers of the
// form TRB<YYYYMMDD><6-digit sequence>, e.g. TRB20260830000042.
//
// The sequence restarts at 1 on each calendar day and values are never
// reused, even when earlier orders of the same day are cancelled: the
// per-day counter only moves forward.
type OrderNumberSequencer struct{}

// NewOrderNumberSequencer creates the sequencer service.
func NewOrderNumberSequencer() OrderNumberSequencer {
	return OrderNumberSequencer{}
}

// Day renders the calendar-day segment for the given instant, in UTC.
func (OrderNumberSequencer) Day(t time.Time) string {
	return t.UTC().Format(orderNumberDayLayout)
}

// Compose renders the order number for a day segment and sequence value.
// Returns ErrSequenceIsExhausted when the daily namespace is full.
func (s OrderNumberSequencer) Compose(day string, sequence int64) (string, error) {
	if _, err := time.Parse(orderNumberDayLayout, day); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("day", err)
	}
	if sequence < 1 {
		return "", errs.NewValueIsInvalidErrorWithCause("sequence", fmt.Errorf("%d is not greater than 0", sequence))
	}
	if sequence > OrderNumberMaxSequence {
		return "", errs.NewSequenceExhaustedError(0,
			fmt.Errorf("daily sequence %d exceeds %d", sequence, OrderNumberMaxSequence))
	}

	return fmt.Sprintf("%s%s%0*d", OrderNumberPrefix, day, OrderNumberSequenceDigits, sequence), nil
}

// Parse splits an order number into its day segment and sequence value.
func (OrderNumberSequencer) Parse(number string) (day string, sequence int64, err error) {
	match := orderNumberPattern.FindStringSubmatch(number)
	if match == nil {
		return "", 0, errs.NewValueIsInvalidErrorWithCause("order_number",
			fmt.Errorf("%q does not match TRB<YYYYMMDD><%06d..%d>", number, 1, OrderNumberMaxSequence))
	}
	if _, err = time.Parse(orderNumberDayLayout, match[1]); err != nil {
		return "", 0, errs.NewValueIsInvalidErrorWithCause("order_number", err)
	}

	if _, scanErr := fmt.Sscanf(match[2], "%d", &sequence); scanErr != nil {
		return "", 0, errs.NewValueIsInvalidErrorWithCause("order_number", scanErr)
	}
	if sequence < 1 {
		return "", 0, errs.NewValueIsInvalidErrorWithCause("order_number",
			fmt.Errorf("sequence segment of %q is zero", number))
	}
	return match[1], sequence, nil
}
