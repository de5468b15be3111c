package queries

import (
	"errors"
	"fmt"
	"time"

	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery or NewGetDeliveryByOrderQuery constructor",
)

// GetDeliveryQuery retrieves a single delivery job, either by its own id or
// by the order it covers.
type GetDeliveryQuery struct { //nolint:recvcheck //using for validation
	deliveryID int64
	orderID    int64

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query by delivery id.
func NewGetDeliveryQuery(deliveryID int64) (GetDeliveryQuery, error) {
	if deliveryID <= 0 {
		return GetDeliveryQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"delivery_id", fmt.Errorf("%d is not a valid delivery id", deliveryID))
	}

	return GetDeliveryQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewGetDeliveryByOrderQuery creates a query by the covered order's id.
func NewGetDeliveryByOrderQuery(orderID int64) (GetDeliveryQuery, error) {
	if orderID <= 0 {
		return GetDeliveryQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"order_id", fmt.Errorf("%d is not a valid order id", orderID))
	}

	return GetDeliveryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the delivery id filter, zero when querying by order.
func (q GetDeliveryQuery) DeliveryID() int64 {
	return q.deliveryID
}

// OrderID returns the order id filter, zero when querying by delivery id.
func (q GetDeliveryQuery) OrderID() int64 {
	return q.orderID
}

// DeliveryResponse is the read model of a delivery job, shaped for JSON
// transport.
type DeliveryResponse struct {
	ID          int64      `json:"id"`
	OrderID     int64      `json:"order_id"`
	AgencyID    *string    `json:"agency_id,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
