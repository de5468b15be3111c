package queries

import (
	"errors"
	"fmt"
	"time"

	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by its storage id.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a validated single-order query.
func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"order_id", fmt.Errorf("%d is not a valid order id", orderID))
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's storage id.
func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// OrderLineItemResponse is one line item of an order response.
type OrderLineItemResponse struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderResponse is the read model of an order, shaped for JSON transport.
type OrderResponse struct {
	ID              int64                   `json:"id"`
	OrderNumber     string                  `json:"order_number"`
	BuyerID         string                  `json:"buyer_id"`
	Items           []OrderLineItemResponse `json:"items"`
	Subtotal        float64                 `json:"subtotal"`
	DeliveryFee     float64                 `json:"delivery_fee"`
	Total           float64                 `json:"total"`
	Status          string                  `json:"status"`
	PaymentStatus   string                  `json:"payment_status"`
	DeliveryAddress string                  `json:"delivery_address"`
	DeliveryCity    string                  `json:"delivery_city"`
	DeliveryLat     *float64                `json:"delivery_lat,omitempty"`
	DeliveryLon     *float64                `json:"delivery_lon,omitempty"`
	AgencyID        *string                 `json:"delivery_agency_id,omitempty"`
	BuyerNotes      string                  `json:"buyer_notes,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
}
