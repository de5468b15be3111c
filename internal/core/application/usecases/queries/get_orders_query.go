package queries

import (
	"errors"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery or NewGetOrdersByBuyerQuery constructor",
)

// GetOrdersQuery lists orders, newest first, optionally restricted to one
// buyer.
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	buyerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query over all orders.
func NewGetOrdersQuery() GetOrdersQuery {
	return GetOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetOrdersByBuyerQuery creates a query restricted to one buyer's orders.
func NewGetOrdersByBuyerQuery(buyerID kernel.UUID) (GetOrdersQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		buyerID: &buyerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// BuyerID returns the buyer filter, nil when listing all orders.
func (q GetOrdersQuery) BuyerID() *kernel.UUID {
	return q.buyerID
}
