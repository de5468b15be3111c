package queries

import (
	"errors"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/guard"
)

var ErrGetSellerStatsQueryIsNotConstructed = errors.New(
	"GetSellerStatsQuery must be created via NewGetSellerStatsQuery constructor",
)

// GetSellerStatsQuery requests the sales dashboard figures of one seller.
type GetSellerStatsQuery struct { //nolint:recvcheck //using for validation
	sellerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSellerStatsQuery creates a validated seller stats query.
func NewGetSellerStatsQuery(sellerID kernel.UUID) (GetSellerStatsQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetSellerStatsQuery{}, err
	}

	return GetSellerStatsQuery{
		sellerID: sellerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSellerStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerStatsQueryIsNotConstructed)
}

// SellerID returns the seller whose figures are requested.
func (q GetSellerStatsQuery) SellerID() kernel.UUID {
	return q.sellerID
}

// SellerStatsResponse carries the dashboard figures. Field names follow the
// storefront's existing payload contract, hence the camelCase keys.
type SellerStatsResponse struct {
	TotalProducts  int64   `json:"totalProducts"`
	ActiveProducts int64   `json:"activeProducts"`
	TotalOrders    int64   `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
}
