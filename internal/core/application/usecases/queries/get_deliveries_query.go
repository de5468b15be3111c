package queries

import (
	"errors"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/guard"
)

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via one of its constructors",
)

// GetDeliveriesQuery lists delivery jobs. Three shapes exist: every job,
// only unclaimed jobs (oldest first, so agencies see the longest-waiting
// work on top), or the jobs claimed by one agency.
type GetDeliveriesQuery struct { //nolint:recvcheck //using for validation
	availableOnly bool
	agencyID      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveriesQuery creates a query over all delivery jobs.
func NewGetDeliveriesQuery() GetDeliveriesQuery {
	return GetDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// NewGetAvailableDeliveriesQuery creates a query over unclaimed jobs only.
func NewGetAvailableDeliveriesQuery() GetDeliveriesQuery {
	return GetDeliveriesQuery{
		availableOnly: true,
		guard:         guard.NewConstructorGuard(),
	}
}

// NewGetAgencyDeliveriesQuery creates a query over one agency's claimed jobs.
func NewGetAgencyDeliveriesQuery(agencyID kernel.UUID) (GetDeliveriesQuery, error) {
	if err := agencyID.Validate(); err != nil {
		return GetDeliveriesQuery{}, err
	}

	return GetDeliveriesQuery{
		agencyID: &agencyID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// AvailableOnly reports whether only unclaimed jobs are requested.
func (q GetDeliveriesQuery) AvailableOnly() bool {
	return q.availableOnly
}

// AgencyID returns the agency filter, nil when not filtering by agency.
func (q GetDeliveriesQuery) AgencyID() *kernel.UUID {
	return q.agencyID
}
