package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDeliveriesQueryHandler lists delivery rows.
type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesQueryHandler creates a handler for delivery listings.
func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

// Handle returns matching deliveries. Available listings come back oldest
// first, everything else newest first.
func (h GetDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `SELECT ` + deliveryColumns + ` FROM deliveries`
	args := make([]any, 0, 1)

	switch {
	case query.AvailableOnly():
		sqlQuery += ` WHERE status = 'available' ORDER BY created_at ASC, id ASC`
	case query.AgencyID() != nil:
		sqlQuery += ` WHERE agency_id = ? ORDER BY id DESC`
		args = append(args, query.AgencyID().Google())
	default:
		sqlQuery += ` ORDER BY id DESC`
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]DeliveryResponse, 0)
	for rows.Next() {
		resp, scanErr := scanDeliveryRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		deliveries = append(deliveries, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
