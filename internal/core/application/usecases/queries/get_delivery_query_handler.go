package queries

import (
	"context"
	"database/sql"
	"time"

	"terabia/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const deliveryColumns = `id, order_id, agency_id, status, created_at, accepted_at, completed_at`

// GetDeliveryQueryHandler retrieves a single delivery row.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for single-delivery reads.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle returns the delivery or ObjectNotFound.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryResponse{}, err
	}

	column, id := "id", query.DeliveryID()
	notFoundParam := "delivery"
	if query.OrderID() != 0 {
		column, id = "order_id", query.OrderID()
		notFoundParam = "order"
	}

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT `+deliveryColumns+` FROM deliveries WHERE `+column+` = ?`, id).Rows()
	if err != nil {
		return DeliveryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return DeliveryResponse{}, err
		}
		return DeliveryResponse{}, errs.NewObjectNotFoundError(notFoundParam, id)
	}

	return scanDeliveryRow(rows)
}

// scanDeliveryRow maps one row of deliveryColumns into a DeliveryResponse.
func scanDeliveryRow(rows *sql.Rows) (DeliveryResponse, error) {
	var (
		resp                    DeliveryResponse
		agencyID                uuid.NullUUID
		created                 time.Time
		acceptedAt, completedAt sql.NullTime
	)

	if err := rows.Scan(
		&resp.ID,
		&resp.OrderID,
		&agencyID,
		&resp.Status,
		&created,
		&acceptedAt,
		&completedAt,
	); err != nil {
		return DeliveryResponse{}, err
	}

	if agencyID.Valid {
		s := agencyID.UUID.String()
		resp.AgencyID = &s
	}
	resp.CreatedAt = created
	if acceptedAt.Valid {
		resp.AcceptedAt = &acceptedAt.Time
	}
	if completedAt.Valid {
		resp.CompletedAt = &completedAt.Time
	}

	return resp, nil
}
