package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"terabia/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const orderColumns = `
	id, order_number, buyer_id, items, subtotal, delivery_fee, total,
	status, payment_status, delivery_address, delivery_city,
	delivery_lat, delivery_lon, agency_id, buyer_notes, created_at`

// GetOrderQueryHandler retrieves a single order row.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or ObjectNotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, query.OrderID()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	return scanOrderRow(rows)
}

// scanOrderRow maps one row of orderColumns into an OrderResponse.
func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var (
		resp     OrderResponse
		buyerID  uuid.UUID
		items    []byte
		agencyID uuid.NullUUID
		lat, lon sql.NullFloat64
		created  time.Time
	)

	if err := rows.Scan(
		&resp.ID,
		&resp.OrderNumber,
		&buyerID,
		&items,
		&resp.Subtotal,
		&resp.DeliveryFee,
		&resp.Total,
		&resp.Status,
		&resp.PaymentStatus,
		&resp.DeliveryAddress,
		&resp.DeliveryCity,
		&lat,
		&lon,
		&agencyID,
		&resp.BuyerNotes,
		&created,
	); err != nil {
		return OrderResponse{}, err
	}

	resp.Items = make([]OrderLineItemResponse, 0)
	if err := json.Unmarshal(items, &resp.Items); err != nil {
		return OrderResponse{}, err
	}

	resp.BuyerID = buyerID.String()
	if agencyID.Valid {
		s := agencyID.UUID.String()
		resp.AgencyID = &s
	}
	if lat.Valid {
		resp.DeliveryLat = &lat.Float64
	}
	if lon.Valid {
		resp.DeliveryLon = &lon.Float64
	}
	resp.CreatedAt = created

	return resp, nil
}
