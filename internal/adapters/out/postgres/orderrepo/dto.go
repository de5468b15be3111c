// Package orderrepo provides data transfer objects and mapping functions for
// order persistence, including the per-day counter backing order-number
// allocation.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database row for an order aggregate. Line items are
// stored denormalized as a JSON document: they are immutable price snapshots,
// never queried relationally except by the stats aggregation which unpacks
// the document itself.
type OrderDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	OrderNumber   string    `gorm:"uniqueIndex;size:32;not null"`
	BuyerID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Items         LineItems `gorm:"type:jsonb;not null"`
	Subtotal      float64   `gorm:"not null"`
	DeliveryFee   float64   `gorm:"not null"`
	Total         float64   `gorm:"not null"`
	Status        string    `gorm:"size:20;index;not null"`
	PaymentStatus string    `gorm:"size:20;not null"`

	DeliveryAddress string `gorm:"not null"`
	DeliveryCity    string `gorm:"not null"`
	DeliveryLat     *float64
	DeliveryLon     *float64

	AgencyID   *uuid.UUID `gorm:"type:uuid;index"`
	BuyerNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CounterDTO is one row of the per-day order-number counter. The row for a
// day is created on first allocation and only ever moves forward, so sequence
// values are never reused even when the orders that drew them are cancelled.
type CounterDTO struct {
	Day       string `gorm:"primaryKey;size:8"`
	LastValue int64  `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "order_number_counters".
func (CounterDTO) TableName() string {
	return "order_number_counters"
}

// LineItemDTO is the JSON shape of one stored line item.
type LineItemDTO struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// LineItems serializes the item list to a single JSON column.
type LineItems []LineItemDTO

// Value implements driver.Valuer, rendering the items as JSON.
func (li LineItems) Value() (driver.Value, error) {
	return json.Marshal(li)
}

// Scan implements sql.Scanner, accepting both text and binary JSON columns.
func (li *LineItems) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, li)
	case string:
		return json.Unmarshal([]byte(v), li)
	default:
		return fmt.Errorf("cannot scan %T into LineItems", value)
	}
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	domainItems := aggregate.Items()
	items := make(LineItems, 0, len(domainItems))
	for _, item := range domainItems {
		items = append(items, LineItemDTO{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	var agencyID *uuid.UUID
	if id := aggregate.Agency(); id != nil {
		raw := id.Google()
		agencyID = &raw
	}

	var lat, lon *float64
	if coords := aggregate.DeliveryCoords(); coords != nil {
		latitude, longitude := coords.Latitude(), coords.Longitude()
		lat, lon = &latitude, &longitude
	}

	return OrderDTO{
		ID:              aggregate.ID(),
		OrderNumber:     aggregate.OrderNumber(),
		BuyerID:         aggregate.BuyerID().Google(),
		Items:           items,
		Subtotal:        aggregate.Subtotal(),
		DeliveryFee:     aggregate.DeliveryFee(),
		Total:           aggregate.Total(),
		Status:          aggregate.Status().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		DeliveryCity:    aggregate.DeliveryCity(),
		DeliveryLat:     lat,
		DeliveryLon:     lon,
		AgencyID:        agencyID,
		BuyerNotes:      aggregate.BuyerNotes(),
	}
}

// toDomain converts a database row back to an order aggregate, re-running all
// domain invariants via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	buyerID, err := kernel.UUIDFromGoogle(dto.BuyerID)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewLineItem(itemDTO.ProductID, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var coords *kernel.Coords
	if dto.DeliveryLat != nil && dto.DeliveryLon != nil {
		c, coordsErr := kernel.NewCoords(*dto.DeliveryLat, *dto.DeliveryLon)
		if coordsErr != nil {
			return nil, coordsErr
		}
		coords = &c
	}

	var agencyID *kernel.UUID
	if dto.AgencyID != nil {
		id, agencyErr := kernel.UUIDFromGoogle(*dto.AgencyID)
		if agencyErr != nil {
			return nil, agencyErr
		}
		agencyID = &id
	}

	return order.RestoreOrder(
		dto.ID,
		dto.OrderNumber,
		buyerID,
		items,
		dto.Subtotal,
		dto.DeliveryFee,
		dto.Total,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		dto.DeliveryAddress,
		dto.DeliveryCity,
		coords,
		agencyID,
		dto.BuyerNotes,
	)
}
