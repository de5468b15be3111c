package ports

import (
	"context"

	"terabia/internal/core/domain/model/order"
)

// OrderEventPublisher pushes order lifecycle events to the message broker.
// Publishing happens after the storage transaction commits; a failed publish
// is logged and dropped, never rolled back into the request.
type OrderEventPublisher interface {
	// PublishOrderChanged emits the current state of the order.
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error
}
