package order

import (
	"errors"
	"fmt"
	"math"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderNumberAlreadyAssigned is returned when attempting to overwrite
	// an order number. Order numbers are immutable once set.
	ErrOrderNumberAlreadyAssigned = errors.New("order number is immutable once assigned")
)

// totalTolerance absorbs float rounding when checking total == subtotal + fee.
const totalTolerance = 1e-6

// Order is the aggregate root for a buyer's purchase. It is created once at
// checkout, mutated only by status and payment transitions, and never deleted
// except by administrative action.
//
// Invariants:
//   - at least one line item; prices are immutable snapshots
//   - total == subtotal + delivery fee
//   - the order number, once assigned, never changes
//   - a bound delivery agency implies status accepted or later
type Order struct {
	id          int64
	orderNumber string
	buyerID     kernel.UUID

	items       []LineItem
	subtotal    float64
	deliveryFee float64
	total       float64

	status        Status
	paymentStatus PaymentStatus

	deliveryAddress string
	deliveryCity    string
	deliveryCoords  *kernel.Coords

	agencyID   *kernel.UUID
	buyerNotes string

	isConstructed bool
}

// NewOrder creates an order at checkout. The subtotal is computed from the
// line items, the total from subtotal plus delivery fee. The order starts in
// status pending with payment pending; the storage id and order number are
// assigned later by the persistence layer, inside the same transaction as the
// insert.
func NewOrder(
	buyerID kernel.UUID,
	items []LineItem,
	deliveryFee float64,
	deliveryAddress string,
	deliveryCity string,
	deliveryCoords *kernel.Coords,
	buyerNotes string,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentPending,
		buyerNotes:    buyerNotes,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setBuyerID(buyerID),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee),
		o.setDestination(deliveryAddress, deliveryCity, deliveryCoords),
	); err != nil {
		return nil, err
	}

	o.subtotal = sumItems(o.items)
	o.total = o.subtotal + o.deliveryFee

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. All invariants are
// re-checked so corrupted rows fail loudly instead of flowing downstream.
func RestoreOrder(
	id int64,
	orderNumber string,
	buyerID kernel.UUID,
	items []LineItem,
	subtotal float64,
	deliveryFee float64,
	total float64,
	status Status,
	paymentStatus PaymentStatus,
	deliveryAddress string,
	deliveryCity string,
	deliveryCoords *kernel.Coords,
	agencyID *kernel.UUID,
	buyerNotes string,
) (*Order, error) {
	o := &Order{
		id:            id,
		orderNumber:   orderNumber,
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		total:         total,
		buyerNotes:    buyerNotes,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setBuyerID(buyerID),
		o.setItems(items),
		o.setDestination(deliveryAddress, deliveryCity, deliveryCoords),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status
	o.paymentStatus = paymentStatus

	if agencyID != nil {
		if err := agencyID.Validate(); err != nil {
			return nil, err
		}
		bound := *agencyID
		o.agencyID = &bound
	}

	if math.Abs(o.total-(o.subtotal+o.deliveryFee)) > totalTolerance {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("%g is not subtotal %g plus delivery fee %g", o.total, o.subtotal, o.deliveryFee),
		)
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by storage id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

// ID returns the storage-assigned surrogate key, zero before first persist.
func (o *Order) ID() int64 {
	return o.id
}

// OrderNumber returns the human-readable order number, empty until allocated.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// BuyerID returns the purchasing buyer's identifier.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// Items returns a copy of the line-item list in order.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Subtotal returns the sum of all line totals.
func (o *Order) Subtotal() float64 {
	return o.subtotal
}

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() float64 {
	return o.deliveryFee
}

// Total returns subtotal plus delivery fee.
func (o *Order) Total() float64 {
	return o.total
}

// Status returns the current delivery lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment settlement state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// DeliveryAddress returns the destination street address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryCity returns the destination city.
func (o *Order) DeliveryCity() string {
	return o.deliveryCity
}

// DeliveryCoords returns the optional destination coordinates, nil if absent.
func (o *Order) DeliveryCoords() *kernel.Coords {
	return o.deliveryCoords
}

// Agency returns the bound delivery agency id, nil while unassigned.
// Mirrors the agency bound on the order's Delivery.
func (o *Order) Agency() *kernel.UUID {
	return o.agencyID
}

// BuyerNotes returns free-form notes left by the buyer at checkout.
func (o *Order) BuyerNotes() string {
	return o.buyerNotes
}

// MarkPersisted records the storage-assigned id after the initial insert.
// Calling it on an already-persisted order is a programming error.
func (o *Order) MarkPersisted(id int64) error {
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already persisted with id %d", o.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid storage id", id))
	}
	o.id = id
	return nil
}

// AssignNumber sets the order number exactly once. The persistence layer
// calls this inside the allocation transaction; reassignment is refused.
func (o *Order) AssignNumber(number string) error {
	if o.orderNumber != "" {
		return ErrOrderNumberAlreadyAssigned
	}
	if number == "" {
		return errs.NewValueIsRequiredError("order_number")
	}
	o.orderNumber = number
	return nil
}

// BindAgency binds the winning delivery agency and moves the order to
// accepted. Used by the delivery claim flow after the conditional update on
// the Delivery row succeeds, within the same transaction.
func (o *Order) BindAgency(agencyID kernel.UUID) error {
	if err := agencyID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(StatusAccepted)
	if err != nil {
		return err
	}

	o.status = newStatus
	bound := agencyID
	o.agencyID = &bound
	return nil
}

// ChangeStatus applies a delivery lifecycle transition.
func (o *Order) ChangeStatus(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// ChangePaymentStatus applies a payment transition. The two state machines
// are orthogonal: payment may settle before or after delivery completes.
func (o *Order) ChangePaymentStatus(next PaymentStatus) error {
	newStatus, err := o.paymentStatus.TransitionTo(next)
	if err != nil {
		return err
	}
	o.paymentStatus = newStatus
	return nil
}

// ChangeDestination updates the delivery destination. Only allowed before the
// order is on the road.
func (o *Order) ChangeDestination(address, city string, coords *kernel.Coords) error {
	if o.status != StatusPending && o.status != StatusAccepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot change destination of an order in status %s", o.status),
		)
	}
	return o.setDestination(address, city, coords)
}

func (o *Order) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	o.buyerID = buyerID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery_fee", fmt.Errorf("%g is negative", fee))
	}
	o.deliveryFee = fee
	return nil
}

func (o *Order) setDestination(address, city string, coords *kernel.Coords) error {
	if address == "" {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	if city == "" {
		return errs.NewValueIsRequiredError("delivery_city")
	}
	if coords != nil {
		if err := coords.Validate(); err != nil {
			return err
		}
		c := *coords
		o.deliveryCoords = &c
	} else {
		o.deliveryCoords = nil
	}
	o.deliveryAddress = address
	o.deliveryCity = city
	return nil
}

func sumItems(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Total()
	}
	return sum
}
