// Package order provides the Order aggregate of the marketplace core.
//
// An order is created once at checkout and afterwards mutated only through
// status transitions. It carries two orthogonal state machines:
//
//   - Status: pending -> accepted -> in_transit -> delivered, with cancelled
//     reachable from any non-terminal state
//   - PaymentStatus: pending -> success | failed, both terminal
//
// A delivered order may legitimately still have payment_status "pending"
// (cash-on-delivery settlement is asynchronous and external to this core).
//
// Key invariants:
//   - the order number, once assigned, is never reassigned
//   - total == subtotal + delivery_fee at all times
//   - line-item prices are snapshots taken at order time; they never track
//     later catalog price changes
package order
