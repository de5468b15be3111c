// Package delivery provides the Delivery aggregate: the job record that
// delivery agencies race to claim. A delivery is bound one-to-one to an
// order and never outlives it.
//
// The claim is the only true mutual-exclusion hazard in the system: any
// number of agencies may attempt to claim the same available delivery
// concurrently and exactly one must win. The aggregate enforces the state
// rules; the winner-takes-all guarantee itself is provided by the storage
// adapter's atomic conditional update, never by read-then-write in
// application code.
//
// Invariant: status == available if and only if no agency is bound.
package delivery
