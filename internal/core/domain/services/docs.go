// Package services contains stateless domain services that encode business
// rules spanning more than one aggregate or requiring no aggregate state.
//
// OrderNumberSequencer owns the order-number format rules: the TRB prefix,
// the calendar-day segment, and the zero-padded daily sequence. The atomic
// allocation of the next sequence value is a storage concern and lives in
// the postgres adapter; the service guarantees that whatever value storage
// hands out is rendered and parsed consistently.
package services
