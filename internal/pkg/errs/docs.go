// Package errs provides standardized error types for the marketplace
// coordination core. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package covers the error taxonomy of the service:
//   - ObjectNotFoundError: an entity id does not resolve
//   - ConflictError: an entity exists but is in a non-claimable/locked state
//   - ValueIsInvalidError / ValueIsRequiredError / ValueIsOutOfRangeError:
//     malformed input
//   - SequenceExhaustedError: order-number allocation retries exceeded
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// NotFound, Conflict and validation errors are expected and recoverable;
// handlers translate them to 404/409/400. SequenceExhausted and anything
// unclassified surface as 500.
package errs
