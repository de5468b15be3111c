// Package kernel contains shared value objects used by every aggregate in the
// marketplace core: UUID identifiers for the actors supplied by the identity
// layer (buyers, sellers, delivery agencies) and geographic coordinates for
// delivery destinations.
//
// All value objects are immutable and constructed through factory functions
// that validate their input; zero values fail Validate.
package kernel
