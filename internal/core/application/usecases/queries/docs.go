// Package queries contains the read side of the CQRS split. Query handlers
// bypass the aggregates and read projection rows straight from the database,
// returning plain response structs shaped for the HTTP layer.
package queries
