// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the domain aggregates and read optimized projections
// straight from the database.
package queries
