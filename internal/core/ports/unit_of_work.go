package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// AllocationRepository returns an AllocationRepository bound to the
	// current transaction started by Begin().
	AllocationRepository() AllocationRepository

	// CheckpointRepository returns a CheckpointRepository bound to the
	// current transaction started by Begin().
	CheckpointRepository() CheckpointRepository

	// ClusterRepository returns a ClusterRepository bound to the current
	// transaction started by Begin().
	ClusterRepository() ClusterRepository

	// RouteRepository returns a RouteRepository bound to the current
	// transaction started by Begin().
	RouteRepository() RouteRepository

	// PricingConfigRepository returns a PricingConfigRepository bound to the
	// current transaction started by Begin().
	PricingConfigRepository() PricingConfigRepository

	// EventLogRepository returns an EventLogRepository bound to the current
	// transaction started by Begin().
	EventLogRepository() EventLogRepository

	// CommitmentRepository returns a CommitmentRepository bound to the
	// current transaction started by Begin().
	CommitmentRepository() CommitmentRepository
}
