// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"herdshare/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// AllocationRepoFactory provides access to the allocation repository within a transaction.
	AllocationRepoFactory interface {
		AllocationRepository() ports.AllocationRepository
	}

	// CheckpointRepoFactory provides access to the checkpoint repository within a transaction.
	CheckpointRepoFactory interface {
		CheckpointRepository() ports.CheckpointRepository
	}

	// ClusterRepoFactory provides access to the cluster repository within a transaction.
	ClusterRepoFactory interface {
		ClusterRepository() ports.ClusterRepository
	}

	// RouteRepoFactory provides access to the route repository within a transaction.
	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	// PricingRepoFactory provides access to the pricing config repository within a transaction.
	PricingRepoFactory interface {
		PricingConfigRepository() ports.PricingConfigRepository
	}

	// EventLogRepoFactory provides access to the event log repository within a transaction.
	EventLogRepoFactory interface {
		EventLogRepository() ports.EventLogRepository
	}

	// CommitmentRepoFactory provides access to the commitment repository within a transaction.
	CommitmentRepoFactory interface {
		CommitmentRepository() ports.CommitmentRepository
	}

	// CreateAllocationUoW manages transactions for allocation creation, which
	// reads clusters and pricing configs and writes the allocation plus its
	// audit entry atomically.
	CreateAllocationUoW interface {
		TxManager
		AllocationRepoFactory
		ClusterRepoFactory
		PricingRepoFactory
		EventLogRepoFactory
	}

	// CreateAllocationUoWFactory creates unit of work instances for allocation creation.
	CreateAllocationUoWFactory interface {
		Create() CreateAllocationUoW
	}

	// AllocationUoW manages transactions for operations touching one
	// allocation and its audit trail.
	AllocationUoW interface {
		TxManager
		AllocationRepoFactory
		EventLogRepoFactory
	}

	// AllocationUoWFactory creates unit of work instances for allocation updates.
	AllocationUoWFactory interface {
		Create() AllocationUoW
	}

	// CheckpointUoW manages transactions for compliance checkpoint recording.
	CheckpointUoW interface {
		TxManager
		AllocationRepoFactory
		CheckpointRepoFactory
		EventLogRepoFactory
	}

	// CheckpointUoWFactory creates unit of work instances for checkpoint recording.
	CheckpointUoWFactory interface {
		Create() CheckpointUoW
	}

	// RouteUoW manages transactions for route assignment, which reads
	// clusters, finds or creates the route, increments its volume, and
	// updates the allocation atomically.
	RouteUoW interface {
		TxManager
		AllocationRepoFactory
		ClusterRepoFactory
		RouteRepoFactory
		EventLogRepoFactory
	}

	// RouteUoWFactory creates unit of work instances for route assignment.
	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// RouteDensityUoW manages transactions for the density refresh job.
	RouteDensityUoW interface {
		TxManager
		RouteRepoFactory
	}

	// RouteDensityUoWFactory creates unit of work instances for density refresh.
	RouteDensityUoWFactory interface {
		Create() RouteDensityUoW
	}

	// CommitmentUoW manages transactions for supply commitment operations.
	CommitmentUoW interface {
		TxManager
		CommitmentRepoFactory
		EventLogRepoFactory
	}

	// CommitmentUoWFactory creates unit of work instances for commitment operations.
	CommitmentUoWFactory interface {
		Create() CommitmentUoW
	}
)
