// Package kernel provides shared value objects used across the domain model.
// It contains the building blocks that aggregates compose: validated
// identifiers and geographic primitives.
//
// Value objects in this package are immutable, compared by value, and can only
// be created through constructor functions that enforce their invariants.
package kernel
