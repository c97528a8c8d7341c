// Package allocation provides domain entities and business logic for
// beef-share reservations. It implements the AllocationIntent aggregate root
// with lifecycle management, frozen pricing, and fulfillment assignments.
//
// The package includes:
//   - AllocationIntent: The aggregate root owning identity, lifecycle, pricing, and assignments
//   - Status: A state machine enforcing the fixed status adjacency table
//   - ProductPlan: The share-size catalog with default weight estimates
//   - PricingSnapshot: The itemized price breakdown frozen at creation time
//
// Key business rules:
//   - Status transitions are limited to the adjacency table; rejections carry the legal alternatives
//   - The pricing snapshot is write-once and never recomputed after checkout begins
//   - Completing an allocation stamps the delivery timestamp
//   - Reverting to Draft clears the active checkout session
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package allocation
