// Package services provides domain services that coordinate logic spanning
// multiple aggregates: the pricing calculator that freezes a price breakdown
// onto a new allocation, and the route planner that resolves geo clusters and
// books paid allocations onto delivery routes.
//
// Domain services here are stateless and side-effect free; persistence and
// transaction concerns belong to the application layer.
package services
