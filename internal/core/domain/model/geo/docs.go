// Package geo provides the geographic service model: clusters of 3-digit ZIP
// prefixes with density tiers and per-pound surcharges, and delivery routes
// that accumulate paid allocations per cluster and drop date.
//
// Key business rules:
//   - A ZIP belongs to the first active cluster whose prefix set contains its
//     first three digits
//   - An unmatched ZIP falls back to the MEDIUM tier surcharge at pricing time
//   - Route volume is maintained by additive increments, never recomputed
//   - Route density = min(100, count / max(volume/100, 1) * 20)
package geo
