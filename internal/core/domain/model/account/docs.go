// Package account provides the authenticated actor model and the role
// hierarchy used for endpoint authorization.
//
// The package includes:
//   - Actor: The authenticated caller with identity, email, and role
//   - Role: The BUYER, RANCHER, ADMIN, FINANCE role set
//
// Key business rules:
//   - ADMIN satisfies every role gate
//   - An empty role gate requires authentication only
package account
