package account

import (
	"fmt"

	"herdshare/internal/pkg/errs"
)

// Role classifies an authenticated actor for endpoint gating.
//
// Admin is implicitly authorized for every role-gated operation; the other
// roles only satisfy gates that name them.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// Buyer reserves shares and pays for them.
	Buyer

	// Rancher supplies cattle and records compliance checkpoints.
	Rancher

	// Admin operates the platform and passes every role gate.
	Admin

	// Finance has read access to money-facing reports.
	Finance
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "UNKNOWN",
		Buyer:       "BUYER",
		Rancher:     "RANCHER",
		Admin:       "ADMIN",
		Finance:     "FINANCE",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		Buyer:   "BUYER",
		Rancher: "RANCHER",
		Admin:   "ADMIN",
		Finance: "FINANCE",
	}
}

// RoleFromString parses the wire representation of a role ("BUYER", "RANCHER",
// "ADMIN", "FINANCE"). Returns an error for anything else.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks the Role is one of the four valid values.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role, or "UNKNOWN" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Satisfies reports whether the role passes a gate naming the required roles.
// Admin satisfies every gate. An empty gate requires authentication only.
func (r Role) Satisfies(required ...Role) bool {
	if r == Admin {
		return true
	}
	for _, req := range required {
		if r == req {
			return true
		}
	}
	return len(required) == 0
}
