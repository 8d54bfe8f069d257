package document

import (
	"fmt"

	"lading/internal/pkg/errs"
)

// Role identifies the capacity in which an actor interacts with a bill of lading.
// It is a closed enum; the transition rule table references roles to gate
// which actors may drive a document into a given state.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleShipper is the party issuing the cargo for shipment.
	RoleShipper

	// RoleCarrier is the party transporting the cargo.
	RoleCarrier

	// RoleConsignee is the party receiving the cargo.
	RoleConsignee

	// RoleAdmin is an administrative operator. Admins bypass role checks on
	// transitions but are still subject to field and signature requirements.
	RoleAdmin
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:   "Unknown",
		RoleShipper:   "Shipper",
		RoleCarrier:   "Carrier",
		RoleConsignee: "Consignee",
		RoleAdmin:     "Admin",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleShipper:   "Shipper",
		RoleCarrier:   "Carrier",
		RoleConsignee: "Consignee",
		RoleAdmin:     "Admin",
	}
}

// RoleFromString parses a role name as produced by String.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// AllRoles returns every valid role. The order is unspecified.
func AllRoles() []Role {
	roles := make([]Role, 0, len(getValidRoleStrings()))
	for r := range getValidRoleStrings() {
		roles = append(roles, r)
	}
	return roles
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
