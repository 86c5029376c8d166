package pricing

import "strings"

// Role is a customer designation that may carry its own price.
type Role string

const (
	RoleAnonymous     Role = ""
	RoleCustomer      Role = "customer"
	RoleMember        Role = "member"
	RoleSchool        Role = "school"
	RoleShopManager   Role = "shop_manager"
	RoleAdministrator Role = "administrator"
)

// KnownRoles lists every role an account may hold.
func KnownRoles() []Role {
	return []Role{RoleCustomer, RoleMember, RoleSchool, RoleShopManager, RoleAdministrator}
}

// ParseRole normalises s and reports whether it names a known role.
// Unknown roles come back as RoleAnonymous.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range KnownRoles() {
		if r == known {
			return r, true
		}
	}
	return RoleAnonymous, false
}

// CanManagePrices reports whether the role may use admin pricing endpoints.
func (r Role) CanManagePrices() bool {
	return r == RoleAdministrator || r == RoleShopManager
}

// Label is the capitalised role name used in accessible price labels.
func (r Role) Label() string {
	if r == RoleAnonymous {
		return ""
	}
	s := strings.ReplaceAll(string(r), "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

// Viewer is whoever is looking at a price.
type Viewer struct {
	Role Role
}

// Anonymous is a viewer with no account.
var Anonymous = Viewer{}

// ExecutionContext tells callers whether prices are being read for the shop
// front or for catalog management. Admin reads see stored values untouched.
type ExecutionContext int

const (
	Storefront ExecutionContext = iota
	Admin
)

func (c ExecutionContext) String() string {
	if c == Admin {
		return "admin"
	}
	return "storefront"
}
