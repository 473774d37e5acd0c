package enums

import "fmt"

// Role identifies the two user populations the gateway gates between.
type Role string

const (
	// RoleCliente browses the catalog and places orders.
	RoleCliente Role = "Cliente"
	// RolePOS manages inventory, products, restaurants and order status.
	RolePOS Role = "POS"
)

var validRoles = []Role{
	RoleCliente,
	RolePOS,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
