// Package team defines the three fixed teams and the permission set each one
// carries. Permission sets are flat, explicitly enumerated lists, there is no
// runtime composition.
package team

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies one of the fixed teams.
type Kind int

const (
	KindManagement Kind = iota
	KindSales
	KindSupport
)

var kindNames = []string{"Management team", "Sales team", "Support team"}

func (k Kind) String() string {
	if k < KindManagement || k > KindSupport {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// ID is the fixed row id the team is seeded with in the teams table.
func (k Kind) ID() int {
	return int(k) + 1
}

// ParseKind creates a Kind from a team name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(name, n) {
			return Kind(i), nil
		}
	}
	return Kind(-1), fmt.Errorf("%q is not a known team", name)
}

// KindFromID maps a seeded teams table row id back to its Kind.
func KindFromID(id int) (Kind, error) {
	k := Kind(id - 1)
	if k < KindManagement || k > KindSupport {
		return Kind(-1), fmt.Errorf("%d is not a known team id", id)
	}
	return k, nil
}

// Kinds lists every team in seeding order.
func Kinds() []Kind {
	return []Kind{KindManagement, KindSales, KindSupport}
}

// Permission names a capability checked before an operation executes.
type Permission string

const (
	PermListContracts Permission = "list_contracts"
	PermReadContract  Permission = "read_contract"
	PermListEvents    Permission = "list_events"
	PermReadEvent     Permission = "read_event"
	PermListCustomers Permission = "list_customers"
	PermReadCustomer  Permission = "read_customer"

	PermCreateUser Permission = "create_user"
	PermReadUser   Permission = "read_user"
	PermListUsers  Permission = "list_users"
	PermDeleteUser Permission = "delete_user"
	PermUpdateUser Permission = "update_user"

	PermCreateCustomer        Permission = "create_customer"
	PermUpdateCustomer        Permission = "update_customer"
	PermUpdateOnlyMyCustomers Permission = "update_only_my_customers"
	PermDeleteCustomer        Permission = "delete_customer"

	PermCreateContract        Permission = "create_contract"
	PermUpdateContract        Permission = "update_contract"
	PermUpdateOnlyMyContracts Permission = "update_only_my_contracts"
	PermDeleteContract        Permission = "delete_contract"

	PermCreateEvent        Permission = "create_event"
	PermUpdateEvent        Permission = "update_event"
	PermUpdateOnlyMyEvents Permission = "update_only_my_events"
	PermUpdateEventSupport Permission = "update_event_support"
	PermDeleteEvent        Permission = "delete_event"
)

// base is shared by every team.
var base = []Permission{
	PermListContracts,
	PermReadContract,
	PermListEvents,
	PermReadEvent,
	PermListCustomers,
	PermReadCustomer,
}

var permissions = map[Kind][]Permission{
	KindManagement: append(slices.Clone(base),
		PermCreateUser,
		PermReadUser,
		PermListUsers,
		PermDeleteUser,
		PermUpdateUser,
		PermCreateContract,
		PermUpdateContract,
		PermUpdateEvent,
		PermUpdateEventSupport,
	),
	KindSales: append(slices.Clone(base),
		PermCreateCustomer,
		PermUpdateCustomer,
		PermUpdateOnlyMyCustomers,
		PermUpdateContract,
		PermUpdateOnlyMyContracts,
		PermCreateEvent,
	),
	KindSupport: append(slices.Clone(base),
		PermUpdateEvent,
		PermUpdateOnlyMyEvents,
	),
}

// PermissionsFor returns the fixed permission set of a team. An unknown kind
// gets an empty set, that is a configuration error on the caller side, not a
// runtime failure.
func PermissionsFor(k Kind) []Permission {
	return slices.Clone(permissions[k])
}

// Has reports whether the team carries the permission.
func (k Kind) Has(p Permission) bool {
	return slices.Contains(permissions[k], p)
}
