package authz

import "fmt"

// Role is the closed set of capability tags a user can hold. Permission
// checks only ever see these values; anything else is denied.
type Role string

const (
	RoleUser               Role = "user"
	RoleAdmin              Role = "admin"
	RoleDatasetsAdmin      Role = "datasets_admin"
	RoleCybersecurityAdmin Role = "cybersecurity_admin"
	RoleITAdmin            Role = "it_admin"
)

type Domain string

const (
	DomainCybersecurity Domain = "cybersecurity"
	DomainTickets       Domain = "tickets"
	DomainDatasets      Domain = "datasets"
	DomainAdmin         Domain = "admin"
)

type Action string

const (
	ActionView        Action = "view"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionManageUsers Action = "manage-users"
)

func Roles() []Role {
	return []Role{RoleUser, RoleAdmin, RoleDatasetsAdmin, RoleCybersecurityAdmin, RoleITAdmin}
}

func Domains() []Domain {
	return []Domain{DomainCybersecurity, DomainTickets, DomainDatasets, DomainAdmin}
}

func Actions() []Action {
	return []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionManageUsers}
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDatasetsAdmin, RoleCybersecurityAdmin, RoleITAdmin:
		return true
	}
	return false
}

func (d Domain) Valid() bool {
	switch d {
	case DomainCybersecurity, DomainTickets, DomainDatasets, DomainAdmin:
		return true
	}
	return false
}

func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionManageUsers:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func ParseDomain(s string) (Domain, error) {
	d := Domain(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown domain %q", s)
	}
	return d, nil
}

// fullAccess is what a domain admin gets inside its own domain.
var fullAccess = []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete}

// policy is the static permission table. The admin role is handled before the
// lookup and does not appear here. Every tuple not in the table is denied, so
// new roles or domains start with no access until granted explicitly.
var policy = map[Role]map[Domain][]Action{
	RoleUser: {
		DomainCybersecurity: {ActionView},
		DomainTickets:       {ActionView},
		DomainDatasets:      {ActionView},
	},
	RoleDatasetsAdmin: {
		DomainDatasets:      fullAccess,
		DomainCybersecurity: {ActionView},
		DomainTickets:       {ActionView},
	},
	RoleCybersecurityAdmin: {
		DomainCybersecurity: fullAccess,
		DomainTickets:       {ActionView},
		DomainDatasets:      {ActionView},
	},
	RoleITAdmin: {
		DomainTickets:       fullAccess,
		DomainCybersecurity: {ActionView},
		DomainDatasets:      {ActionView},
	},
}

// Can reports whether role may perform action inside domain. It is a pure
// lookup with no side effects: unknown roles, domains, actions or unmapped
// tuples all return false.
func Can(role Role, domain Domain, action Action) bool {
	if !role.Valid() || !domain.Valid() || !action.Valid() {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	grants, ok := policy[role]
	if !ok {
		return false
	}
	for _, a := range grants[domain] {
		if a == action {
			return true
		}
	}
	return false
}
