// Package rbac defines the closed role and permission sets for the admin
// portal and the request guards that enforce them.
package rbac

import "fmt"

// Role is a named bundle of default permissions assigned to a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleViewer  Role = "viewer"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleViewer:
		return true
	}
	return false
}

// RoleOrDefault returns the parsed role, falling back to viewer for any
// value outside the closed set.
func RoleOrDefault(raw string) Role {
	r := Role(raw)
	if r.Valid() {
		return r
	}
	return RoleViewer
}

// Permission is an atomic capability token of the form resource:verb.
type Permission string

const (
	PermUsersRead   Permission = "users:read"
	PermUsersWrite  Permission = "users:write"
	PermUsersDelete Permission = "users:delete"

	PermServicesRead  Permission = "services:read"
	PermServicesWrite Permission = "services:write"

	PermTrainingsRead  Permission = "trainings:read"
	PermTrainingsWrite Permission = "trainings:write"

	PermApplicationsRead   Permission = "applications:read"
	PermApplicationsWrite  Permission = "applications:write"
	PermApplicationsExport Permission = "applications:export"

	PermBookingsRead  Permission = "bookings:read"
	PermBookingsWrite Permission = "bookings:write"

	PermAnalyticsRead Permission = "analytics:read"

	PermTemplatesRead  Permission = "templates:read"
	PermTemplatesWrite Permission = "templates:write"

	PermResourcesRead  Permission = "resources:read"
	PermResourcesWrite Permission = "resources:write"

	PermAuditRead Permission = "audit:read"
)

// Catalog is the immutable role→permission mapping. It is built once at
// process start and injected wherever permission resolution is needed.
type Catalog struct {
	grants map[Role][]Permission
}

// NewCatalog constructs the fixed catalog. The admin set is a superset of
// every other role's set.
func NewCatalog() *Catalog {
	return &Catalog{grants: map[Role][]Permission{
		RoleAdmin: {
			PermUsersRead, PermUsersWrite, PermUsersDelete,
			PermServicesRead, PermServicesWrite,
			PermTrainingsRead, PermTrainingsWrite,
			PermApplicationsRead, PermApplicationsWrite, PermApplicationsExport,
			PermBookingsRead, PermBookingsWrite,
			PermAnalyticsRead,
			PermTemplatesRead, PermTemplatesWrite,
			PermResourcesRead, PermResourcesWrite,
			PermAuditRead,
		},
		RoleManager: {
			PermUsersRead,
			PermServicesRead, PermServicesWrite,
			PermTrainingsRead, PermTrainingsWrite,
			PermApplicationsRead, PermApplicationsWrite,
			PermBookingsRead,
			PermAnalyticsRead,
			PermTemplatesRead,
			PermResourcesRead, PermResourcesWrite,
			PermAuditRead,
		},
		RoleStaff: {
			PermServicesRead,
			PermTrainingsRead,
			PermApplicationsRead,
			PermBookingsRead,
			PermResourcesRead,
		},
		RoleViewer: {
			PermAnalyticsRead,
		},
	}}
}

// PermissionsForRole returns a copy of the permission set for the role.
// An unknown role is a configuration error; the Role type is closed, so
// callers hitting this path have bypassed RoleOrDefault.
func (c *Catalog) PermissionsForRole(r Role) ([]Permission, error) {
	perms, ok := c.grants[r]
	if !ok {
		return nil, fmt.Errorf("rbac: unknown role %q", r)
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out, nil
}

// Strings converts a permission slice to plain strings for session storage.
func Strings(perms []Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
