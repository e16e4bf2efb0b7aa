package rbac

import (
	"reflect"
	"testing"
)

func TestCatalogRolesNonEmpty(t *testing.T) {
	c := NewCatalog()
	for _, role := range []Role{RoleAdmin, RoleManager, RoleStaff, RoleViewer} {
		perms, err := c.PermissionsForRole(role)
		if err != nil {
			t.Fatalf("%s: %v", role, err)
		}
		if len(perms) == 0 {
			t.Fatalf("%s: expected non-empty permission set", role)
		}
	}
}

func TestCatalogDeterministic(t *testing.T) {
	c := NewCatalog()
	first, _ := c.PermissionsForRole(RoleManager)
	second, _ := c.PermissionsForRole(RoleManager)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical permission sets across calls")
	}
	// Mutating the returned copy must not leak into the catalog.
	first[0] = Permission("tampered")
	third, _ := c.PermissionsForRole(RoleManager)
	if third[0] == Permission("tampered") {
		t.Fatalf("catalog leaked internal slice")
	}
}

func TestCatalogAdminSuperset(t *testing.T) {
	c := NewCatalog()
	admin, _ := c.PermissionsForRole(RoleAdmin)
	adminSet := make(map[Permission]bool, len(admin))
	for _, p := range admin {
		adminSet[p] = true
	}
	for _, role := range []Role{RoleManager, RoleStaff, RoleViewer} {
		perms, _ := c.PermissionsForRole(role)
		for _, p := range perms {
			if !adminSet[p] {
				t.Fatalf("admin missing %s granted to %s", p, role)
			}
		}
	}
}

func TestCatalogUnknownRole(t *testing.T) {
	c := NewCatalog()
	if _, err := c.PermissionsForRole(Role("ghost")); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestRoleOrDefault(t *testing.T) {
	if got := RoleOrDefault("manager"); got != RoleManager {
		t.Fatalf("expected manager, got %s", got)
	}
	if got := RoleOrDefault("superuser"); got != RoleViewer {
		t.Fatalf("expected viewer fallback, got %s", got)
	}
	if got := RoleOrDefault(""); got != RoleViewer {
		t.Fatalf("expected viewer fallback for empty, got %s", got)
	}
}
