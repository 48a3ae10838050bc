package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgiraldo/stockia-api/internal/domain/authz"
)

// Cada rol superior debe incluir todos los permisos del rol inmediatamente
// inferior (VENDEDOR ⊆ MANAGER ⊆ ADMIN ⊆ CEO).
func TestRolePermissions_JerarquiaEsSuperset(t *testing.T) {
	order := []authz.Role{authz.RoleVendedor, authz.RoleManager, authz.RoleAdmin, authz.RoleCEO}
	for i := 1; i < len(order); i++ {
		lower, upper := order[i-1], order[i]
		for _, perm := range authz.RolePermissions(lower) {
			assert.Truef(t, authz.HasPermission(upper, perm),
				"%s debe incluir el permiso %s de %s", upper, perm, lower)
		}
	}
}

func TestRolePermissions_OrdenEstable(t *testing.T) {
	first := authz.RolePermissions(authz.RoleManager)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, authz.RolePermissions(authz.RoleManager),
			"el listado de permisos debe ser determinista entre llamadas")
	}
}

func TestHasPermission_PorRol(t *testing.T) {
	cases := []struct {
		role authz.Role
		perm authz.Permission
		want bool
	}{
		{authz.RoleVendedor, authz.PermProductsView, true},
		{authz.RoleVendedor, authz.PermMovementsCreateOut, true},
		{authz.RoleVendedor, authz.PermProductsDelete, false},
		{authz.RoleVendedor, authz.PermUsersView, false},
		{authz.RoleManager, authz.PermProductsCreate, true},
		{authz.RoleManager, authz.PermMovementsAdjust, true},
		{authz.RoleManager, authz.PermUsersCreate, false},
		{authz.RoleAdmin, authz.PermUsersDelete, true},
		{authz.RoleAdmin, authz.PermSettingsSystem, false},
		{authz.RoleCEO, authz.PermSettingsSystem, true},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, authz.HasPermission(tc.role, tc.perm),
			"%s / %s", tc.role, tc.perm)
	}
}

// settings.system es exclusivo del CEO.
func TestHasPermission_SettingsSystemSoloCEO(t *testing.T) {
	for _, role := range authz.Roles() {
		want := role == authz.RoleCEO
		assert.Equalf(t, want, authz.HasPermission(role, authz.PermSettingsSystem), "rol %s", role)
	}
}

func TestHasPermission_RolDesconocido(t *testing.T) {
	assert.False(t, authz.HasPermission(authz.Role("SUPERADMIN"), authz.PermProductsView),
		"un rol desconocido no tiene ningún permiso")
	assert.Empty(t, authz.RolePermissions(authz.Role("SUPERADMIN")))
}

func TestHasPermission_PermisoDesconocido(t *testing.T) {
	assert.False(t, authz.HasPermission(authz.RoleCEO, authz.Permission("products.fly")),
		"un permiso fuera del catálogo se niega incluso para CEO")
}

func TestHasAllPermissions(t *testing.T) {
	assert.True(t, authz.HasAllPermissions(authz.RoleAdmin,
		[]authz.Permission{authz.PermUsersView, authz.PermUsersCreate}))
	assert.False(t, authz.HasAllPermissions(authz.RoleAdmin,
		[]authz.Permission{authz.PermUsersView, authz.PermSettingsSystem}),
		"basta un permiso ausente para negar el conjunto")
	assert.True(t, authz.HasAllPermissions(authz.RoleVendedor, nil),
		"conjunto vacío siempre se cumple")
}

func TestHasAnyPermission(t *testing.T) {
	assert.True(t, authz.HasAnyPermission(authz.RoleVendedor,
		[]authz.Permission{authz.PermUsersDelete, authz.PermProductsView}))
	assert.False(t, authz.HasAnyPermission(authz.RoleVendedor,
		[]authz.Permission{authz.PermUsersDelete, authz.PermSettingsSystem}))
	assert.False(t, authz.HasAnyPermission(authz.RoleCEO, nil),
		"sin candidatos no hay permiso que conceder")
}

func TestCanAccessSection(t *testing.T) {
	assert.True(t, authz.CanAccessSection(authz.RoleVendedor, "products"))
	assert.False(t, authz.CanAccessSection(authz.RoleVendedor, "users"))
	assert.True(t, authz.CanAccessSection(authz.RoleAdmin, "users"))
	assert.False(t, authz.CanAccessSection(authz.RoleAdmin, "apikeys"))
	assert.True(t, authz.CanAccessSection(authz.RoleCEO, "apikeys"))
	assert.False(t, authz.CanAccessSection(authz.RoleCEO, "warehouse"),
		"sección desconocida se niega para todos")
}

func TestAllPermissions_SinDuplicados(t *testing.T) {
	all := authz.AllPermissions()
	require.NotEmpty(t, all)
	seen := make(map[authz.Permission]bool, len(all))
	for _, p := range all {
		assert.Falsef(t, seen[p], "permiso duplicado en el catálogo: %s", p)
		seen[p] = true
	}
	// El CEO tiene el catálogo completo.
	for _, p := range all {
		assert.Truef(t, authz.HasPermission(authz.RoleCEO, p), "CEO debe tener %s", p)
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range authz.Roles() {
		assert.True(t, authz.ValidRole(string(role)))
	}
	assert.False(t, authz.ValidRole("vendedor"), "los roles son sensibles a mayúsculas")
	assert.False(t, authz.ValidRole(""))
}
