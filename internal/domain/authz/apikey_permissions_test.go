package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dgiraldo/stockia-api/internal/domain/authz"
)

func TestHasAPIKeyPermission_Expansion(t *testing.T) {
	cases := []struct {
		name     string
		keyPerms []authz.APIKeyPermission
		required authz.Permission
		want     bool
	}{
		{"read concede view", []authz.APIKeyPermission{authz.APIKeyProductsRead}, authz.PermProductsView, true},
		{"read no concede delete", []authz.APIKeyPermission{authz.APIKeyProductsRead}, authz.PermProductsDelete, false},
		{"write concede create y edit", []authz.APIKeyPermission{authz.APIKeyProductsWrite}, authz.PermProductsEdit, true},
		{"write no concede view", []authz.APIKeyPermission{authz.APIKeyProductsWrite}, authz.PermProductsView, false},
		{"movements.write concede create_in", []authz.APIKeyPermission{authz.APIKeyMovementsWrite}, authz.PermMovementsCreateIn, true},
		{"movements.write concede adjust", []authz.APIKeyPermission{authz.APIKeyMovementsWrite}, authz.PermMovementsAdjust, true},
		{"reports.read concede export", []authz.APIKeyPermission{authz.APIKeyReportsRead}, authz.PermReportsExport, true},
		{"settings.write no concede settings.system", []authz.APIKeyPermission{authz.APIKeySettingsWrite}, authz.PermSettingsSystem, false},
		{"varios permisos suman", []authz.APIKeyPermission{authz.APIKeyProductsRead, authz.APIKeyMovementsRead}, authz.PermMovementsView, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authz.HasAPIKeyPermission(tc.keyPerms, tc.required))
		})
	}
}

func TestHasAPIKeyPermission_Comodin(t *testing.T) {
	wild := []authz.APIKeyPermission{authz.APIKeyWildcard}
	for _, perm := range authz.AllPermissions() {
		assert.Truef(t, authz.HasAPIKeyPermission(wild, perm), "el comodín debe conceder %s", perm)
	}
}

func TestHasAPIKeyPermission_VaciaYDesconocidos(t *testing.T) {
	assert.False(t, authz.HasAPIKeyPermission(nil, authz.PermProductsView))
	assert.False(t, authz.HasAPIKeyPermission(
		[]authz.APIKeyPermission{"products.everything"}, authz.PermProductsView),
		"permisos desconocidos en la key no conceden nada")
}

func TestValidAPIKeyPermission(t *testing.T) {
	assert.True(t, authz.ValidAPIKeyPermission("*"))
	for _, p := range authz.APIKeyPermissions() {
		assert.Truef(t, authz.ValidAPIKeyPermission(string(p)), "%s", p)
	}
	assert.False(t, authz.ValidAPIKeyPermission("products.view"),
		"el vocabulario fino de roles no es válido para keys")
	assert.False(t, authz.ValidAPIKeyPermission(""))
}

// Todo permiso de API key debe expandirse dentro del catálogo fino.
func TestAPIKeyPermissions_ExpansionDentroDelCatalogo(t *testing.T) {
	catalog := make(map[authz.Permission]bool)
	for _, p := range authz.AllPermissions() {
		catalog[p] = true
	}
	for _, kp := range authz.APIKeyPermissions() {
		granted := false
		for _, p := range authz.AllPermissions() {
			if authz.HasAPIKeyPermission([]authz.APIKeyPermission{kp}, p) {
				granted = true
				assert.Truef(t, catalog[p], "%s expande a un permiso fuera del catálogo: %s", kp, p)
			}
		}
		assert.Truef(t, granted, "%s no concede ningún permiso", kp)
	}
}

func TestPrincipalCan(t *testing.T) {
	session := &authz.Principal{Role: authz.RoleManager, Method: authz.MethodSession}
	assert.True(t, session.Can(authz.PermProductsCreate))
	assert.False(t, session.Can(authz.PermUsersCreate))

	// El rol del dueño no importa en el camino api_key: manda la key.
	key := &authz.Principal{
		Role:           authz.RoleCEO,
		Method:         authz.MethodAPIKey,
		KeyPermissions: []authz.APIKeyPermission{authz.APIKeyProductsRead},
	}
	assert.True(t, key.Can(authz.PermProductsView))
	assert.False(t, key.Can(authz.PermSettingsSystem),
		"una key limitada no hereda los permisos del rol del dueño")

	unknown := &authz.Principal{Role: authz.RoleCEO, Method: authz.AuthMethod("mtls")}
	assert.False(t, unknown.Can(authz.PermProductsView),
		"método de autenticación desconocido no concede nada")
}
