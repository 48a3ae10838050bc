// Package authz define el modelo de permisos de la aplicación: roles, el
// catálogo estático rol→permisos y el vocabulario (más grueso) de permisos de
// API keys junto con su tabla de traducción. Todo es data fija en tiempo de
// compilación; no hay reglas dinámicas ni estado mutable.
package authz

// Role es el rol de un usuario. Conjunto cerrado; la jerarquía
// VENDEDOR < MANAGER < ADMIN < CEO no se modela como número, las reglas que la
// necesitan comparan roles de forma explícita.
type Role string

// Roles válidos.
const (
	RoleVendedor Role = "VENDEDOR"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
	RoleCEO      Role = "CEO"
)

// ValidRole indica si s corresponde a un rol conocido.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleVendedor, RoleManager, RoleAdmin, RoleCEO:
		return true
	}
	return false
}

// Roles devuelve todos los roles en orden de privilegio ascendente.
func Roles() []Role {
	return []Role{RoleVendedor, RoleManager, RoleAdmin, RoleCEO}
}
