package authz

// AuthMethod distingue cómo se autenticó una petición. El chequeo de permisos
// ramifica de forma exhaustiva sobre este tag: sesión → tabla de roles,
// api_key → permisos propios de la key vía el mapper.
type AuthMethod string

// Métodos de autenticación.
const (
	MethodSession AuthMethod = "session"
	MethodAPIKey  AuthMethod = "api_key"
)

// Principal es el resultado de autenticar una petición. No se persiste; se
// construye por request. En el camino api_key la identidad del usuario dueño de
// la key se usa solo para auditoría: la autorización usa KeyPermissions, nunca
// el rol del dueño.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   Role
	Method AuthMethod

	// Solo para MethodAPIKey.
	APIKeyID       string
	KeyPermissions []APIKeyPermission
}

// Can decide si el principal satisface el permiso requerido, según su método de
// autenticación.
func (p *Principal) Can(required Permission) bool {
	switch p.Method {
	case MethodAPIKey:
		return HasAPIKeyPermission(p.KeyPermissions, required)
	case MethodSession:
		return HasPermission(p.Role, required)
	}
	return false
}
