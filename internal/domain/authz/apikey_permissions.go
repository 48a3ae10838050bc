package authz

// APIKeyPermission es un permiso del vocabulario de API keys. Es deliberadamente
// más grueso que el de roles: una integración externa pide "escritura de
// productos", no cada acción fina. El comodín "*" concede todo.
type APIKeyPermission string

// Permisos válidos para API keys.
const (
	APIKeyWildcard APIKeyPermission = "*"

	APIKeyProductsRead   APIKeyPermission = "products.read"
	APIKeyProductsWrite  APIKeyPermission = "products.write"
	APIKeyProductsDelete APIKeyPermission = "products.delete"

	APIKeyCategoriesRead  APIKeyPermission = "categories.read"
	APIKeyCategoriesWrite APIKeyPermission = "categories.write"

	APIKeyMovementsRead  APIKeyPermission = "movements.read"
	APIKeyMovementsWrite APIKeyPermission = "movements.write"

	APIKeyUsersRead   APIKeyPermission = "users.read"
	APIKeyUsersWrite  APIKeyPermission = "users.write"
	APIKeyUsersDelete APIKeyPermission = "users.delete"

	APIKeyReportsRead APIKeyPermission = "reports.read"

	APIKeySettingsRead  APIKeyPermission = "settings.read"
	APIKeySettingsWrite APIKeyPermission = "settings.write"
)

// Tabla estática de traducción: cada permiso de API key se expande a los
// permisos finos de rol que satisface. El comodín no se expande aquí, se trata
// como caso especial en HasAPIKeyPermission.
var apiKeyPermissionMap = map[APIKeyPermission][]Permission{
	APIKeyProductsRead:   {PermProductsView},
	APIKeyProductsWrite:  {PermProductsCreate, PermProductsEdit},
	APIKeyProductsDelete: {PermProductsDelete},

	APIKeyCategoriesRead:  {PermCategoriesView},
	APIKeyCategoriesWrite: {PermCategoriesCreate, PermCategoriesEdit},

	APIKeyMovementsRead:  {PermMovementsView},
	APIKeyMovementsWrite: {PermMovementsCreateIn, PermMovementsCreateOut, PermMovementsAdjust},

	APIKeyUsersRead:   {PermUsersView},
	APIKeyUsersWrite:  {PermUsersCreate, PermUsersEdit},
	APIKeyUsersDelete: {PermUsersDelete},

	APIKeyReportsRead: {PermReportsView, PermReportsExport},

	APIKeySettingsRead:  {PermSettingsView},
	APIKeySettingsWrite: {PermSettingsEdit},
}

// ValidAPIKeyPermission indica si s es un permiso de API key conocido
// (incluido el comodín).
func ValidAPIKeyPermission(s string) bool {
	if APIKeyPermission(s) == APIKeyWildcard {
		return true
	}
	_, ok := apiKeyPermissionMap[APIKeyPermission(s)]
	return ok
}

// APIKeyPermissions enumera los permisos de API key disponibles (sin comodín).
func APIKeyPermissions() []APIKeyPermission {
	return []APIKeyPermission{
		APIKeyProductsRead, APIKeyProductsWrite, APIKeyProductsDelete,
		APIKeyCategoriesRead, APIKeyCategoriesWrite,
		APIKeyMovementsRead, APIKeyMovementsWrite,
		APIKeyUsersRead, APIKeyUsersWrite, APIKeyUsersDelete,
		APIKeyReportsRead,
		APIKeySettingsRead, APIKeySettingsWrite,
	}
}

// HasAPIKeyPermission indica si el conjunto de permisos de una key satisface el
// permiso fino requerido: true si la key tiene "*", o si alguno de sus permisos
// expandido por la tabla incluye required. Permisos desconocidos en la key se
// ignoran (no conceden nada).
func HasAPIKeyPermission(keyPerms []APIKeyPermission, required Permission) bool {
	for _, kp := range keyPerms {
		if kp == APIKeyWildcard {
			return true
		}
		for _, p := range apiKeyPermissionMap[kp] {
			if p == required {
				return true
			}
		}
	}
	return false
}
