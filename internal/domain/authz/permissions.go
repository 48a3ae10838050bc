package authz

// Permission es un permiso fino del vocabulario de roles
// (recurso.acción, ej. "products.create"). Enumeración cerrada; nunca se crean
// permisos en runtime. Tipo distinto de APIKeyPermission para que el compilador
// impida comparar vocabularios entre sí por accidente.
type Permission string

// Catálogo completo de permisos.
const (
	PermDashboardView Permission = "dashboard.view"

	PermProductsView   Permission = "products.view"
	PermProductsCreate Permission = "products.create"
	PermProductsEdit   Permission = "products.edit"
	PermProductsDelete Permission = "products.delete"
	PermProductsExport Permission = "products.export"

	PermCategoriesView   Permission = "categories.view"
	PermCategoriesCreate Permission = "categories.create"
	PermCategoriesEdit   Permission = "categories.edit"
	PermCategoriesDelete Permission = "categories.delete"

	PermMovementsView      Permission = "movements.view"
	PermMovementsCreateIn  Permission = "movements.create_in"
	PermMovementsCreateOut Permission = "movements.create_out"
	PermMovementsAdjust    Permission = "movements.adjust"
	PermMovementsExport    Permission = "movements.export"

	PermUsersView              Permission = "users.view"
	PermUsersCreate            Permission = "users.create"
	PermUsersEdit              Permission = "users.edit"
	PermUsersDelete            Permission = "users.delete"
	PermUsersManagePermissions Permission = "users.manage_permissions"

	PermReportsView   Permission = "reports.view"
	PermReportsExport Permission = "reports.export"

	PermNotificationsView   Permission = "notifications.view"
	PermNotificationsManage Permission = "notifications.manage"

	PermSettingsView   Permission = "settings.view"
	PermSettingsEdit   Permission = "settings.edit"
	PermSettingsSystem Permission = "settings.system"
)

// AllPermissions enumera el catálogo completo (para tests y UI).
func AllPermissions() []Permission {
	return []Permission{
		PermDashboardView,
		PermProductsView, PermProductsCreate, PermProductsEdit, PermProductsDelete, PermProductsExport,
		PermCategoriesView, PermCategoriesCreate, PermCategoriesEdit, PermCategoriesDelete,
		PermMovementsView, PermMovementsCreateIn, PermMovementsCreateOut, PermMovementsAdjust, PermMovementsExport,
		PermUsersView, PermUsersCreate, PermUsersEdit, PermUsersDelete, PermUsersManagePermissions,
		PermReportsView, PermReportsExport,
		PermNotificationsView, PermNotificationsManage,
		PermSettingsView, PermSettingsEdit, PermSettingsSystem,
	}
}

// La tabla rol→permisos se construye por composición explícita: cada rol parte
// del conjunto del rol inferior y agrega los suyos. Así el invariante de
// superconjunto (CEO ⊇ ADMIN ⊇ MANAGER ⊇ VENDEDOR) se cumple por construcción
// y no depende de mantener cuatro listas a mano.
var (
	vendedorPerms = []Permission{
		PermDashboardView,
		PermProductsView,
		PermCategoriesView,
		PermMovementsView,
		PermMovementsCreateOut,
		PermNotificationsView,
	}

	managerPerms = append(append([]Permission{}, vendedorPerms...),
		PermProductsCreate,
		PermProductsEdit,
		PermProductsExport,
		PermCategoriesCreate,
		PermCategoriesEdit,
		PermMovementsCreateIn,
		PermMovementsAdjust,
		PermMovementsExport,
		PermReportsView,
		PermReportsExport,
		PermNotificationsManage,
		PermSettingsView,
	)

	adminPerms = append(append([]Permission{}, managerPerms...),
		PermProductsDelete,
		PermCategoriesDelete,
		PermUsersView,
		PermUsersCreate,
		PermUsersEdit,
		PermUsersDelete,
		PermSettingsEdit,
	)

	ceoPerms = append(append([]Permission{}, adminPerms...),
		PermUsersManagePermissions,
		PermSettingsSystem,
	)
)

var rolePermissions = map[Role]map[Permission]struct{}{
	RoleVendedor: permSet(vendedorPerms),
	RoleManager:  permSet(managerPerms),
	RoleAdmin:    permSet(adminPerms),
	RoleCEO:      permSet(ceoPerms),
}

func permSet(perms []Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission indica si el rol tiene el permiso. Rol o permiso desconocido
// devuelve false, nunca error: ante duda se niega el acceso.
func HasPermission(role Role, perm Permission) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// HasAllPermissions indica si el rol tiene todos los permisos dados.
func HasAllPermissions(role Role, perms []Permission) bool {
	for _, p := range perms {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}

// HasAnyPermission indica si el rol tiene al menos uno de los permisos dados.
func HasAnyPermission(role Role, perms []Permission) bool {
	for _, p := range perms {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}

// RolePermissions devuelve una copia del conjunto de permisos del rol.
// Se usa para pintar la UI, no para decidir accesos.
func RolePermissions(role Role) []Permission {
	set, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	perms := make([]Permission, 0, len(set))
	// Iterar el catálogo para dar un orden estable.
	for _, p := range AllPermissions() {
		if _, has := set[p]; has {
			perms = append(perms, p)
		}
	}
	return perms
}

// Secciones de UI y los permisos (cualquiera de ellos) que dan acceso.
var sectionPermissions = map[string][]Permission{
	"dashboard":     {PermDashboardView},
	"products":      {PermProductsView},
	"categories":    {PermCategoriesView},
	"movements":     {PermMovementsView},
	"users":         {PermUsersView},
	"reports":       {PermReportsView},
	"notifications": {PermNotificationsView},
	"settings":      {PermSettingsView, PermSettingsEdit, PermSettingsSystem},
	"apikeys":       {PermSettingsSystem},
}

// CanAccessSection indica si el rol puede ver una sección de la aplicación.
// Sección desconocida devuelve false.
func CanAccessSection(role Role, section string) bool {
	perms, ok := sectionPermissions[section]
	if !ok {
		return false
	}
	return HasAnyPermission(role, perms)
}
