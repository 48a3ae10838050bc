package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dgiraldo/stockia-api/internal/application/apikey"
	"github.com/dgiraldo/stockia-api/internal/application/auth"
	"github.com/dgiraldo/stockia-api/internal/application/report"
	"github.com/dgiraldo/stockia-api/internal/application/usecase"
	"github.com/dgiraldo/stockia-api/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	UserUC         *usecase.UserUseCase
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	MovementUC     *usecase.MovementUseCase
	NotificationUC *usecase.NotificationUseCase
	SettingUC      *usecase.SettingUseCase
	DashboardUC    *usecase.DashboardUseCase
	ReportUC       *report.UseCase
	APIKeySvc      *apikey.Service
	Auth           *AuthMiddleware
	CookieName     string
	SessionTTL     time.Duration
}

// Router registra las rutas de la API. Cada grupo protegido declara el permiso
// que exige; la resolución de identidad (cookie o API key) la hace RequireAuth.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieName, deps.SessionTTL)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas (cookie de sesión o API key)
	protected := api.Group("/", deps.Auth.RequireAuth())
	protected.Get("/auth/me", authHandler.Me)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", deps.Auth.RequirePermission(authz.PermDashboardView), dashboardHandler.Stats)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", deps.Auth.RequirePermission(authz.PermProductsView), productHandler.List)
	products.Get("/low-stock", deps.Auth.RequirePermission(authz.PermProductsView), productHandler.ListLowStock)
	products.Get("/:id", deps.Auth.RequirePermission(authz.PermProductsView), productHandler.GetByID)
	products.Post("/", deps.Auth.RequirePermission(authz.PermProductsCreate), productHandler.Create)
	products.Put("/:id", deps.Auth.RequirePermission(authz.PermProductsEdit), productHandler.Update)
	products.Delete("/:id", deps.Auth.RequirePermission(authz.PermProductsDelete), productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", deps.Auth.RequirePermission(authz.PermCategoriesView), categoryHandler.List)
	categories.Get("/:id", deps.Auth.RequirePermission(authz.PermCategoriesView), categoryHandler.GetByID)
	categories.Post("/", deps.Auth.RequirePermission(authz.PermCategoriesCreate), categoryHandler.Create)
	categories.Put("/:id", deps.Auth.RequirePermission(authz.PermCategoriesEdit), categoryHandler.Update)
	categories.Delete("/:id", deps.Auth.RequirePermission(authz.PermCategoriesDelete), categoryHandler.Delete)

	// Movements. Crear exige el permiso del tipo concreto, resuelto en el
	// handler previo según el body: aquí basta con poder ver movimientos o
	// crear alguno; el permiso fino se chequea en requireMovementType.
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", deps.Auth.RequirePermission(authz.PermMovementsView), movementHandler.List)
	movements.Get("/:id", deps.Auth.RequirePermission(authz.PermMovementsView), movementHandler.GetByID)
	movements.Post("/", requireMovementType(deps.Auth), movementHandler.Create)

	// Users (reglas de jerarquía en el middleware)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", deps.Auth.RequirePermission(authz.PermUsersView), userHandler.List)
	users.Get("/:id", deps.Auth.RequireUserManagement(), userHandler.GetByID)
	users.Post("/", deps.Auth.RequireAllPermissions(authz.PermUsersView, authz.PermUsersCreate), userHandler.Create)
	users.Put("/:id", deps.Auth.RequireUserManagement(), deps.Auth.RequirePermission(authz.PermUsersEdit), userHandler.Update)
	users.Put("/:id/role", deps.Auth.RequireUserManagement(), deps.Auth.RequirePermission(authz.PermUsersManagePermissions), userHandler.ChangeRole)
	users.Delete("/:id", deps.Auth.RequireUserManagement(), deps.Auth.RequirePermission(authz.PermUsersDelete), userHandler.Delete)

	// Notifications (siempre del propio usuario)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", deps.Auth.RequirePermission(authz.PermNotificationsView), notificationHandler.List)
	notifications.Put("/read-all", deps.Auth.RequirePermission(authz.PermNotificationsManage), notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", deps.Auth.RequirePermission(authz.PermNotificationsManage), notificationHandler.MarkRead)
	notifications.Delete("/:id", deps.Auth.RequirePermission(authz.PermNotificationsManage), notificationHandler.Delete)

	// Settings (las claves system exigen además settings.system, en el handler)
	settings := protected.Group("/settings")
	settingHandler := NewSettingHandler(deps.SettingUC)
	settings.Get("/", deps.Auth.RequirePermission(authz.PermSettingsView), settingHandler.List)
	settings.Get("/:key", deps.Auth.RequirePermission(authz.PermSettingsView), settingHandler.Get)
	settings.Put("/:key", deps.Auth.RequirePermission(authz.PermSettingsEdit), settingHandler.Upsert)
	settings.Delete("/:key", deps.Auth.RequirePermission(authz.PermSettingsEdit), settingHandler.Delete)

	// API keys (solo administración del sistema)
	apikeys := protected.Group("/apikeys", deps.Auth.RequirePermission(authz.PermSettingsSystem))
	apikeyHandler := NewAPIKeyHandler(deps.APIKeySvc)
	apikeys.Get("/", apikeyHandler.List)
	apikeys.Post("/", apikeyHandler.Create)
	apikeys.Get("/:id/reveal", apikeyHandler.Reveal)
	apikeys.Put("/:id/deactivate", apikeyHandler.Deactivate)
	apikeys.Delete("/:id", apikeyHandler.Delete)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/movements", deps.Auth.RequireAllPermissions(authz.PermReportsView, authz.PermReportsExport), reportHandler.MovementsPDF)
}

// requireMovementType exige el permiso fino del tipo de movimiento que llega en
// el body (in, out o adjust). El body se relee en el handler con BodyParser.
func requireMovementType(auth *AuthMiddleware) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var peek struct {
			Type string `json:"type"`
		}
		if err := c.BodyParser(&peek); err != nil {
			return auth.RequirePermission(authz.PermMovementsView)(c)
		}
		var perm authz.Permission
		switch peek.Type {
		case "in":
			perm = authz.PermMovementsCreateIn
		case "out":
			perm = authz.PermMovementsCreateOut
		case "adjust":
			perm = authz.PermMovementsAdjust
		default:
			// Tipo desconocido: cualquier permiso de creación basta para que
			// el handler devuelva el error de validación.
			return auth.RequireAnyPermission(
				authz.PermMovementsCreateIn,
				authz.PermMovementsCreateOut,
				authz.PermMovementsAdjust,
			)(c)
		}
		return auth.RequirePermission(perm)(c)
	}
}
