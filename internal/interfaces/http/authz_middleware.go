package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/domain/authz"
)

// Los middlewares de autorización deben usarse DESPUÉS de RequireAuth: leen el
// principal de Locals y deciden con la tabla de roles (sesión) o con los
// permisos propios de la key vía el mapper (API key). 401 y 403 son siempre
// estados distintos: "inicia sesión" vs "no tienes acceso".

// RequirePermission exige un permiso concreto.
func (m *AuthMiddleware) RequirePermission(perm authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
		}
		if !p.Can(perm) {
			return forbidden(c, p, dto.ForbiddenResponse{
				RequiredPermission: string(perm),
			})
		}
		return c.Next()
	}
}

// RequireAllPermissions exige todos los permisos dados. La denegación lista
// exactamente cuáles faltaron.
func (m *AuthMiddleware) RequireAllPermissions(perms ...authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
		}
		var missing []string
		for _, perm := range perms {
			if !p.Can(perm) {
				missing = append(missing, string(perm))
			}
		}
		if len(missing) > 0 {
			return forbidden(c, p, dto.ForbiddenResponse{
				RequiredPermissions: permissionStrings(perms),
				MissingPermissions:  missing,
			})
		}
		return c.Next()
	}
}

// RequireAnyPermission exige al menos uno de los permisos dados.
func (m *AuthMiddleware) RequireAnyPermission(perms ...authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
		}
		for _, perm := range perms {
			if p.Can(perm) {
				return c.Next()
			}
		}
		return forbidden(c, p, dto.ForbiddenResponse{
			RequiredPermissions: permissionStrings(perms),
		})
	}
}

// RequireUserManagement exige users.view y aplica las reglas jerárquicas sobre
// el usuario objetivo (param :id):
//   - un ADMIN no puede actuar sobre un objetivo ADMIN o CEO;
//   - solo un CEO puede actuar sobre un objetivo CEO.
//
// Si el objetivo no existe, el chequeo jerárquico se omite: la lógica de
// negocio del handler es quien responde el 404.
func (m *AuthMiddleware) RequireUserManagement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
		}
		if !p.Can(authz.PermUsersView) {
			return forbidden(c, p, dto.ForbiddenResponse{
				RequiredPermission: string(authz.PermUsersView),
			})
		}
		targetID := c.Params("id")
		if targetID == "" {
			return c.Next()
		}
		target, err := m.users.GetByID(c.Context(), targetID)
		if err != nil {
			return m.internalError(c, err, "resolver usuario objetivo")
		}
		if target == nil {
			// Objetivo inexistente: se tolera, el handler responde not found.
			return c.Next()
		}
		targetRole := authz.Role(target.Role)
		if targetRole == authz.RoleCEO && p.Role != authz.RoleCEO {
			return forbidden(c, p, dto.ForbiddenResponse{
				Message: "solo un CEO puede administrar a otro CEO",
			})
		}
		if p.Role == authz.RoleAdmin && (targetRole == authz.RoleAdmin || targetRole == authz.RoleCEO) {
			return forbidden(c, p, dto.ForbiddenResponse{
				Message: "un ADMIN no puede administrar usuarios ADMIN o CEO",
			})
		}
		return c.Next()
	}
}

// forbidden responde 403 con el detalle estructurado de la denegación: rol del
// principal para sesiones, lista de permisos de la key para API keys.
func forbidden(c *fiber.Ctx, p *authz.Principal, resp dto.ForbiddenResponse) error {
	resp.Code = "FORBIDDEN"
	if resp.Message == "" {
		resp.Message = "permisos insuficientes"
	}
	switch p.Method {
	case authz.MethodAPIKey:
		resp.KeyPermissions = make([]string, len(p.KeyPermissions))
		for i, kp := range p.KeyPermissions {
			resp.KeyPermissions[i] = string(kp)
		}
	case authz.MethodSession:
		resp.Role = string(p.Role)
	}
	return c.Status(fiber.StatusForbidden).JSON(resp)
}

func permissionStrings(perms []authz.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
