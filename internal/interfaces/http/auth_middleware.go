package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dgiraldo/stockia-api/internal/application/auth"
	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/authz"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/pkg/logger"
)

// LocalPrincipal key del principal autenticado en Fiber Locals.
const LocalPrincipal = "principal"

// userDirectory es el contrato mínimo que necesita el middleware para resolver
// usuarios. Lo implementa postgres.UserRepo; la interfaz permite fakes en tests.
type userDirectory interface {
	FindActiveByID(ctx context.Context, id string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// apiKeyValidator es el contrato mínimo sobre el servicio de API keys.
// Lo implementa *apikey.Service.
type apiKeyValidator interface {
	Validate(ctx context.Context, secret string) (*entity.APIKey, error)
}

// AuthMiddleware resuelve el principal de cada petición y aplica los chequeos
// de permisos. Dos tipos de credencial: cookie de sesión y API key.
type AuthMiddleware struct {
	users      userDirectory
	keys       apiKeyValidator
	cookieName string
	log        *logger.Logger
}

// NewAuthMiddleware construye el middleware.
func NewAuthMiddleware(users userDirectory, keys apiKeyValidator, cookieName string, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{users: users, keys: keys, cookieName: cookieName, log: log.Component("auth")}
}

// RequireAuth autentica la petición y deja el principal en Locals.
//
// Orden de resolución:
//  1. Cookie de sesión. Un token malformado o sin usuario activo no es error:
//     se cae al paso 2. La sesión interactiva siempre gana sobre una API key
//     presente por accidente en los headers.
//  2. API key en X-API-Key o Authorization: Bearer. Un fallo de validación
//     responde 401 con la causa exacta; si la key es válida pero la cuenta del
//     dueño está inactiva responde 403 (distinto de 401: la credencial existe,
//     la cuenta no puede operar).
//  3. Sin credencial: 401.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Sesión por cookie
		if tok := c.Cookies(m.cookieName); tok != "" {
			if userID, ok := auth.ParseSessionToken(tok); ok {
				user, err := m.users.FindActiveByID(c.Context(), userID)
				if err != nil {
					return m.internalError(c, err, "resolver sesión")
				}
				if user != nil {
					c.Locals(LocalPrincipal, &authz.Principal{
						UserID: user.ID,
						Email:  user.Email,
						Name:   user.Name,
						Role:   authz.Role(user.Role),
						Method: authz.MethodSession,
					})
					return c.Next()
				}
			}
		}

		// 2. API key por header
		secret := c.Get("X-API-Key")
		if secret == "" {
			authHeader := c.Get("Authorization")
			if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				secret = strings.TrimSpace(parts[1])
			}
		}
		if secret != "" {
			key, err := m.keys.Validate(c.Context(), secret)
			if err != nil {
				return m.apiKeyFailure(c, err)
			}
			owner, err := m.users.GetByID(c.Context(), key.CreatedBy)
			if err != nil {
				return m.internalError(c, err, "resolver dueño de api key")
			}
			if owner == nil {
				return unauthenticated(c, "API_KEY_ORPHAN", "la api key no tiene un usuario asociado")
			}
			if !owner.IsActive() {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:    "ACCOUNT_DISABLED",
					Message: "cuenta deshabilitada",
				})
			}
			c.Locals(LocalPrincipal, &authz.Principal{
				UserID:         owner.ID,
				Email:          owner.Email,
				Name:           owner.Name,
				Role:           authz.Role(owner.Role),
				Method:         authz.MethodAPIKey,
				APIKeyID:       key.ID,
				KeyPermissions: key.Permissions,
			})
			return c.Next()
		}

		// 3. Sin credencial
		return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
	}
}

// apiKeyFailure traduce los errores de validación de API key a 401 con la
// causa exacta. Un fallo de infraestructura responde 500 genérico.
func (m *AuthMiddleware) apiKeyFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrAPIKeyFormat):
		return unauthenticated(c, "API_KEY_FORMAT", "api key con formato inválido")
	case errors.Is(err, domain.ErrAPIKeyNotFound):
		return unauthenticated(c, "API_KEY_NOT_FOUND", "api key no reconocida")
	case errors.Is(err, domain.ErrAPIKeyDeactivated):
		return unauthenticated(c, "API_KEY_DEACTIVATED", "api key desactivada")
	case errors.Is(err, domain.ErrAPIKeyExpired):
		return unauthenticated(c, "API_KEY_EXPIRED", "api key expirada")
	}
	return m.internalError(c, err, "validar api key")
}

// internalError registra el detalle en el log y responde 500 genérico, sin
// exponer internals al cliente.
func (m *AuthMiddleware) internalError(c *fiber.Ctx, err error, op string) error {
	m.log.Error().Err(err).Str("op", op).Msg("error interno en autenticación")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno",
	})
}

func unauthenticated(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// GetPrincipal devuelve el principal del contexto (después de RequireAuth).
func GetPrincipal(c *fiber.Ctx) *authz.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return nil
	}
	p, _ := v.(*authz.Principal)
	return p
}
