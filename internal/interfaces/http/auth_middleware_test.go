package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgiraldo/stockia-api/internal/application/auth"
	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/authz"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	apphttp "github.com/dgiraldo/stockia-api/internal/interfaces/http"
	"github.com/dgiraldo/stockia-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCookieName = "auth_token"

// fakeUsers implementa el directorio de usuarios en memoria.
type fakeUsers struct {
	byID map[string]*entity.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, nil
}

func (f *fakeUsers) FindActiveByID(ctx context.Context, id string) (*entity.User, error) {
	u, _ := f.GetByID(ctx, id)
	if u == nil || !u.IsActive() {
		return nil, nil
	}
	return u, nil
}

// fakeKeys implementa el validador de API keys con respuestas predefinidas.
type fakeKeys struct {
	bySecret map[string]*entity.APIKey
	err      map[string]error
}

func (f *fakeKeys) Validate(_ context.Context, secret string) (*entity.APIKey, error) {
	if err, ok := f.err[secret]; ok {
		return nil, err
	}
	if k, ok := f.bySecret[secret]; ok {
		return k, nil
	}
	return nil, domain.ErrAPIKeyNotFound
}

func testUser(id, role, status string) *entity.User {
	return &entity.User{ID: id, Email: id + "@stockia.test", Name: "Usuario " + id, Role: role, Status: status}
}

type fixture struct {
	users *fakeUsers
	keys  *fakeKeys
	mw    *apphttp.AuthMiddleware
}

func newFixture() *fixture {
	users := &fakeUsers{byID: map[string]*entity.User{
		"vendedor-1": testUser("vendedor-1", string(authz.RoleVendedor), entity.UserStatusActive),
		"manager-1":  testUser("manager-1", string(authz.RoleManager), entity.UserStatusActive),
		"admin-1":    testUser("admin-1", string(authz.RoleAdmin), entity.UserStatusActive),
		"admin-2":    testUser("admin-2", string(authz.RoleAdmin), entity.UserStatusActive),
		"ceo-1":      testUser("ceo-1", string(authz.RoleCEO), entity.UserStatusActive),
		"inactivo-1": testUser("inactivo-1", string(authz.RoleAdmin), entity.UserStatusInactive),
	}}
	keys := &fakeKeys{
		bySecret: map[string]*entity.APIKey{},
		err:      map[string]error{},
	}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return &fixture{users: users, keys: keys, mw: apphttp.NewAuthMiddleware(users, keys, testCookieName, log)}
}

func okHandler(c *fiber.Ctx) error {
	p := apphttp.GetPrincipal(c)
	return c.JSON(fiber.Map{"ok": true, "user_id": p.UserID, "method": string(p.Method)})
}

func sessionCookie(userID string) *http.Cookie {
	return &http.Cookie{Name: testCookieName, Value: auth.SessionToken(userID, time.Now())}
}

func doGet(t *testing.T, app *fiber.App, path string, decorate func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if decorate != nil {
		decorate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de identidad (RequireAuth)
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAuth_CookieDeSesionValida(t *testing.T) {
	fx := newFixture()
	app := fiber.New()
	app.Get("/protected", fx.mw.RequireAuth(), okHandler)

	resp := doGet(t, app, "/protected", func(r *http.Request) {
		r.AddCookie(sessionCookie("manager-1"))
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Equal(t, "manager-1", body["user_id"])
	assert.Equal(t, "session", body["method"])
}

func TestRequireAuth_SinCredenciales_Retorna401(t *testing.T) {
	fx := newFixture()
	app := fiber.New()
	app.Get("/protected", fx.mw.RequireAuth(), okHandler)

	resp := doGet(t, app, "/protected", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "UNAUTHENTICATED")
}

// Cookie con token malformado y sin API key: 401, nunca 500.
func TestRequireAuth_TokenMalformado_Retorna401(t *testing.T) {
	fx := newFixture()
	app := fiber.New()
	app.Get("/protected", fx.mw.RequireAuth(), okHandler)

	for _, tok := range []string{"basura", "auth_", "auth__123", "otro_manager-1_99"} {
		resp := doGet(t, app, "/protected", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: testCookieName, Value: tok})
		})
		resp.Body.Close()
		assert.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "token %q", tok)
	}
}

// Usuario de la cookie inactivo: la sesión no cuenta y, sin otra credencial,
// el resultado es 401 (no 403: la petición no está autenticada).
func TestRequireAuth_SesionDeUsuarioInactivo_Retorna401(t *testing.T) {
	fx := newFixture()
	app := fiber.New()
	app.Get("/protected", fx.mw.RequireAuth(), okHandler)

	resp := doGet(t, app, "/protected", func(r *http.Request) {
		r.AddCookie(sessionCookie("inactivo-1"))
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_APIKeyPorHeader(t *testing.T) {
	fx := newFixture()
	fx.keys.bySecret["sk_valida"] = &entity.APIKey{
		ID:          "key-1",
		Permissions: []authz.APIKeyPermission{authz.APIKeyProductsRead},
		IsActive:    true,
		CreatedBy:   "manager-1",
	}
	app := fiber.New()
	app.Get("/protected", fx.mw.RequireAuth(), okHandler)

	// X-API-Key
	resp := doGet(t, app, "/protected", func(r *http.Request) {
		r.Header.Set("X-API-Key", "sk_valida")
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Equal(t, "manager-1", body["user_id"], "el principal lleva la identidad del dueño")
	assert.Equal(t, "api_key", body["method"])

	// Authorization: Bearer
	resp = doGet(t, app, "/protected", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer sk_valida")
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// La cookie de sesión válida gana sobre una API key presente en los headers.
func TestRequireAuth_CookieGanaSobreAPIKey(t *testing.T) {
	fx := newFixture()
	fx.keys.bySecret["sk_valida"] = &entity.APIKey{
		ID:          "key-1",
		Permissions: []authz.APIKeyPermission{authz.APIKeyWildcard},
		IsActive:    true,
		CreatedBy:   "manager-1",
	}
	app := fiber.New()
	app.Get("/protected", fx.mw.RequireAuth(), okHandler)

	resp := doGet(t, app, "/protected", func(r *http.Request) {
		r.AddCookie(sessionCookie("vendedor-1"))
		r.Header.Set("X-API-Key", "sk_valida")
	})
	body := readBody(t, resp)
	assert.Equal(t, "vendedor-1", body["user_id"])
	assert.Equal(t, "session", body["method"])
}

// Cada causa de fallo de la API key responde 401 con su código propio.
func TestRequireAuth_FallosDeAPIKey(t *testing.T) {
	fx := newFixture()
	fx.keys.err["sk_mala"] = domain.ErrAPIKeyFormat
	fx.keys.err["sk_fantasma"] = domain.ErrAPIKeyNotFound
	fx.keys.err["sk_revocada"] = domain.ErrAPIKeyDeactivated
	fx.keys.err["sk_vencida"] = domain.ErrAPIKeyExpired
	app := fiber.New()
	app.Get("/protected", fx.mw.RequireAuth(), okHandler)

	cases := []struct {
		secret string
		code   string
	}{
		{"sk_mala", "API_KEY_FORMAT"},
		{"sk_fantasma", "API_KEY_NOT_FOUND"},
		{"sk_revocada", "API_KEY_DEACTIVATED"},
		{"sk_vencida", "API_KEY_EXPIRED"},
	}
	for _, tc := range cases {
		resp := doGet(t, app, "/protected", func(r *http.Request) {
			r.Header.Set("X-API-Key", tc.secret)
		})
		assert.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "secret %s", tc.secret)
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Containsf(t, string(raw), tc.code, "secret %s", tc.secret)
	}
}

// Key válida pero dueño inactivo: 403, no 401. La credencial existe pero la
// cuenta no puede operar.
func TestRequireAuth_DuenoInactivo_Retorna403(t *testing.T) {
	fx := newFixture()
	fx.keys.bySecret["sk_de_inactivo"] = &entity.APIKey{
		ID:          "key-2",
		Permissions: []authz.APIKeyPermission{authz.APIKeyProductsRead},
		IsActive:    true,
		CreatedBy:   "inactivo-1",
	}
	app := fiber.New()
	app.Get("/protected", fx.mw.RequireAuth(), okHandler)

	resp := doGet(t, app, "/protected", func(r *http.Request) {
		r.Header.Set("X-API-Key", "sk_de_inactivo")
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(raw), "ACCOUNT_DISABLED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización por permiso
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_SesionPorRol(t *testing.T) {
	fx := newFixture()
	app := fiber.New()
	app.Delete("/products/:id", fx.mw.RequireAuth(), fx.mw.RequirePermission(authz.PermProductsDelete), okHandler)

	// MANAGER no puede borrar productos
	req := httptest.NewRequest(http.MethodDelete, "/products/p1", nil)
	req.AddCookie(sessionCookie("manager-1"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var denial map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&denial))
	resp.Body.Close()
	assert.Equal(t, "FORBIDDEN", denial["code"])
	assert.Equal(t, string(authz.PermProductsDelete), denial["required_permission"])
	assert.Equal(t, string(authz.RoleManager), denial["role"], "la denegación de sesión expone el rol")

	// ADMIN sí puede
	req = httptest.NewRequest(http.MethodDelete, "/products/p1", nil)
	req.AddCookie(sessionCookie("admin-1"))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// La autorización de una API key usa los permisos de la key, nunca el rol del
// dueño: la key de un CEO limitada a lectura no puede escribir.
func TestRequirePermission_APIKeyIgnoraRolDelDueno(t *testing.T) {
	fx := newFixture()
	fx.keys.bySecret["sk_lectura"] = &entity.APIKey{
		ID:          "key-3",
		Permissions: []authz.APIKeyPermission{authz.APIKeyProductsRead},
		IsActive:    true,
		CreatedBy:   "ceo-1",
	}
	app := fiber.New()
	app.Get("/products", fx.mw.RequireAuth(), fx.mw.RequirePermission(authz.PermProductsView), okHandler)
	app.Post("/products", fx.mw.RequireAuth(), fx.mw.RequirePermission(authz.PermProductsCreate), okHandler)

	resp := doGet(t, app, "/products", func(r *http.Request) {
		r.Header.Set("X-API-Key", "sk_lectura")
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	req.Header.Set("X-API-Key", "sk_lectura")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var denial map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&denial))
	resp.Body.Close()
	assert.Contains(t, denial, "key_permissions", "la denegación de API key lista los permisos de la key")
	assert.NotContains(t, denial, "role")
}

func TestRequireAllPermissions_ListaFaltantes(t *testing.T) {
	fx := newFixture()
	app := fiber.New()
	app.Get("/reports",
		fx.mw.RequireAuth(),
		fx.mw.RequireAllPermissions(authz.PermReportsView, authz.PermSettingsSystem),
		okHandler)

	resp := doGet(t, app, "/reports", func(r *http.Request) {
		r.AddCookie(sessionCookie("admin-1"))
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var denial map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&denial))
	resp.Body.Close()
	missing, ok := denial["missing_permissions"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{string(authz.PermSettingsSystem)}, missing,
		"solo debe listarse el permiso que realmente faltó")
}

func TestRequireAnyPermission(t *testing.T) {
	fx := newFixture()
	app := fiber.New()
	app.Get("/mixed",
		fx.mw.RequireAuth(),
		fx.mw.RequireAnyPermission(authz.PermSettingsSystem, authz.PermProductsView),
		okHandler)

	resp := doGet(t, app, "/mixed", func(r *http.Request) {
		r.AddCookie(sessionCookie("vendedor-1"))
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "basta con uno de los permisos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Jerarquía de gestión de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func buildUserMgmtApp(fx *fixture) *fiber.App {
	app := fiber.New()
	app.Put("/users/:id", fx.mw.RequireAuth(), fx.mw.RequireUserManagement(), okHandler)
	return app
}

func putUser(t *testing.T, app *fiber.App, actorID, targetID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/users/"+targetID, nil)
	req.AddCookie(sessionCookie(actorID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireUserManagement_Jerarquia(t *testing.T) {
	fx := newFixture()
	app := buildUserMgmtApp(fx)

	cases := []struct {
		name   string
		actor  string
		target string
		want   int
	}{
		{"vendedor sin users.view", "vendedor-1", "manager-1", http.StatusForbidden},
		{"admin gestiona manager", "admin-1", "manager-1", http.StatusOK},
		{"admin no gestiona a otro admin", "admin-1", "admin-2", http.StatusForbidden},
		{"admin no gestiona al ceo", "admin-1", "ceo-1", http.StatusForbidden},
		{"ceo gestiona admin", "ceo-1", "admin-1", http.StatusOK},
		{"ceo gestiona a otro ceo", "ceo-1", "ceo-1", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := putUser(t, app, tc.actor, tc.target)
			resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

// Objetivo inexistente: el middleware deja pasar y el handler decide el 404.
func TestRequireUserManagement_ObjetivoInexistente(t *testing.T) {
	fx := newFixture()
	app := buildUserMgmtApp(fx)

	resp := putUser(t, app, "admin-1", "no-existe")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el chequeo jerárquico se omite si el objetivo no existe")
}
