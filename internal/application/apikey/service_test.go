package apikey_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgiraldo/stockia-api/internal/application/apikey"
	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/authz"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
)

// fakeAPIKeyRepo implementa repository.APIKeyRepository en memoria.
type fakeAPIKeyRepo struct {
	byID map[string]*entity.APIKey
}

func newFakeAPIKeyRepo() *fakeAPIKeyRepo {
	return &fakeAPIKeyRepo{byID: map[string]*entity.APIKey{}}
}

func (r *fakeAPIKeyRepo) Create(_ context.Context, key *entity.APIKey) error {
	cp := *key
	r.byID[key.ID] = &cp
	return nil
}

func (r *fakeAPIKeyRepo) GetByID(_ context.Context, id string) (*entity.APIKey, error) {
	if k, ok := r.byID[id]; ok {
		cp := *k
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAPIKeyRepo) GetByKey(_ context.Context, secret string) (*entity.APIKey, error) {
	for _, k := range r.byID {
		if k.Key == secret {
			cp := *k
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAPIKeyRepo) List(_ context.Context) ([]*entity.APIKey, error) {
	out := make([]*entity.APIKey, 0, len(r.byID))
	for _, k := range r.byID {
		cp := *k
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAPIKeyRepo) TouchLastUsed(_ context.Context, id string, at time.Time) error {
	if k, ok := r.byID[id]; ok {
		k.LastUsed = &at
	}
	return nil
}

func (r *fakeAPIKeyRepo) SetActive(_ context.Context, id string, active bool) error {
	if k, ok := r.byID[id]; ok {
		k.IsActive = active
	}
	return nil
}

func (r *fakeAPIKeyRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func newService(t *testing.T) (*apikey.Service, *fakeAPIKeyRepo) {
	t.Helper()
	repo := newFakeAPIKeyRepo()
	return apikey.NewService(repo), repo
}

func mustCreate(t *testing.T, svc *apikey.Service, perms ...authz.APIKeyPermission) *entity.APIKey {
	t.Helper()
	key, err := svc.Create(context.Background(), apikey.CreateInput{
		Name:        "integración de prueba",
		Permissions: perms,
		CreatedBy:   "user-1",
	})
	require.NoError(t, err)
	return key
}

func TestGenerateKey_FormatoYUnicidad(t *testing.T) {
	a, err := apikey.GenerateKey()
	require.NoError(t, err)
	b, err := apikey.GenerateKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, apikey.KeyPrefix))
	assert.Len(t, a, len(apikey.KeyPrefix)+64, "32 bytes en hex")
	assert.NotEqual(t, a, b)
}

func TestMaskKey(t *testing.T) {
	masked := apikey.MaskKey("sk_0123456789abcdef")
	assert.Equal(t, "sk_...cdef", masked)
	assert.Equal(t, "sk_...", apikey.MaskKey("sk_ab"), "secretos demasiado cortos no filtran nada")
}

func TestCreate_ValidaEntrada(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, apikey.CreateInput{Name: "", Permissions: []authz.APIKeyPermission{authz.APIKeyProductsRead}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(ctx, apikey.CreateInput{Name: "sin permisos"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(ctx, apikey.CreateInput{
		Name:        "permiso inventado",
		Permissions: []authz.APIKeyPermission{"products.everything"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_RoundTrip(t *testing.T) {
	svc, _ := newService(t)
	created := mustCreate(t, svc, authz.APIKeyProductsRead)

	got, err := svc.Validate(context.Background(), created.Key)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Permissions, got.Permissions)
	require.NotNil(t, got.LastUsed, "la validación exitosa registra el uso")
}

func TestValidate_TocaLastUsedEnRepo(t *testing.T) {
	svc, repo := newService(t)
	created := mustCreate(t, svc, authz.APIKeyProductsRead)

	_, err := svc.Validate(context.Background(), created.Key)
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastUsed)
}

func TestValidate_FormatoInvalido(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Validate(context.Background(), "pk_no_es_una_key")
	assert.ErrorIs(t, err, domain.ErrAPIKeyFormat)
}

func TestValidate_NoExiste(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Validate(context.Background(), "sk_inexistente")
	assert.ErrorIs(t, err, domain.ErrAPIKeyNotFound)
}

func TestValidate_Desactivada(t *testing.T) {
	svc, _ := newService(t)
	created := mustCreate(t, svc, authz.APIKeyProductsRead)
	require.NoError(t, svc.Deactivate(context.Background(), created.ID))

	_, err := svc.Validate(context.Background(), created.Key)
	assert.ErrorIs(t, err, domain.ErrAPIKeyDeactivated)
}

func TestValidate_Expirada(t *testing.T) {
	svc, repo := newService(t)
	expired := time.Now().Add(-time.Hour)
	key := &entity.APIKey{
		ID:          "key-expirada",
		Name:        "vieja",
		Key:         "sk_" + strings.Repeat("a", 64),
		Permissions: []authz.APIKeyPermission{authz.APIKeyProductsRead},
		IsActive:    true,
		ExpiresAt:   &expired,
		CreatedAt:   time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), key))

	_, err := svc.Validate(context.Background(), key.Key)
	assert.ErrorIs(t, err, domain.ErrAPIKeyExpired)
}

// Desactivada gana sobre expirada: el orden de chequeo es estable.
func TestValidate_DesactivadaYExpirada(t *testing.T) {
	svc, repo := newService(t)
	expired := time.Now().Add(-time.Hour)
	key := &entity.APIKey{
		ID:          "key-doble",
		Name:        "revocada y vencida",
		Key:         "sk_" + strings.Repeat("b", 64),
		Permissions: []authz.APIKeyPermission{authz.APIKeyProductsRead},
		IsActive:    false,
		ExpiresAt:   &expired,
	}
	require.NoError(t, repo.Create(context.Background(), key))

	_, err := svc.Validate(context.Background(), key.Key)
	assert.ErrorIs(t, err, domain.ErrAPIKeyDeactivated)
}

func TestList_EnmascaraSecretos(t *testing.T) {
	svc, _ := newService(t)
	created := mustCreate(t, svc, authz.APIKeyProductsRead)

	keys, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.NotEqual(t, created.Key, keys[0].Key)
	assert.True(t, strings.HasPrefix(keys[0].Key, "sk_..."))
	assert.Equal(t, created.Key[len(created.Key)-4:], keys[0].Key[len(keys[0].Key)-4:])
}

func TestReveal_DevuelveSecretoCompleto(t *testing.T) {
	svc, _ := newService(t)
	created := mustCreate(t, svc, authz.APIKeyProductsRead)

	got, err := svc.Reveal(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Key, got.Key)

	_, err = svc.Reveal(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeactivate_EsIdempotente(t *testing.T) {
	svc, _ := newService(t)
	created := mustCreate(t, svc, authz.APIKeyProductsRead)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))
	require.NoError(t, svc.Deactivate(context.Background(), created.ID),
		"desactivar una key ya inactiva no es error")

	assert.ErrorIs(t, svc.Deactivate(context.Background(), "no-existe"), domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newService(t)
	created := mustCreate(t, svc, authz.APIKeyProductsRead)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err := svc.Validate(context.Background(), created.Key)
	assert.ErrorIs(t, err, domain.ErrAPIKeyNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), domain.ErrNotFound)
}
