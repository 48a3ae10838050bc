// Package apikey implementa el ciclo de vida de las API keys: generación del
// secreto, validación con causa exacta de fallo y revocación. Es independiente
// del sistema de permisos por rol; cada key lleva su propio subconjunto de
// permisos (vocabulario de authz.APIKeyPermission).
package apikey

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/authz"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

// KeyPrefix prefijo de todo secreto de API key. Permite distinguir barato
// "esto parece una API key" de un token de sesión sin consultar la DB.
const KeyPrefix = "sk_"

// Service casos de uso de API keys.
type Service struct {
	repo repository.APIKeyRepository
	now  func() time.Time // inyectable en tests
}

// NewService construye el servicio con el puerto de persistencia.
func NewService(repo repository.APIKeyRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GenerateKey produce un secreto nuevo: prefijo reconocible + 32 bytes de
// crypto/rand en hex (256 bits de entropía).
func GenerateKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar api key: %w", err)
	}
	return KeyPrefix + hex.EncodeToString(buf), nil
}

// MaskKey devuelve la forma enmascarada de un secreto para listados:
// prefijo + elipsis + últimos 4 caracteres.
func MaskKey(secret string) string {
	if len(secret) <= len(KeyPrefix)+4 {
		return KeyPrefix + "..."
	}
	return KeyPrefix + "..." + secret[len(secret)-4:]
}

// CreateInput datos para crear una API key.
type CreateInput struct {
	Name        string
	Permissions []authz.APIKeyPermission
	ExpiresAt   *time.Time
	CreatedBy   string // UserID del creador
}

// Create genera y persiste una key nueva. El registro devuelto incluye el
// secreto en claro: es la única vez que se entrega completo.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.APIKey, error) {
	if in.Name == "" || len(in.Permissions) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, p := range in.Permissions {
		if !authz.ValidAPIKeyPermission(string(p)) {
			return nil, fmt.Errorf("%w: permiso desconocido %q", domain.ErrInvalidInput, p)
		}
	}
	secret, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	key := &entity.APIKey{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Key:         secret,
		Permissions: in.Permissions,
		IsActive:    true,
		ExpiresAt:   in.ExpiresAt,
		CreatedAt:   s.now(),
		CreatedBy:   in.CreatedBy,
	}
	if err := s.repo.Create(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Validate verifica un secreto y devuelve el registro completo. Los fallos se
// reportan con su causa exacta: ErrAPIKeyFormat, ErrAPIKeyNotFound,
// ErrAPIKeyDeactivated o ErrAPIKeyExpired. En éxito registra el uso
// (last_used); validar y registrar son un solo paso lógico.
func (s *Service) Validate(ctx context.Context, secret string) (*entity.APIKey, error) {
	if !strings.HasPrefix(secret, KeyPrefix) {
		return nil, domain.ErrAPIKeyFormat
	}
	key, err := s.repo.GetByKey(ctx, secret)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, domain.ErrAPIKeyNotFound
	}
	if !key.IsActive {
		return nil, domain.ErrAPIKeyDeactivated
	}
	now := s.now()
	if key.Expired(now) {
		return nil, domain.ErrAPIKeyExpired
	}
	if err := s.repo.TouchLastUsed(ctx, key.ID, now); err != nil {
		return nil, fmt.Errorf("registrar uso de api key: %w", err)
	}
	key.LastUsed = &now
	return key, nil
}

// List devuelve todas las keys con el secreto enmascarado. El secreto completo
// solo sale de aquí vía Reveal.
func (s *Service) List(ctx context.Context) ([]*entity.APIKey, error) {
	keys, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		k.Key = MaskKey(k.Key)
	}
	return keys, nil
}

// Reveal devuelve una key con su secreto completo. El handler que lo expone
// debe exigir autorización adicional (settings.system).
func (s *Service) Reveal(ctx context.Context, id string) (*entity.APIKey, error) {
	key, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, domain.ErrNotFound
	}
	return key, nil
}

// Deactivate desactiva una key (soft revoke). Repetir sobre una key ya
// inactiva no es error.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	key, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if key == nil {
		return domain.ErrNotFound
	}
	return s.repo.SetActive(ctx, id, false)
}

// Delete elimina una key de forma definitiva.
func (s *Service) Delete(ctx context.Context, id string) error {
	key, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if key == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
