package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dgiraldo/stockia-api/internal/domain/authz"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

var _ repository.APIKeyRepository = (*APIKeyRepo)(nil)

const apiKeyColumns = "id, name, key, permissions, is_active, expires_at, created_at, last_used, created_by"

// APIKeyRepo implementación del puerto APIKeyRepository sobre PostgreSQL.
// Las permissions se guardan como text[].
type APIKeyRepo struct {
	db querier
}

// NewAPIKeyRepository construye el adaptador de persistencia para API keys.
func NewAPIKeyRepository(pool *pgxpool.Pool) *APIKeyRepo {
	return &APIKeyRepo{db: pool}
}

// Create persiste una API key.
func (r *APIKeyRepo) Create(ctx context.Context, k *entity.APIKey) error {
	query := `
		INSERT INTO api_keys (id, name, key, permissions, is_active, expires_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		k.ID, k.Name, k.Key, permStrings(k.Permissions), k.IsActive, k.ExpiresAt, k.CreatedAt, k.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

// GetByID obtiene una API key por ID.
func (r *APIKeyRepo) GetByID(ctx context.Context, id string) (*entity.APIKey, error) {
	return scanAPIKey(r.db.QueryRow(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE id = $1`, id), "get api key by id")
}

// GetByKey busca por el secreto completo.
func (r *APIKeyRepo) GetByKey(ctx context.Context, secret string) (*entity.APIKey, error) {
	return scanAPIKey(r.db.QueryRow(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE key = $1`, secret), "get api key by secret")
}

// List devuelve todas las keys, más recientes primero.
func (r *APIKeyRepo) List(ctx context.Context) ([]*entity.APIKey, error) {
	rows, err := r.db.Query(ctx, `SELECT `+apiKeyColumns+` FROM api_keys ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()
	var list []*entity.APIKey
	for rows.Next() {
		k, err := scanAPIKey(rows, "scan api key")
		if err != nil {
			return nil, err
		}
		list = append(list, k)
	}
	return list, rows.Err()
}

// TouchLastUsed registra el uso de la key.
func (r *APIKeyRepo) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE api_keys SET last_used = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch api key: %w", err)
	}
	return nil
}

// SetActive activa o desactiva la key.
func (r *APIKeyRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.Exec(ctx, `UPDATE api_keys SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set api key active: %w", err)
	}
	return nil
}

// Delete elimina una key de forma definitiva.
func (r *APIKeyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	return nil
}

func scanAPIKey(row pgx.Row, op string) (*entity.APIKey, error) {
	var k entity.APIKey
	var perms []string
	err := row.Scan(&k.ID, &k.Name, &k.Key, &perms, &k.IsActive, &k.ExpiresAt, &k.CreatedAt, &k.LastUsed, &k.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	k.Permissions = make([]authz.APIKeyPermission, len(perms))
	for i, p := range perms {
		k.Permissions[i] = authz.APIKeyPermission(p)
	}
	return &k, nil
}

func permStrings(perms []authz.APIKeyPermission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
