package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implementación del puerto SettingRepository sobre PostgreSQL.
type SettingRepo struct {
	db querier
}

// NewSettingRepository construye el adaptador de persistencia para settings.
func NewSettingRepository(pool *pgxpool.Pool) *SettingRepo {
	return &SettingRepo{db: pool}
}

// Get obtiene un setting por clave.
func (r *SettingRepo) Get(ctx context.Context, key string) (*entity.Setting, error) {
	var s entity.Setting
	var updatedBy *string
	err := r.db.QueryRow(ctx,
		`SELECT key, value, category, updated_by, updated_at FROM settings WHERE key = $1`, key).
		Scan(&s.Key, &s.Value, &s.Category, &updatedBy, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	if updatedBy != nil {
		s.UpdatedBy = *updatedBy
	}
	return &s, nil
}

// Upsert inserta o reemplaza el valor de la clave.
func (r *SettingRepo) Upsert(ctx context.Context, s *entity.Setting) error {
	query := `
		INSERT INTO settings (key, value, category, updated_by, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, category = EXCLUDED.category,
			updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query, s.Key, s.Value, s.Category, s.UpdatedBy, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

// List lista settings, opcionalmente filtrando por categoría.
func (r *SettingRepo) List(ctx context.Context, category string) ([]*entity.Setting, error) {
	query := `SELECT key, value, category, updated_by, updated_at FROM settings`
	var args []any
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY key`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Setting
	for rows.Next() {
		var s entity.Setting
		var updatedBy *string
		if err := rows.Scan(&s.Key, &s.Value, &s.Category, &updatedBy, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		if updatedBy != nil {
			s.UpdatedBy = *updatedBy
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un setting por clave.
func (r *SettingRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	return nil
}
