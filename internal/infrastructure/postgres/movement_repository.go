package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = "id, product_id, type, quantity, reason, reference, notes, user_id, created_at"

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	db querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepo {
	return &MovementRepo{db: pool}
}

// newMovementRepo versión atada a una transacción (ver TxRunner).
func newMovementRepo(q querier) *MovementRepo {
	return &MovementRepo{db: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, type, quantity, reason, reference, notes, user_id, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9)`
	_, err := r.db.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Reason, m.Reference, m.Notes, m.UserID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var m entity.Movement
	var reason, reference, notes *string
	err := r.db.QueryRow(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE id = $1`, id).
		Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &reason, &reference, &notes, &m.UserID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement by id: %w", err)
	}
	applyOptional(&m, reason, reference, notes)
	return &m, nil
}

// List lista movimientos con filtros opcionales y paginación.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.ProductID != "" {
		conds = append(conds, "product_id = "+arg(filter.ProductID))
	}
	if filter.Type != "" {
		conds = append(conds, "type = "+arg(filter.Type))
	}
	if !filter.From.IsZero() {
		conds = append(conds, "created_at >= "+arg(filter.From))
	}
	if !filter.To.IsZero() {
		conds = append(conds, "created_at <= "+arg(filter.To))
	}
	query := `SELECT ` + movementColumns + ` FROM movements`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return scanMovements(rows)
}

// ListByProduct lista movimientos de un producto.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	return r.List(ctx, repository.MovementFilter{ProductID: productID}, limit, offset)
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var reason, reference, notes *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &reason, &reference, &notes, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		applyOptional(&m, reason, reference, notes)
		list = append(list, &m)
	}
	return list, rows.Err()
}

func applyOptional(m *entity.Movement, reason, reference, notes *string) {
	if reason != nil {
		m.Reason = *reason
	}
	if reference != nil {
		m.Reference = *reference
	}
	if notes != nil {
		m.Notes = *notes
	}
}
