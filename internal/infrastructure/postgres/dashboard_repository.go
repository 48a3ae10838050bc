package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas del tablero sobre PostgreSQL.
type DashboardRepo struct {
	db querier
}

// NewDashboardRepository construye el adaptador de consultas del dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{db: pool}
}

// Stats devuelve los agregados del día para el usuario.
func (r *DashboardRepo) Stats(ctx context.Context, userID string, today time.Time) (*repository.DashboardStats, error) {
	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	var stats repository.DashboardStats
	var value *decimal.Decimal
	query := `
		SELECT
			(SELECT count(*) FROM products WHERE status = 'active'),
			(SELECT count(*) FROM products WHERE status = 'active' AND stock <= min_stock),
			(SELECT count(*) FROM movements WHERE created_at >= $1),
			(SELECT sum(cost * stock) FROM products WHERE status = 'active'),
			(SELECT count(*) FROM notifications WHERE user_id = $2 AND read = false)`
	err := r.db.QueryRow(ctx, query, dayStart, userID).Scan(
		&stats.TotalProducts, &stats.LowStockCount, &stats.MovementsToday, &value, &stats.UnreadAlerts)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	if value != nil {
		stats.InventoryValue = *value
	} else {
		stats.InventoryValue = decimal.Zero
	}
	return &stats, nil
}
