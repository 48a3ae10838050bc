package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats agregados para el tablero principal.
type DashboardStats struct {
	TotalProducts  int
	LowStockCount  int
	MovementsToday int
	InventoryValue decimal.Decimal // suma de costo * stock
	UnreadAlerts   int
}

// DashboardRepository define las consultas agregadas del dashboard.
type DashboardRepository interface {
	Stats(ctx context.Context, userID string, today time.Time) (*DashboardStats, error)
}
