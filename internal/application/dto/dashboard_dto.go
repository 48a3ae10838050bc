package dto

import "github.com/shopspring/decimal"

// DashboardResponse agregados del tablero principal.
type DashboardResponse struct {
	TotalProducts  int             `json:"total_products"`
	LowStockCount  int             `json:"low_stock_count"`
	MovementsToday int             `json:"movements_today"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	UnreadAlerts   int             `json:"unread_alerts"`
}
