package usecase

import (
	"context"
	"time"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

// DashboardUseCase arma los agregados del tablero principal.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Stats devuelve los agregados del día para el usuario.
func (uc *DashboardUseCase) Stats(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	stats, err := uc.repo.Stats(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalProducts:  stats.TotalProducts,
		LowStockCount:  stats.LowStockCount,
		MovementsToday: stats.MovementsToday,
		InventoryValue: stats.InventoryValue,
		UnreadAlerts:   stats.UnreadAlerts,
	}, nil
}
