// Package report arma el reporte PDF de movimientos de inventario.
// La exportación CSV/JSON queda fuera de este núcleo.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

// maxReportRows tope de filas por reporte.
const maxReportRows = 500

// UseCase genera reportes de movimientos.
type UseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	generator   Generator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	generator Generator,
) *UseCase {
	return &UseCase{movRepo: movRepo, productRepo: productRepo, userRepo: userRepo, generator: generator}
}

// MovementsPDF genera el PDF de movimientos según el filtro.
func (uc *UseCase) MovementsPDF(ctx context.Context, filter repository.MovementFilter) ([]byte, error) {
	movements, err := uc.movRepo.List(ctx, filter, maxReportRows, 0)
	if err != nil {
		return nil, err
	}

	// Cache local de nombres para no repetir lookups por fila.
	productNames := map[string][2]string{} // id -> {sku, name}
	userNames := map[string]string{}

	rows := make([]MovementRow, 0, len(movements))
	for _, m := range movements {
		sku, name := "", ""
		if cached, ok := productNames[m.ProductID]; ok {
			sku, name = cached[0], cached[1]
		} else if p, err := uc.productRepo.GetByID(ctx, m.ProductID); err == nil && p != nil {
			sku, name = p.SKU, p.Name
			productNames[m.ProductID] = [2]string{sku, name}
		}
		userName, ok := userNames[m.UserID]
		if !ok {
			if u, err := uc.userRepo.GetByID(ctx, m.UserID); err == nil && u != nil {
				userName = u.Name
			}
			userNames[m.UserID] = userName
		}
		rows = append(rows, MovementRow{
			Date:        m.CreatedAt.Format("2006-01-02 15:04"),
			ProductSKU:  sku,
			ProductName: name,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Reason:      m.Reason,
			User:        userName,
		})
	}

	title := fmt.Sprintf("Movimientos de inventario - %s", time.Now().Format("2006-01-02"))
	return uc.generator.MovementsPDF(ctx, title, rows)
}
