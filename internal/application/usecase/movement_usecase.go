package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/application/ports"
	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repos atados a una transacción de base de
// datos. Lo implementa postgres.TxRunner; el uso de interfaz permite fakes en
// tests.
type TxRunner interface {
	RunMovement(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// MovementUseCase registra y consulta movimientos de inventario. El registro
// corre en una transacción: insertar el movimiento y fijar el stock resultante
// del producto son un solo paso atómico.
type MovementUseCase struct {
	tx        TxRunner
	movRepo   repository.MovementRepository
	notifRepo repository.NotificationRepository
	sender    ports.NotificationSender
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	tx TxRunner,
	movRepo repository.MovementRepository,
	notifRepo repository.NotificationRepository,
	sender ports.NotificationSender,
) *MovementUseCase {
	return &MovementUseCase{tx: tx, movRepo: movRepo, notifRepo: notifRepo, sender: sender}
}

// Register registra un movimiento y actualiza el stock del producto.
// Reglas: in suma, out resta (rechaza stock insuficiente), adjust fija el
// stock absoluto. Si el stock resultante queda en o bajo el mínimo, se emite
// una notificación de stock bajo para el usuario que registró el movimiento.
func (uc *MovementUseCase) Register(ctx context.Context, userID string, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	var (
		movement *entity.Movement
		newStock int
		minStock int
	)
	err := uc.tx.RunMovement(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		switch in.Type {
		case entity.MovementTypeIn:
			newStock = product.Stock + in.Quantity
		case entity.MovementTypeOut:
			if in.Quantity > product.Stock {
				return domain.ErrInsufficientStock
			}
			newStock = product.Stock - in.Quantity
		case entity.MovementTypeAdjust:
			newStock = in.Quantity
		default:
			return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
		}
		minStock = product.MinStock
		movement = &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      in.Type,
			Quantity:  in.Quantity,
			Reason:    in.Reason,
			Reference: in.Reference,
			Notes:     in.Notes,
			UserID:    userID,
			CreatedAt: time.Now(),
		}
		if err := movRepo.Create(ctx, movement); err != nil {
			return err
		}
		return productRepo.UpdateStock(ctx, product.ID, newStock)
	})
	if err != nil {
		return nil, err
	}

	if newStock <= minStock {
		uc.notifyLowStock(ctx, userID, movement.ProductID, newStock)
	}

	resp := toMovementResponse(movement)
	resp.NewStock = newStock
	return resp, nil
}

// notifyLowStock persiste y envía la alerta de stock bajo. Un fallo aquí no
// invalida el movimiento ya confirmado; queda solo en la notificación.
func (uc *MovementUseCase) notifyLowStock(ctx context.Context, userID, productID string, stock int) {
	n := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      entity.NotificationTypeLowStock,
		Title:     "Stock bajo",
		Message:   fmt.Sprintf("El producto %s quedó con stock %d", productID, stock),
		CreatedAt: time.Now(),
	}
	if err := uc.notifRepo.Create(ctx, n); err != nil {
		return
	}
	_ = uc.sender.Send(ctx, n)
}

// GetByID obtiene un movimiento por ID.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	movement, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, nil
	}
	return toMovementResponse(movement), nil
}

// List lista movimientos con filtros y paginación.
func (uc *MovementUseCase) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]dto.MovementResponse, error) {
	movements, err := uc.movRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Reference: m.Reference,
		Notes:     m.Notes,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}
