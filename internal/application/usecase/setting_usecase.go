package usecase

import (
	"context"
	"time"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

// SettingUseCase administra los settings clave/valor. El acceso a la categoría
// "system" lo restringe el middleware (settings.system); aquí solo va la
// persistencia.
type SettingUseCase struct {
	repo repository.SettingRepository
}

// NewSettingUseCase construye el caso de uso.
func NewSettingUseCase(repo repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{repo: repo}
}

// Get obtiene un setting por clave.
func (uc *SettingUseCase) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	setting, err := uc.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return toSettingResponse(setting), nil
}

// List lista settings, opcionalmente por categoría.
func (uc *SettingUseCase) List(ctx context.Context, category string) ([]dto.SettingResponse, error) {
	settings, err := uc.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SettingResponse, 0, len(settings))
	for _, s := range settings {
		out = append(out, *toSettingResponse(s))
	}
	return out, nil
}

// Upsert crea o actualiza un setting.
func (uc *SettingUseCase) Upsert(ctx context.Context, userID, key string, in dto.UpsertSettingRequest) (*dto.SettingResponse, error) {
	category := in.Category
	if category == "" {
		category = entity.SettingCategoryGeneral
	}
	setting := &entity.Setting{
		Key:       key,
		Value:     in.Value,
		Category:  category,
		UpdatedBy: userID,
		UpdatedAt: time.Now(),
	}
	if err := uc.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return toSettingResponse(setting), nil
}

// IsSystem indica si la clave pertenece a la categoría "system" (y por tanto
// requiere settings.system para tocarla).
func (uc *SettingUseCase) IsSystem(ctx context.Context, key string) (bool, error) {
	setting, err := uc.repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if setting == nil {
		return false, nil
	}
	return setting.Category == entity.SettingCategorySystem, nil
}

// Delete elimina un setting por clave.
func (uc *SettingUseCase) Delete(ctx context.Context, key string) error {
	setting, err := uc.repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if setting == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, key)
}

func toSettingResponse(s *entity.Setting) *dto.SettingResponse {
	if s == nil {
		return nil
	}
	return &dto.SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		Category:  s.Category,
		UpdatedBy: s.UpdatedBy,
		UpdatedAt: s.UpdatedAt,
	}
}
