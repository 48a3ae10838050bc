package dto

import "time"

// UpsertSettingRequest crea o actualiza un setting.
type UpsertSettingRequest struct {
	Value    string `json:"value" validate:"required,max=2000"`
	Category string `json:"category" validate:"omitempty,oneof=general system"`
}

// SettingResponse representación pública de un setting.
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Category  string    `json:"category"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
