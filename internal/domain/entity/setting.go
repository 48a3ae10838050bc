package entity

import "time"

// Categorías de settings. La categoría "system" solo es gestionable con el
// permiso settings.system.
const (
	SettingCategoryGeneral = "general"
	SettingCategorySystem  = "system"
)

// Setting representa un par clave/valor de configuración de la aplicación.
type Setting struct {
	Key       string
	Value     string
	Category  string // general, system
	UpdatedBy string // UserID del último editor
	UpdatedAt time.Time
}
