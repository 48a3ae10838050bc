package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ForbiddenResponse cuerpo de error 403 con el detalle estructurado de la
// denegación: qué permiso faltó y qué tiene realmente el principal (rol para
// sesiones, lista de permisos para API keys). No expone datos de otros usuarios.
type ForbiddenResponse struct {
	Code                string   `json:"code"`
	Message             string   `json:"message"`
	RequiredPermission  string   `json:"required_permission,omitempty"`
	RequiredPermissions []string `json:"required_permissions,omitempty"`
	MissingPermissions  []string `json:"missing_permissions,omitempty"`
	Role                string   `json:"role,omitempty"`
	KeyPermissions      []string `json:"key_permissions,omitempty"`
}
