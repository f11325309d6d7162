package dto

// CambiarActivoRequest toggles soft-delete state on any catalog entity.
type CambiarActivoRequest struct {
	Activo bool `json:"activo"`
}
