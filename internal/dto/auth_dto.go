package dto

// LoginRequest carries the numeric staff code punched on the keypad.
type LoginRequest struct {
	Codigo   string `json:"codigo"   validate:"required,numeric,min=2,max=4"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type CrearUsuarioRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=100"`
	Codigo   string  `json:"codigo"   validate:"required,numeric,min=2,max=4"`
	Password string  `json:"password" validate:"required,min=4"`
	PIN      string  `json:"pin"      validate:"required,numeric,min=4,max=6"`
	RolID    string  `json:"rol_id"   validate:"required,uuid"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

type ActualizarUsuarioRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2,max=100"`
	Password *string `json:"password" validate:"omitempty,min=4"`
	PIN      *string `json:"pin"      validate:"omitempty,numeric,min=4,max=6"`
	RolID    *string `json:"rol_id"   validate:"omitempty,uuid"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

type UsuarioResponse struct {
	ID     string  `json:"id"`
	Nombre string  `json:"nombre"`
	Codigo string  `json:"codigo"`
	Rol    string  `json:"rol"`
	Email  *string `json:"email,omitempty"`
	Activo bool    `json:"activo"`
}
