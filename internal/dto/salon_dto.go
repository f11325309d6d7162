package dto

import "github.com/google/uuid"

// ── Salones ───────────────────────────────────────────────────────────────────

type CrearSalonRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
	Orden  int    `json:"orden"  validate:"min=0"`
}

type ActualizarSalonRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Orden  *int    `json:"orden"  validate:"omitempty,min=0"`
}

type SalonResponse struct {
	ID     uuid.UUID      `json:"id"`
	Nombre string         `json:"nombre"`
	Orden  int            `json:"orden"`
	Activo bool           `json:"activo"`
	Mesas  []MesaResponse `json:"mesas,omitempty"`
}

// ── Mesas ─────────────────────────────────────────────────────────────────────

type CrearMesaRequest struct {
	SalonID   string `json:"salon_id"  validate:"required,uuid"`
	Numero    int    `json:"numero"    validate:"required,min=1"`
	Capacidad int    `json:"capacidad" validate:"min=1"`
}

type ActualizarMesaRequest struct {
	SalonID   *string `json:"salon_id"  validate:"omitempty,uuid"`
	Numero    *int    `json:"numero"    validate:"omitempty,min=1"`
	Capacidad *int    `json:"capacidad" validate:"omitempty,min=1"`
}

type MesaResponse struct {
	ID        uuid.UUID `json:"id"`
	SalonID   uuid.UUID `json:"salon_id"`
	Numero    int       `json:"numero"`
	Capacidad int       `json:"capacidad"`
	Estado    string    `json:"estado"`
	Activo    bool      `json:"activo"`
}
