package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Roles ─────────────────────────────────────────────────────────────────────

type CrearRolRequest struct {
	Nombre                string `json:"nombre" validate:"required,min=2,max=50"`
	PuedeQuitarLineas     bool   `json:"puede_quitar_lineas"`
	PuedeAplicarDescuento bool   `json:"puede_aplicar_descuento"`
	PuedeCerrarMesas      bool   `json:"puede_cerrar_mesas"`
	PuedeAdministrar      bool   `json:"puede_administrar"`
}

type ActualizarRolRequest struct {
	Nombre                *string `json:"nombre" validate:"omitempty,min=2,max=50"`
	PuedeQuitarLineas     *bool   `json:"puede_quitar_lineas"`
	PuedeAplicarDescuento *bool   `json:"puede_aplicar_descuento"`
	PuedeCerrarMesas      *bool   `json:"puede_cerrar_mesas"`
	PuedeAdministrar      *bool   `json:"puede_administrar"`
}

type RolResponse struct {
	ID                    uuid.UUID `json:"id"`
	Nombre                string    `json:"nombre"`
	PuedeQuitarLineas     bool      `json:"puede_quitar_lineas"`
	PuedeAplicarDescuento bool      `json:"puede_aplicar_descuento"`
	PuedeCerrarMesas      bool      `json:"puede_cerrar_mesas"`
	PuedeAdministrar      bool      `json:"puede_administrar"`
	Activo                bool      `json:"activo"`
}

// ── Métodos de pago ───────────────────────────────────────────────────────────

type CrearMetodoPagoRequest struct {
	Nombre     string          `json:"nombre"      validate:"required,min=2,max=50"`
	RecargoPct decimal.Decimal `json:"recargo_pct" validate:"min=0,max=100"`
}

type ActualizarMetodoPagoRequest struct {
	Nombre     *string          `json:"nombre"      validate:"omitempty,min=2,max=50"`
	RecargoPct *decimal.Decimal `json:"recargo_pct"`
}

type MetodoPagoResponse struct {
	ID         uuid.UUID       `json:"id"`
	Nombre     string          `json:"nombre"`
	RecargoPct decimal.Decimal `json:"recargo_pct"`
	Activo     bool            `json:"activo"`
}

// ── Zonas de impresión ────────────────────────────────────────────────────────

type CrearZonaRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=2,max=50"`
	Impresora string `json:"impresora" validate:"required"`
}

type ActualizarZonaRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2,max=50"`
	Impresora *string `json:"impresora"`
}

type ZonaResponse struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	Impresora string    `json:"impresora"`
	Activo    bool      `json:"activo"`
}

// ── Comercio ──────────────────────────────────────────────────────────────────

type ActualizarComercioRequest struct {
	Nombre        *string `json:"nombre" validate:"omitempty,min=2,max=120"`
	Direccion     *string `json:"direccion"`
	Telefono      *string `json:"telefono"`
	Email         *string `json:"email" validate:"omitempty,email"`
	CUIT          *string `json:"cuit"`
	LeyendaTicket *string `json:"leyenda_ticket"`
}

type ComercioResponse struct {
	ID            uuid.UUID `json:"id"`
	Nombre        string    `json:"nombre"`
	Direccion     *string   `json:"direccion,omitempty"`
	Telefono      *string   `json:"telefono,omitempty"`
	Email         *string   `json:"email,omitempty"`
	CUIT          *string   `json:"cuit,omitempty"`
	LeyendaTicket *string   `json:"leyenda_ticket,omitempty"`
}
