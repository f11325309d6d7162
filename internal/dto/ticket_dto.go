package dto

import (
	"github.com/GreennWolf/Antojos-sub000/internal/pedido"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Draft (ticket temporal) requests ─────────────────────────────────────────
// Every mutation carries the draft Version the client last saw; a stale
// version gets a 409 so two waiters cannot silently overwrite each other.

type AbrirMesaRequest struct {
	Comensales int `json:"comensales" validate:"min=0"`
}

type AgregarLineaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
	Version    int    `json:"version"     validate:"required,min=1"`
}

type CambiarCantidadRequest struct {
	Cantidad int `json:"cantidad" validate:"min=0"`
	Version  int `json:"version"  validate:"required,min=1"`
}

type QuitarLineaRequest struct {
	PIN     string `json:"pin"     validate:"required,numeric,min=4,max=6"`
	Version int    `json:"version" validate:"required,min=1"`
}

type AgregarIngredienteRequest struct {
	IngredienteID string `json:"ingrediente_id" validate:"required,uuid"`
	Cantidad      int    `json:"cantidad"       validate:"required,min=1"`
	Version       int    `json:"version"        validate:"required,min=1"`
}

type QuitarIngredienteRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
	Version  int `json:"version"  validate:"required,min=1"`
}

type ObservacionRequest struct {
	Texto   string `json:"texto"   validate:"max=300"`
	Version int    `json:"version" validate:"required,min=1"`
}

type DescuentoRequest struct {
	DescuentoPct decimal.Decimal `json:"descuento_pct" validate:"min=0,max=100"`
	PIN          string          `json:"pin"           validate:"required,numeric,min=4,max=6"`
	Version      int             `json:"version"       validate:"required,min=1"`
}

// DividirRequest moves one unit of a line to another table per call —
// the UI clicks items across one at a time.
type DividirRequest struct {
	MesaDestinoID string `json:"mesa_destino_id" validate:"required,uuid"`
	LineaID       string `json:"linea_id"        validate:"required,uuid"`
	Version       int    `json:"version"         validate:"required,min=1"`
}

type JuntarRequest struct {
	MesaOrigenID string `json:"mesa_origen_id" validate:"required,uuid"`
	Version      int    `json:"version"        validate:"required,min=1"`
}

type CerrarMesaRequest struct {
	MetodoPagoID string  `json:"metodo_pago_id" validate:"required,uuid"`
	ClienteEmail *string `json:"cliente_email"  validate:"omitempty,email"`
	Version      int     `json:"version"        validate:"required,min=1"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

type TicketTempResponse struct {
	MesaID       uuid.UUID       `json:"mesa_id"`
	Lineas       []pedido.Linea  `json:"lineas"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DescuentoPct decimal.Decimal `json:"descuento_pct"`
	Total        decimal.Decimal `json:"total"`
	Comensales   int             `json:"comensales"`
	Version      int             `json:"version"`
}

// DividirResponse returns both sides after a unit move.
type DividirResponse struct {
	Origen  TicketTempResponse `json:"origen"`
	Destino TicketTempResponse `json:"destino"`
}

type TicketItemResponse struct {
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Total          decimal.Decimal `json:"total"`
	Observaciones  string          `json:"observaciones,omitempty"`
}

type TicketResponse struct {
	ID           string               `json:"id"`
	Numero       int                  `json:"numero"`
	MesaID       string               `json:"mesa_id"`
	Mozo         string               `json:"mozo"`
	MetodoPago   string               `json:"metodo_pago"`
	Items        []TicketItemResponse `json:"items"`
	Subtotal     decimal.Decimal      `json:"subtotal"`
	DescuentoPct decimal.Decimal      `json:"descuento_pct"`
	Total        decimal.Decimal      `json:"total"`
	Comensales   int                  `json:"comensales"`
	Estado       string               `json:"estado"`
	CreatedAt    string               `json:"created_at"`
}

type TicketFilter struct {
	Desde  string `form:"desde"`
	Hasta  string `form:"hasta"`
	Estado string `form:"estado"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type TicketListResponse struct {
	Data  []TicketResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type PrecuentaResponse struct {
	ID       string          `json:"id"`
	MesaID   string          `json:"mesa_id"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
	PDFPath  *string         `json:"pdf_path,omitempty"`
}
