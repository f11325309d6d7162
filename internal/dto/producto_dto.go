package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RecetaItemRequest struct {
	IngredienteID string `json:"ingrediente_id" validate:"required,uuid"`
	Cantidad      int    `json:"cantidad"       validate:"required,min=1"`
	Unidad        string `json:"unidad"`
}

type CrearProductoRequest struct {
	Nombre         string              `json:"nombre"          validate:"required,min=2,max=120"`
	Descripcion    *string             `json:"descripcion"`
	SubCategoriaID string              `json:"subcategoria_id" validate:"required,uuid"`
	Precio         decimal.Decimal     `json:"precio"          validate:"required"`
	Costo          decimal.Decimal     `json:"costo"`
	ControlaStock  bool                `json:"controla_stock"`
	StockActual    int                 `json:"stock_actual"    validate:"min=0"`
	StockMinimo    int                 `json:"stock_minimo"    validate:"min=0"`
	Receta         []RecetaItemRequest `json:"receta"          validate:"omitempty,dive"`
	Relacionados   []string            `json:"relacionados"    validate:"omitempty,dive,uuid"`
}

type ActualizarProductoRequest struct {
	Nombre         *string             `json:"nombre"          validate:"omitempty,min=2,max=120"`
	Descripcion    *string             `json:"descripcion"`
	SubCategoriaID *string             `json:"subcategoria_id" validate:"omitempty,uuid"`
	Precio         *decimal.Decimal    `json:"precio"`
	Costo          *decimal.Decimal    `json:"costo"`
	ControlaStock  *bool               `json:"controla_stock"`
	StockActual    *int                `json:"stock_actual"    validate:"omitempty,min=0"`
	StockMinimo    *int                `json:"stock_minimo"    validate:"omitempty,min=0"`
	Receta         []RecetaItemRequest `json:"receta"          validate:"omitempty,dive"`
	Relacionados   []string            `json:"relacionados"    validate:"omitempty,dive,uuid"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre         string `form:"nombre"`
	SubCategoriaID string `form:"subcategoria_id"`
	Activo         string `form:"activo"` // "", "false", "all"
	Page           int    `form:"page,default=1"   validate:"min=1"`
	Limit          int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecetaItemResponse struct {
	IngredienteID uuid.UUID       `json:"ingrediente_id"`
	Nombre        string          `json:"nombre"`
	Precio        decimal.Decimal `json:"precio"`
	Cantidad      int             `json:"cantidad"`
	Unidad        string          `json:"unidad"`
}

type ProductoResponse struct {
	ID             uuid.UUID            `json:"id"`
	Nombre         string               `json:"nombre"`
	Descripcion    *string              `json:"descripcion,omitempty"`
	SubCategoriaID uuid.UUID            `json:"subcategoria_id"`
	Precio         decimal.Decimal      `json:"precio"`
	Costo          decimal.Decimal      `json:"costo"`
	ControlaStock  bool                 `json:"controla_stock"`
	StockActual    int                  `json:"stock_actual"`
	StockMinimo    int                  `json:"stock_minimo"`
	Activo         bool                 `json:"activo"`
	Receta         []RecetaItemResponse `json:"receta,omitempty"`
	Relacionados   []uuid.UUID          `json:"relacionados,omitempty"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
