package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CrearIngredienteRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2,max=100"`
	CategoriaID string          `json:"categoria_id" validate:"required,uuid"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	Costo       decimal.Decimal `json:"costo"        validate:"min=0"`
	StockActual int             `json:"stock_actual" validate:"min=0"`
	StockMinimo int             `json:"stock_minimo" validate:"min=0"`
	Unidad      string          `json:"unidad"`
}

type ActualizarIngredienteRequest struct {
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=2,max=100"`
	CategoriaID *string          `json:"categoria_id" validate:"omitempty,uuid"`
	Precio      *decimal.Decimal `json:"precio"`
	Costo       *decimal.Decimal `json:"costo"`
	StockActual *int             `json:"stock_actual" validate:"omitempty,min=0"`
	StockMinimo *int             `json:"stock_minimo" validate:"omitempty,min=0"`
	Unidad      *string          `json:"unidad"`
}

type IngredienteResponse struct {
	ID          uuid.UUID       `json:"id"`
	Nombre      string          `json:"nombre"`
	CategoriaID uuid.UUID       `json:"categoria_id"`
	Precio      decimal.Decimal `json:"precio"`
	Costo       decimal.Decimal `json:"costo"`
	StockActual int             `json:"stock_actual"`
	StockMinimo int             `json:"stock_minimo"`
	Unidad      string          `json:"unidad"`
	Activo      bool            `json:"activo"`
}
