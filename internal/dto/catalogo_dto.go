package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Categorías ────────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
	Orden       int     `json:"orden"       validate:"min=0"`
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
	Orden       *int    `json:"orden"       validate:"omitempty,min=0"`
}

type CategoriaResponse struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	Orden       int       `json:"orden"`
	Activo      bool      `json:"activo"`
}

// ── Subcategorías ─────────────────────────────────────────────────────────────

type CrearSubCategoriaRequest struct {
	CategoriaID  string          `json:"categoria_id" validate:"required,uuid"`
	Nombre       string          `json:"nombre"       validate:"required,min=2,max=100"`
	IVAPct       decimal.Decimal `json:"iva_pct"      validate:"min=0,max=100"`
	ZonaID       *string         `json:"zona_id"      validate:"omitempty,uuid"`
	Orden        int             `json:"orden"        validate:"min=0"`
	Ingredientes []string        `json:"ingredientes" validate:"omitempty,dive,uuid"`
}

type ActualizarSubCategoriaRequest struct {
	Nombre       *string          `json:"nombre"       validate:"omitempty,min=2,max=100"`
	IVAPct       *decimal.Decimal `json:"iva_pct"`
	ZonaID       *string          `json:"zona_id"      validate:"omitempty,uuid"`
	Orden        *int             `json:"orden"        validate:"omitempty,min=0"`
	Ingredientes []string         `json:"ingredientes" validate:"omitempty,dive,uuid"`
}

type SubCategoriaResponse struct {
	ID           uuid.UUID       `json:"id"`
	CategoriaID  uuid.UUID       `json:"categoria_id"`
	Nombre       string          `json:"nombre"`
	IVAPct       decimal.Decimal `json:"iva_pct"`
	ZonaID       *uuid.UUID      `json:"zona_id,omitempty"`
	Orden        int             `json:"orden"`
	Activo       bool            `json:"activo"`
	Ingredientes []uuid.UUID     `json:"ingredientes,omitempty"`
}

// ── Carta ─────────────────────────────────────────────────────────────────────
// Aggregated menu served to the order screen, cached in Redis.

type CartaResponse struct {
	Categorias []CartaCategoria `json:"categorias"`
}

type CartaCategoria struct {
	ID            uuid.UUID            `json:"id"`
	Nombre        string               `json:"nombre"`
	SubCategorias []CartaSubCategoria  `json:"subcategorias"`
}

type CartaSubCategoria struct {
	ID        uuid.UUID          `json:"id"`
	Nombre    string             `json:"nombre"`
	Productos []ProductoResponse `json:"productos"`
}
