package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingrediente is an addable/removable component. Precio is what a surplus unit
// costs the customer when added beyond a recipe's baseline.
type Ingrediente struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string          `gorm:"index;not null"`
	CategoriaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Costo       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StockActual int             `gorm:"not null;default:0"`
	StockMinimo int             `gorm:"not null;default:0"`
	Unidad      string          `gorm:"not null;default:'unidad'"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (Ingrediente) TableName() string { return "ingredientes" }
