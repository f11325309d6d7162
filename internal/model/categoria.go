package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Categoria is a top-level menu category (Bebidas, Pizzas, Postres…).
// Ingredients also hang off a Categoria so the order screen can group them.
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Orden       int  `gorm:"not null;default:0"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Categoria) TableName() string { return "categorias" }

// SubCategoria is a menu subcategory. It carries the tax rate applied to its
// products and the whitelist of ingredients a waiter may add to them.
type SubCategoria struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoriaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Nombre      string          `gorm:"not null"`
	IVAPct      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	// ZonaID routes this subcategory's products to a kitchen printer
	ZonaID    *uuid.UUID `gorm:"type:uuid;index"`
	Orden     int        `gorm:"not null;default:0"`
	Activo    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Categoria              *Categoria    `gorm:"foreignKey:CategoriaID"`
	IngredientesPermitidos []Ingrediente `gorm:"many2many:subcategoria_ingredientes"`
}

func (SubCategoria) TableName() string { return "subcategorias" }
