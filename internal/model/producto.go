package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable menu item. Its recipe (Receta) lists the default
// ingredients bundled into the price; the order engine tracks per-line deltas
// against that baseline.
type Producto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"index;not null"`
	Descripcion    *string
	SubCategoriaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Precio         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Costo          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StockActual    int             `gorm:"not null;default:0"`
	StockMinimo    int             `gorm:"not null;default:0"`
	// ControlaStock: menu items prepared to order usually don't track stock
	ControlaStock bool `gorm:"not null;default:false"`
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	SubCategoria *SubCategoria         `gorm:"foreignKey:SubCategoriaID"`
	Receta       []RecetaItem          `gorm:"foreignKey:ProductoID"`
	Relacionados []ProductoRelacionado `gorm:"foreignKey:ProductoID"`
}

func (Producto) TableName() string { return "productos" }

// RecetaItem is one default-recipe entry: this ingredient ships with the
// product at Cantidad units, included in the product price.
type RecetaItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;index;not null"`
	IngredienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	Cantidad      int       `gorm:"not null;default:1"`
	Unidad        string    `gorm:"not null;default:'unidad'"`

	Ingrediente *Ingrediente `gorm:"foreignKey:IngredienteID"`
}

func (RecetaItem) TableName() string { return "receta_items" }

// ProductoRelacionado links a product to another it is commonly bundled or
// suggested with (combo side, matching drink).
type ProductoRelacionado struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_prod_relacionado;not null"`
	RelacionadoID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_prod_relacionado;not null"`

	Relacionado *Producto `gorm:"foreignKey:RelacionadoID"`
}

func (ProductoRelacionado) TableName() string { return "producto_relacionados" }
