package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetodoPago is a payment method offered at close (efectivo, tarjeta…).
type MetodoPago struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	// RecargoPct applies a surcharge at close (e.g. card fees); 0 for most
	RecargoPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Activo     bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (MetodoPago) TableName() string { return "metodos_pago" }

// ZonaImpresion routes order lines to a kitchen printer (cocina, barra,
// parrilla). Subcategories are assigned to a zone; the print worker groups a
// closed or confirmed ticket's lines by zone and dispatches one job per zone.
type ZonaImpresion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	// Impresora is the printer name known to the print bridge
	Impresora string `gorm:"not null"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ZonaImpresion) TableName() string { return "zonas_impresion" }

// Comercio is the single business profile row printed on tickets.
type Comercio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Direccion *string
	Telefono  *string
	Email     *string
	CUIT      *string
	// LeyendaTicket is the footer line printed on every receipt
	LeyendaTicket *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Comercio) TableName() string { return "comercio" }
