package model

import (
	"time"

	"github.com/google/uuid"
)

// Rol groups the permission flags for actions the UI gates behind a PIN.
type Rol struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
	// Permission flags checked server-side on gated ticket actions
	PuedeQuitarLineas    bool `gorm:"not null;default:false"`
	PuedeAplicarDescuento bool `gorm:"not null;default:false"`
	PuedeCerrarMesas     bool `gorm:"not null;default:true"`
	PuedeAdministrar     bool `gorm:"not null;default:false"`
	Activo               bool `gorm:"not null;default:true"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Rol) TableName() string { return "roles" }

// Usuario is a staff member. Codigo is the short numeric login code punched on
// the keypad (2–4 digits, unique); PINHash guards destructive actions that
// require re-authorization per operation.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Codigo       string    `gorm:"uniqueIndex;not null;type:varchar(4)"`
	PasswordHash string    `gorm:"not null"`
	PINHash      string    `gorm:"not null"`
	RolID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Email        *string
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Rol *Rol `gorm:"foreignKey:RolID"`
}

func (Usuario) TableName() string { return "usuarios" }
