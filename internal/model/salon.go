package model

import (
	"time"

	"github.com/google/uuid"
)

// Salon is a dining room or section of the floor plan.
type Salon struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Orden     int       `gorm:"not null;default:0"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Salon) TableName() string { return "salones" }

// Mesa estados
const (
	MesaLibre   = "libre"
	MesaAbierta = "abierta"
)

// Mesa is a physical table. Estado flips to abierta while a draft ticket
// exists for it and back to libre when the ticket closes or is merged away.
type Mesa struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalonID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_salon_numero;not null"`
	Numero    int       `gorm:"uniqueIndex:idx_salon_numero;not null"`
	Capacidad int       `gorm:"not null;default:4"`
	Estado    string    `gorm:"type:varchar(20);not null;default:'libre'"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Salon *Salon `gorm:"foreignKey:SalonID"`
}

func (Mesa) TableName() string { return "mesas" }
