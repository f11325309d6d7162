package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketTemp is the persisted snapshot of a table's open order. The live copy
// is served from the Redis draft store; this row is the durable mirror updated
// on every mutation so a restart never loses an open table.
// Version implements optimistic concurrency: two waiters editing the same
// table race on it and the stale write gets rejected.
type TicketTemp struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MesaID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null"`
	// Pedido is the serialized pedido.Pedido (lines + discount + totals)
	Pedido     []byte          `gorm:"type:jsonb;not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Descuento  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Comensales int             `gorm:"not null;default:0"`
	Version    int             `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TicketTemp) TableName() string { return "tickets_temps" }

// Ticket estados
const (
	TicketCerrado = "cerrado"
	TicketAnulado = "anulado"
)

// Ticket is a closed order: the immutable record written when a table pays.
type Ticket struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero       int       `gorm:"uniqueIndex;not null"`
	MesaID       uuid.UUID `gorm:"type:uuid;index;not null"`
	UsuarioID    uuid.UUID `gorm:"type:uuid;index;not null"`
	MetodoPagoID uuid.UUID `gorm:"type:uuid;not null"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DescuentoPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'cerrado'"`
	Comensales   int             `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items      []TicketItem `gorm:"foreignKey:TicketID"`
	Mesa       *Mesa        `gorm:"foreignKey:MesaID"`
	Usuario    *Usuario     `gorm:"foreignKey:UsuarioID"`
	MetodoPago *MetodoPago  `gorm:"foreignKey:MetodoPagoID"`
}

func (Ticket) TableName() string { return "tickets" }

// TicketItem is one closed-ticket line. Ingredientes keeps the serialized
// ingredient-delta detail so reprints show "sin cebolla / extra queso".
type TicketItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Nombre         string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Ingredientes   []byte          `gorm:"type:jsonb"`
	Observaciones  string
}

func (TicketItem) TableName() string { return "ticket_items" }

// Precuenta records a pre-bill handed to the table before payment.
type Precuenta struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MesaID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	UsuarioID uuid.UUID       `gorm:"type:uuid;not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PDFPath   *string
	CreatedAt time.Time
}

func (Precuenta) TableName() string { return "precuentas" }

// Impresion estados
const (
	ImpresionPendiente = "pendiente"
	ImpresionImpresa   = "impresa"
	ImpresionError     = "error"
)

// Impresion is a kitchen print job. Failed jobs are retried with exponential
// backoff by the retry cron; exhausted jobs move to the DLQ with estado error.
type Impresion struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID    *uuid.UUID `gorm:"type:uuid;index"`
	MesaID      uuid.UUID  `gorm:"type:uuid;not null"`
	ZonaID      uuid.UUID  `gorm:"type:uuid;not null"`
	Contenido   []byte     `gorm:"type:jsonb;not null"`
	Estado      string     `gorm:"type:varchar(20);not null;default:'pendiente'"`
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"index"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Zona *ZonaImpresion `gorm:"foreignKey:ZonaID"`
}

func (Impresion) TableName() string { return "impresiones" }
