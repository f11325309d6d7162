package repository

import (
	"context"
	"errors"
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionStale signals an optimistic concurrency conflict: the draft was
// modified by someone else since the caller last read it.
var ErrVersionStale = errors.New("la mesa fue modificada por otro usuario")

type TicketRepository interface {
	CrearTemp(ctx context.Context, tt *model.TicketTemp) error
	ObtenerTempPorMesa(ctx context.Context, mesaID uuid.UUID) (*model.TicketTemp, error)
	ListarTemps(ctx context.Context) ([]model.TicketTemp, error)

	// ActualizarTemp persists the draft only if the stored version still
	// matches expectedVersion, bumping it by one. Returns ErrVersionStale
	// when another writer got there first.
	ActualizarTemp(ctx context.Context, tt *model.TicketTemp, expectedVersion int) error
	EliminarTemp(ctx context.Context, mesaID uuid.UUID) error
	EliminarTempTx(tx *gorm.DB, mesaID uuid.UUID) error

	CrearTicketTx(tx *gorm.DB, t *model.Ticket) error
	SiguienteNumeroTx(tx *gorm.DB) (int, error)
	ObtenerTicket(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	ListarTickets(ctx context.Context, desde, hasta *time.Time, estado string, page, limit int) ([]model.Ticket, int64, error)
	AnularTicket(ctx context.Context, id uuid.UUID) error

	CrearPrecuenta(ctx context.Context, p *model.Precuenta) error

	DB() *gorm.DB
}

type ticketRepo struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepo{db: db} }

func (r *ticketRepo) CrearTemp(ctx context.Context, tt *model.TicketTemp) error {
	return r.db.WithContext(ctx).Create(tt).Error
}

func (r *ticketRepo) ObtenerTempPorMesa(ctx context.Context, mesaID uuid.UUID) (*model.TicketTemp, error) {
	var tt model.TicketTemp
	err := r.db.WithContext(ctx).Where("mesa_id = ?", mesaID).First(&tt).Error
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *ticketRepo) ListarTemps(ctx context.Context) ([]model.TicketTemp, error) {
	var list []model.TicketTemp
	err := r.db.WithContext(ctx).Order("updated_at desc").Find(&list).Error
	return list, err
}

func (r *ticketRepo) ActualizarTemp(ctx context.Context, tt *model.TicketTemp, expectedVersion int) error {
	res := r.db.WithContext(ctx).Model(&model.TicketTemp{}).
		Where("id = ? AND version = ?", tt.ID, expectedVersion).
		Updates(map[string]interface{}{
			"pedido":    tt.Pedido,
			"subtotal":  tt.Subtotal,
			"descuento": tt.Descuento,
			"total":     tt.Total,
			"version":   expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionStale
	}
	tt.Version = expectedVersion + 1
	return nil
}

func (r *ticketRepo) EliminarTemp(ctx context.Context, mesaID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("mesa_id = ?", mesaID).Delete(&model.TicketTemp{}).Error
}

func (r *ticketRepo) EliminarTempTx(tx *gorm.DB, mesaID uuid.UUID) error {
	return tx.Where("mesa_id = ?", mesaID).Delete(&model.TicketTemp{}).Error
}

func (r *ticketRepo) CrearTicketTx(tx *gorm.DB, t *model.Ticket) error {
	return tx.Create(t).Error
}

// SiguienteNumeroTx reserves the next sequential ticket number. It locks the
// max row so two concurrent closes cannot take the same number.
func (r *ticketRepo) SiguienteNumeroTx(tx *gorm.DB) (int, error) {
	var max int
	err := tx.Raw("SELECT COALESCE(MAX(numero), 0) FROM tickets FOR UPDATE").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *ticketRepo) ObtenerTicket(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Mesa").Preload("Usuario").Preload("MetodoPago").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) ListarTickets(ctx context.Context, desde, hasta *time.Time, estado string, page, limit int) ([]model.Ticket, int64, error) {
	var tickets []model.Ticket
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Ticket{})
	if desde != nil {
		q = q.Where("created_at >= ?", *desde)
	}
	if hasta != nil {
		q = q.Where("created_at < ?", *hasta)
	}
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").Preload("Mesa").Preload("Usuario").Preload("MetodoPago").
		Order("numero desc").Limit(limit).Offset((page - 1) * limit).Find(&tickets).Error
	return tickets, total, err
}

func (r *ticketRepo) AnularTicket(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("id = ? AND estado = ?", id, model.TicketCerrado).
		Update("estado", model.TicketAnulado).Error
}

func (r *ticketRepo) CrearPrecuenta(ctx context.Context, p *model.Precuenta) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ticketRepo) DB() *gorm.DB { return r.db }
