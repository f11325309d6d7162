package repository

import (
	"context"

	"github.com/GreennWolf/Antojos-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalonRepository interface {
	Crear(ctx context.Context, s *model.Salon) error
	Listar(ctx context.Context, incluirInactivos bool) ([]model.Salon, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Salon, error)
	Actualizar(ctx context.Context, s *model.Salon) error
	CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error

	CrearMesa(ctx context.Context, m *model.Mesa) error
	ObtenerMesa(ctx context.Context, id uuid.UUID) (*model.Mesa, error)
	ListarMesas(ctx context.Context, salonID *uuid.UUID) ([]model.Mesa, error)
	ActualizarMesa(ctx context.Context, m *model.Mesa) error
	CambiarEstadoMesa(ctx context.Context, id uuid.UUID, estado string) error
	CambiarEstadoMesaTx(tx *gorm.DB, id uuid.UUID, estado string) error
	CambiarActivoMesa(ctx context.Context, id uuid.UUID, activo bool) error
}

type salonRepo struct{ db *gorm.DB }

func NewSalonRepository(db *gorm.DB) SalonRepository { return &salonRepo{db: db} }

func (r *salonRepo) Crear(ctx context.Context, s *model.Salon) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *salonRepo) Listar(ctx context.Context, incluirInactivos bool) ([]model.Salon, error) {
	var list []model.Salon
	q := r.db.WithContext(ctx).
		Preload("Mesas", func(db *gorm.DB) *gorm.DB {
			return db.Where("activo = true").Order("numero asc")
		}).
		Order("orden asc, nombre asc")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *salonRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Salon, error) {
	var s model.Salon
	err := r.db.WithContext(ctx).Preload("Mesas").First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *salonRepo) Actualizar(ctx context.Context, s *model.Salon) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *salonRepo) CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Salon{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *salonRepo) CrearMesa(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *salonRepo) ObtenerMesa(ctx context.Context, id uuid.UUID) (*model.Mesa, error) {
	var m model.Mesa
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *salonRepo) ListarMesas(ctx context.Context, salonID *uuid.UUID) ([]model.Mesa, error) {
	var list []model.Mesa
	q := r.db.WithContext(ctx).Where("activo = true").Order("numero asc")
	if salonID != nil {
		q = q.Where("salon_id = ?", *salonID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *salonRepo) ActualizarMesa(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *salonRepo) CambiarEstadoMesa(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Mesa{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *salonRepo) CambiarEstadoMesaTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Mesa{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *salonRepo) CambiarActivoMesa(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Mesa{}).Where("id = ?", id).Update("activo", activo).Error
}
