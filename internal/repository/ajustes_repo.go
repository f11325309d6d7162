package repository

import (
	"context"

	"github.com/GreennWolf/Antojos-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AjustesRepository groups the small configuration tables: payment methods,
// print zones and the single business profile row.
type AjustesRepository interface {
	CrearMetodoPago(ctx context.Context, m *model.MetodoPago) error
	ObtenerMetodoPago(ctx context.Context, id uuid.UUID) (*model.MetodoPago, error)
	ListarMetodosPago(ctx context.Context) ([]model.MetodoPago, error)
	ActualizarMetodoPago(ctx context.Context, m *model.MetodoPago) error
	CambiarActivoMetodoPago(ctx context.Context, id uuid.UUID, activo bool) error

	CrearZona(ctx context.Context, z *model.ZonaImpresion) error
	ObtenerZona(ctx context.Context, id uuid.UUID) (*model.ZonaImpresion, error)
	ObtenerZonas(ctx context.Context, ids []uuid.UUID) ([]model.ZonaImpresion, error)
	ListarZonas(ctx context.Context) ([]model.ZonaImpresion, error)
	ActualizarZona(ctx context.Context, z *model.ZonaImpresion) error
	CambiarActivoZona(ctx context.Context, id uuid.UUID, activo bool) error

	ObtenerComercio(ctx context.Context) (*model.Comercio, error)
	GuardarComercio(ctx context.Context, c *model.Comercio) error
}

type ajustesRepo struct{ db *gorm.DB }

func NewAjustesRepository(db *gorm.DB) AjustesRepository { return &ajustesRepo{db: db} }

func (r *ajustesRepo) CrearMetodoPago(ctx context.Context, m *model.MetodoPago) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ajustesRepo) ObtenerMetodoPago(ctx context.Context, id uuid.UUID) (*model.MetodoPago, error) {
	var m model.MetodoPago
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ajustesRepo) ListarMetodosPago(ctx context.Context) ([]model.MetodoPago, error) {
	var list []model.MetodoPago
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *ajustesRepo) ActualizarMetodoPago(ctx context.Context, m *model.MetodoPago) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *ajustesRepo) CambiarActivoMetodoPago(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.MetodoPago{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *ajustesRepo) CrearZona(ctx context.Context, z *model.ZonaImpresion) error {
	return r.db.WithContext(ctx).Create(z).Error
}

func (r *ajustesRepo) ObtenerZona(ctx context.Context, id uuid.UUID) (*model.ZonaImpresion, error) {
	var z model.ZonaImpresion
	err := r.db.WithContext(ctx).First(&z, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *ajustesRepo) ObtenerZonas(ctx context.Context, ids []uuid.UUID) ([]model.ZonaImpresion, error) {
	var list []model.ZonaImpresion
	err := r.db.WithContext(ctx).Where("id IN ? AND activo = true", ids).Find(&list).Error
	return list, err
}

func (r *ajustesRepo) ListarZonas(ctx context.Context) ([]model.ZonaImpresion, error) {
	var list []model.ZonaImpresion
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *ajustesRepo) ActualizarZona(ctx context.Context, z *model.ZonaImpresion) error {
	return r.db.WithContext(ctx).Save(z).Error
}

func (r *ajustesRepo) CambiarActivoZona(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.ZonaImpresion{}).Where("id = ?", id).Update("activo", activo).Error
}

// ObtenerComercio returns the single business profile row, creating an empty
// one on first access so the settings screen always has something to edit.
func (r *ajustesRepo) ObtenerComercio(ctx context.Context) (*model.Comercio, error) {
	var c model.Comercio
	err := r.db.WithContext(ctx).First(&c).Error
	if err == gorm.ErrRecordNotFound {
		c = model.Comercio{Nombre: "Mi Comercio"}
		if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ajustesRepo) GuardarComercio(ctx context.Context, c *model.Comercio) error {
	return r.db.WithContext(ctx).Save(c).Error
}
