package repository

import (
	"context"

	"github.com/GreennWolf/Antojos-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngredienteRepository interface {
	Crear(ctx context.Context, i *model.Ingrediente) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error)
	ObtenerPorIDs(ctx context.Context, ids []uuid.UUID) ([]model.Ingrediente, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]model.Ingrediente, error)
	Actualizar(ctx context.Context, i *model.Ingrediente) error
	CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
}

type ingredienteRepo struct{ db *gorm.DB }

func NewIngredienteRepository(db *gorm.DB) IngredienteRepository { return &ingredienteRepo{db: db} }

func (r *ingredienteRepo) Crear(ctx context.Context, i *model.Ingrediente) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredienteRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	var i model.Ingrediente
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ingredienteRepo) ObtenerPorIDs(ctx context.Context, ids []uuid.UUID) ([]model.Ingrediente, error) {
	var list []model.Ingrediente
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *ingredienteRepo) Listar(ctx context.Context, incluirInactivos bool) ([]model.Ingrediente, error) {
	var list []model.Ingrediente
	q := r.db.WithContext(ctx).Order("nombre asc")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *ingredienteRepo) Actualizar(ctx context.Context, i *model.Ingrediente) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingredienteRepo) CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Ingrediente{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *ingredienteRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.Ingrediente{}).
		Where("id = ? AND controla_stock = true", id).
		Update("stock_actual", gorm.Expr("stock_actual - ?", cantidad)).Error
}
