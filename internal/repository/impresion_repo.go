package repository

import (
	"context"
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImpresionRepository interface {
	Crear(ctx context.Context, i *model.Impresion) error
	CrearTx(tx *gorm.DB, i *model.Impresion) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Impresion, error)

	// ListarPendientesRetry returns failed jobs whose backoff window expired.
	ListarPendientesRetry(ctx context.Context, limit int) ([]model.Impresion, error)
	MarcarImpresa(ctx context.Context, id uuid.UUID) error
	MarcarFallida(ctx context.Context, id uuid.UUID, errMsg string, nextRetry *time.Time) error
	MarcarError(ctx context.Context, id uuid.UUID, errMsg string) error
	ListarErrores(ctx context.Context, limit int) ([]model.Impresion, error)
}

type impresionRepo struct{ db *gorm.DB }

func NewImpresionRepository(db *gorm.DB) ImpresionRepository { return &impresionRepo{db: db} }

func (r *impresionRepo) Crear(ctx context.Context, i *model.Impresion) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *impresionRepo) CrearTx(tx *gorm.DB, i *model.Impresion) error {
	return tx.Create(i).Error
}

func (r *impresionRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Impresion, error) {
	var i model.Impresion
	err := r.db.WithContext(ctx).Preload("Zona").First(&i, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *impresionRepo) ListarPendientesRetry(ctx context.Context, limit int) ([]model.Impresion, error) {
	var list []model.Impresion
	err := r.db.WithContext(ctx).Preload("Zona").
		Where("estado = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.ImpresionPendiente, time.Now()).
		Order("next_retry_at asc").Limit(limit).Find(&list).Error
	return list, err
}

func (r *impresionRepo) MarcarImpresa(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Impresion{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"estado":        model.ImpresionImpresa,
			"next_retry_at": nil,
			"last_error":    nil,
		}).Error
}

func (r *impresionRepo) MarcarFallida(ctx context.Context, id uuid.UUID, errMsg string, nextRetry *time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Impresion{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"estado":        model.ImpresionPendiente,
			"retry_count":   gorm.Expr("retry_count + 1"),
			"next_retry_at": nextRetry,
			"last_error":    errMsg,
		}).Error
}

func (r *impresionRepo) MarcarError(ctx context.Context, id uuid.UUID, errMsg string) error {
	return r.db.WithContext(ctx).Model(&model.Impresion{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"estado":        model.ImpresionError,
			"next_retry_at": nil,
			"last_error":    errMsg,
		}).Error
}

func (r *impresionRepo) ListarErrores(ctx context.Context, limit int) ([]model.Impresion, error) {
	var list []model.Impresion
	err := r.db.WithContext(ctx).Preload("Zona").
		Where("estado = ?", model.ImpresionError).
		Order("updated_at desc").Limit(limit).Find(&list).Error
	return list, err
}
