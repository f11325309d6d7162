package repository

import (
	"context"

	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for menu products.
type ProductoRepository interface {
	Crear(ctx context.Context, p *model.Producto) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	ListarPorSubCategoria(ctx context.Context, subCategoriaID uuid.UUID) ([]model.Producto, error)
	Actualizar(ctx context.Context, p *model.Producto) error
	ReemplazarReceta(ctx context.Context, productoID uuid.UUID, receta []model.RecetaItem) error
	ReemplazarRelacionados(ctx context.Context, productoID uuid.UUID, relacionados []model.ProductoRelacionado) error
	CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error

	// Used inside transactions — callers must pass the tx instance
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Crear(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Receta.Ingrediente").
		Preload("Relacionados").
		Preload("SubCategoria").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	// Activo filter: "false" = inactivos, "all" = todos, anything else = activos (default)
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.SubCategoriaID != "" {
		q = q.Where("sub_categoria_id = ?", filter.SubCategoriaID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Receta.Ingrediente").Preload("Relacionados").
		Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) ListarPorSubCategoria(ctx context.Context, subCategoriaID uuid.UUID) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Preload("Receta.Ingrediente").
		Where("sub_categoria_id = ? AND activo = true", subCategoriaID).
		Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Actualizar(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Omit("Receta", "Relacionados").Save(p).Error
}

func (r *productoRepo) ReemplazarReceta(ctx context.Context, productoID uuid.UUID, receta []model.RecetaItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_id = ?", productoID).Delete(&model.RecetaItem{}).Error; err != nil {
			return err
		}
		if len(receta) == 0 {
			return nil
		}
		return tx.Create(&receta).Error
	})
}

func (r *productoRepo) ReemplazarRelacionados(ctx context.Context, productoID uuid.UUID, relacionados []model.ProductoRelacionado) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_id = ?", productoID).Delete(&model.ProductoRelacionado{}).Error; err != nil {
			return err
		}
		if len(relacionados) == 0 {
			return nil
		}
		return tx.Create(&relacionados).Error
	})
}

func (r *productoRepo) CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.Producto{}).
		Where("id = ? AND controla_stock = true", id).
		Update("stock_actual", gorm.Expr("stock_actual - ?", cantidad)).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
