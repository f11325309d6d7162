package repository

import (
	"context"

	"github.com/GreennWolf/Antojos-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaRepository covers both menu categories and their subcategories.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type CategoriaRepository interface {
	Crear(ctx context.Context, c *model.Categoria) error
	Listar(ctx context.Context, incluirInactivas bool) ([]model.Categoria, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	Actualizar(ctx context.Context, c *model.Categoria) error
	CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error

	CrearSub(ctx context.Context, s *model.SubCategoria) error
	ListarSubs(ctx context.Context, categoriaID *uuid.UUID) ([]model.SubCategoria, error)
	ObtenerSubPorID(ctx context.Context, id uuid.UUID) (*model.SubCategoria, error)
	ActualizarSub(ctx context.Context, s *model.SubCategoria) error
	ReemplazarIngredientesPermitidos(ctx context.Context, s *model.SubCategoria, ingredientes []model.Ingrediente) error
	CambiarActivoSub(ctx context.Context, id uuid.UUID, activo bool) error
}

type categoriaRepository struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepository{db: db}
}

func (r *categoriaRepository) Crear(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepository) Listar(ctx context.Context, incluirInactivas bool) ([]model.Categoria, error) {
	var list []model.Categoria
	q := r.db.WithContext(ctx).Order("orden asc, nombre asc")
	if !incluirInactivas {
		q = q.Where("activo = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *categoriaRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepository) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepository) Actualizar(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepository) CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Categoria{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *categoriaRepository) CrearSub(ctx context.Context, s *model.SubCategoria) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *categoriaRepository) ListarSubs(ctx context.Context, categoriaID *uuid.UUID) ([]model.SubCategoria, error) {
	var list []model.SubCategoria
	q := r.db.WithContext(ctx).Preload("IngredientesPermitidos").Order("orden asc, nombre asc")
	if categoriaID != nil {
		q = q.Where("categoria_id = ?", *categoriaID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *categoriaRepository) ObtenerSubPorID(ctx context.Context, id uuid.UUID) (*model.SubCategoria, error) {
	var s model.SubCategoria
	err := r.db.WithContext(ctx).Preload("IngredientesPermitidos").First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *categoriaRepository) ActualizarSub(ctx context.Context, s *model.SubCategoria) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *categoriaRepository) ReemplazarIngredientesPermitidos(ctx context.Context, s *model.SubCategoria, ingredientes []model.Ingrediente) error {
	return r.db.WithContext(ctx).Model(s).Association("IngredientesPermitidos").Replace(ingredientes)
}

func (r *categoriaRepository) CambiarActivoSub(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.SubCategoria{}).Where("id = ?", id).Update("activo", activo).Error
}
