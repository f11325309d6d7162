package repository

import (
	"context"

	"github.com/GreennWolf/Antojos-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Crear(ctx context.Context, u *model.Usuario) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*model.Usuario, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]model.Usuario, error)
	Actualizar(ctx context.Context, u *model.Usuario) error
	CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error

	CrearRol(ctx context.Context, rol *model.Rol) error
	ObtenerRol(ctx context.Context, id uuid.UUID) (*model.Rol, error)
	ListarRoles(ctx context.Context) ([]model.Rol, error)
	ActualizarRol(ctx context.Context, rol *model.Rol) error
	CambiarActivoRol(ctx context.Context, id uuid.UUID, activo bool) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Crear(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Rol").First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) ObtenerPorCodigo(ctx context.Context, codigo string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Rol").Where("codigo = ? AND activo = true", codigo).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) Listar(ctx context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var list []model.Usuario
	q := r.db.WithContext(ctx).Preload("Rol").Order("nombre asc")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *usuarioRepo) Actualizar(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *usuarioRepo) CrearRol(ctx context.Context, rol *model.Rol) error {
	return r.db.WithContext(ctx).Create(rol).Error
}

func (r *usuarioRepo) ObtenerRol(ctx context.Context, id uuid.UUID) (*model.Rol, error) {
	var rol model.Rol
	err := r.db.WithContext(ctx).First(&rol, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rol, nil
}

func (r *usuarioRepo) ListarRoles(ctx context.Context) ([]model.Rol, error) {
	var roles []model.Rol
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre asc").Find(&roles).Error
	return roles, err
}

func (r *usuarioRepo) ActualizarRol(ctx context.Context, rol *model.Rol) error {
	return r.db.WithContext(ctx).Save(rol).Error
}

func (r *usuarioRepo) CambiarActivoRol(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Rol{}).Where("id = ?", id).Update("activo", activo).Error
}
