package service

import (
	"context"
	"errors"

	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/model"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")
	ErrCodigoEnUso         = errors.New("el código ya está en uso")
	ErrRolNoEncontrado     = errors.New("rol no encontrado")
)

// UsuarioService manages staff accounts and their roles.
type UsuarioService interface {
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error

	CrearRol(ctx context.Context, req dto.CrearRolRequest) (*dto.RolResponse, error)
	ListarRoles(ctx context.Context) ([]dto.RolResponse, error)
	ActualizarRol(ctx context.Context, id uuid.UUID, req dto.ActualizarRolRequest) (*dto.RolResponse, error)
	CambiarActivoRol(ctx context.Context, id uuid.UUID, activo bool) error
}

type usuarioService struct {
	usuarios repository.UsuarioRepository
}

func NewUsuarioService(usuarios repository.UsuarioRepository) UsuarioService {
	return &usuarioService{usuarios: usuarios}
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.usuarios.ObtenerPorCodigo(ctx, req.Codigo); err == nil {
		return nil, ErrCodigoEnUso
	}

	rolID, err := uuid.Parse(req.RolID)
	if err != nil {
		return nil, ErrRolNoEncontrado
	}
	rol, err := s.usuarios.ObtenerRol(ctx, rolID)
	if err != nil {
		return nil, ErrRolNoEncontrado
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.Usuario{
		Nombre:       req.Nombre,
		Codigo:       req.Codigo,
		PasswordHash: string(passHash),
		PINHash:      string(pinHash),
		RolID:        rol.ID,
		Email:        req.Email,
		Activo:       true,
	}
	if err := s.usuarios.Crear(ctx, u); err != nil {
		return nil, err
	}
	u.Rol = rol
	resp := mapUsuario(u)
	return &resp, nil
}

func (s *usuarioService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.usuarios.Listar(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, mapUsuario(&usuarios[i]))
	}
	return out, nil
}

func (s *usuarioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	u, err := s.usuarios.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	resp := mapUsuario(u)
	return &resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := s.usuarios.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}

	if req.Nombre != nil {
		u.Nombre = *req.Nombre
	}
	if req.Email != nil {
		u.Email = req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if req.PIN != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.PIN), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PINHash = string(hash)
	}
	if req.RolID != nil {
		rolID, err := uuid.Parse(*req.RolID)
		if err != nil {
			return nil, ErrRolNoEncontrado
		}
		rol, err := s.usuarios.ObtenerRol(ctx, rolID)
		if err != nil {
			return nil, ErrRolNoEncontrado
		}
		u.RolID = rol.ID
		u.Rol = rol
	}

	if err := s.usuarios.Actualizar(ctx, u); err != nil {
		return nil, err
	}
	resp := mapUsuario(u)
	return &resp, nil
}

func (s *usuarioService) CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return s.usuarios.CambiarActivo(ctx, id, activo)
}

// ── Roles ─────────────────────────────────────────────────────────────────────

func (s *usuarioService) CrearRol(ctx context.Context, req dto.CrearRolRequest) (*dto.RolResponse, error) {
	rol := &model.Rol{
		Nombre:                req.Nombre,
		PuedeQuitarLineas:     req.PuedeQuitarLineas,
		PuedeAplicarDescuento: req.PuedeAplicarDescuento,
		PuedeCerrarMesas:      req.PuedeCerrarMesas,
		PuedeAdministrar:      req.PuedeAdministrar,
		Activo:                true,
	}
	if err := s.usuarios.CrearRol(ctx, rol); err != nil {
		return nil, err
	}
	resp := mapRol(rol)
	return &resp, nil
}

func (s *usuarioService) ListarRoles(ctx context.Context) ([]dto.RolResponse, error) {
	roles, err := s.usuarios.ListarRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RolResponse, 0, len(roles))
	for i := range roles {
		out = append(out, mapRol(&roles[i]))
	}
	return out, nil
}

func (s *usuarioService) ActualizarRol(ctx context.Context, id uuid.UUID, req dto.ActualizarRolRequest) (*dto.RolResponse, error) {
	rol, err := s.usuarios.ObtenerRol(ctx, id)
	if err != nil {
		return nil, ErrRolNoEncontrado
	}

	if req.Nombre != nil {
		rol.Nombre = *req.Nombre
	}
	if req.PuedeQuitarLineas != nil {
		rol.PuedeQuitarLineas = *req.PuedeQuitarLineas
	}
	if req.PuedeAplicarDescuento != nil {
		rol.PuedeAplicarDescuento = *req.PuedeAplicarDescuento
	}
	if req.PuedeCerrarMesas != nil {
		rol.PuedeCerrarMesas = *req.PuedeCerrarMesas
	}
	if req.PuedeAdministrar != nil {
		rol.PuedeAdministrar = *req.PuedeAdministrar
	}

	if err := s.usuarios.ActualizarRol(ctx, rol); err != nil {
		return nil, err
	}
	resp := mapRol(rol)
	return &resp, nil
}

func (s *usuarioService) CambiarActivoRol(ctx context.Context, id uuid.UUID, activo bool) error {
	return s.usuarios.CambiarActivoRol(ctx, id, activo)
}

func mapRol(r *model.Rol) dto.RolResponse {
	return dto.RolResponse{
		ID:                    r.ID,
		Nombre:                r.Nombre,
		PuedeQuitarLineas:     r.PuedeQuitarLineas,
		PuedeAplicarDescuento: r.PuedeAplicarDescuento,
		PuedeCerrarMesas:      r.PuedeCerrarMesas,
		PuedeAdministrar:      r.PuedeAdministrar,
		Activo:                r.Activo,
	}
}
