package service

import (
	"context"
	"errors"
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/config"
	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/middleware"
	"github.com/GreennWolf/Antojos-sub000/internal/model"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCredencialesInvalidas = errors.New("código o contraseña incorrectos")
	ErrPINInvalido           = errors.New("PIN incorrecto")
	ErrRefreshInvalido       = errors.New("refresh token inválido o expirado")
)

// AuthService authenticates staff by numeric code and issues JWTs carrying the
// role's permission flags. VerificarPIN re-authorizes gated ticket actions.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	VerificarPIN(ctx context.Context, usuarioID uuid.UUID, pin string) (*model.Usuario, error)
}

type authService struct {
	usuarios repository.UsuarioRepository
	cfg      *config.Config
}

func NewAuthService(usuarios repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{usuarios: usuarios, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.usuarios.ObtenerPorCodigo(ctx, req.Codigo)
	if err != nil {
		// Same error for unknown code and bad password
		return nil, ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}
	return s.emitirTokens(u)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrRefreshInvalido
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrRefreshInvalido
	}
	u, err := s.usuarios.ObtenerPorID(ctx, id)
	if err != nil || !u.Activo {
		return nil, ErrRefreshInvalido
	}
	return s.emitirTokens(u)
}

func (s *authService) VerificarPIN(ctx context.Context, usuarioID uuid.UUID, pin string) (*model.Usuario, error) {
	u, err := s.usuarios.ObtenerPorID(ctx, usuarioID)
	if err != nil {
		return nil, ErrPINInvalido
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PINHash), []byte(pin)); err != nil {
		return nil, ErrPINInvalido
	}
	return u, nil
}

func (s *authService) emitirTokens(u *model.Usuario) (*dto.LoginResponse, error) {
	now := time.Now()
	expira := now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)

	rol := ""
	permisos := middleware.Permisos{}
	if u.Rol != nil {
		rol = u.Rol.Nombre
		permisos = middleware.Permisos{
			QuitarLineas:     u.Rol.PuedeQuitarLineas,
			AplicarDescuento: u.Rol.PuedeAplicarDescuento,
			CerrarMesas:      u.Rol.PuedeCerrarMesas,
			Administrar:      u.Rol.PuedeAdministrar,
		}
	}

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.JWTClaims{
		UserID:   u.ID.String(),
		Codigo:   u.Codigo,
		Nombre:   u.Nombre,
		Rol:      rol,
		Permisos: permisos,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expira),
		},
	})
	accessStr, err := access.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWTRefreshHours) * time.Hour)),
	})
	refreshStr, err := refresh.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessStr,
		RefreshToken: refreshStr,
		TokenType:    "bearer",
		ExpiresIn:    int(expira.Sub(now).Seconds()),
		User:         mapUsuario(u),
	}, nil
}

func mapUsuario(u *model.Usuario) dto.UsuarioResponse {
	rol := ""
	if u.Rol != nil {
		rol = u.Rol.Nombre
	}
	return dto.UsuarioResponse{
		ID:     u.ID.String(),
		Nombre: u.Nombre,
		Codigo: u.Codigo,
		Rol:    rol,
		Email:  u.Email,
		Activo: u.Activo,
	}
}
