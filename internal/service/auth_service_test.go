package service

import (
	"context"
	"testing"

	"github.com/GreennWolf/Antojos-sub000/internal/config"
	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/middleware"
	"github.com/GreennWolf/Antojos-sub000/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── In-memory UsuarioRepository stub ─────────────────────────────────────────

type stubUsuarioRepo struct {
	porID     map[uuid.UUID]*model.Usuario
	porCodigo map[string]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{
		porID:     make(map[uuid.UUID]*model.Usuario),
		porCodigo: make(map[string]*model.Usuario),
	}
}

func (r *stubUsuarioRepo) Crear(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.porID[u.ID] = u
	r.porCodigo[u.Codigo] = u
	return nil
}

func (r *stubUsuarioRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.porID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) ObtenerPorCodigo(_ context.Context, codigo string) (*model.Usuario, error) {
	u, ok := r.porCodigo[codigo]
	if !ok || !u.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) Listar(_ context.Context, _ bool) ([]model.Usuario, error) {
	return nil, errNotImplemented
}
func (r *stubUsuarioRepo) Actualizar(_ context.Context, _ *model.Usuario) error {
	return errNotImplemented
}
func (r *stubUsuarioRepo) CambiarActivo(_ context.Context, _ uuid.UUID, _ bool) error {
	return errNotImplemented
}
func (r *stubUsuarioRepo) CrearRol(_ context.Context, _ *model.Rol) error { return errNotImplemented }
func (r *stubUsuarioRepo) ObtenerRol(_ context.Context, _ uuid.UUID) (*model.Rol, error) {
	return nil, errNotImplemented
}
func (r *stubUsuarioRepo) ListarRoles(_ context.Context) ([]model.Rol, error) {
	return nil, errNotImplemented
}
func (r *stubUsuarioRepo) ActualizarRol(_ context.Context, _ *model.Rol) error {
	return errNotImplemented
}
func (r *stubUsuarioRepo) CambiarActivoRol(_ context.Context, _ uuid.UUID, _ bool) error {
	return errNotImplemented
}

// ── Fixture ──────────────────────────────────────────────────────────────────

const testSecret = "test-secret"

func newAuthFixture(t *testing.T) (AuthService, *stubUsuarioRepo, *model.Usuario) {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("secreto"), bcrypt.MinCost)
	require.NoError(t, err)
	pinHash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newStubUsuarioRepo()
	u := &model.Usuario{
		Nombre:       "Caro",
		Codigo:       "12",
		PasswordHash: string(passwordHash),
		PINHash:      string(pinHash),
		Activo:       true,
		Rol: &model.Rol{
			Nombre:                "encargado",
			PuedeQuitarLineas:     true,
			PuedeAplicarDescuento: false,
			PuedeCerrarMesas:      true,
		},
	}
	require.NoError(t, repo.Crear(context.Background(), u))

	cfg := &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 12,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo, u
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokenConPermisos(t *testing.T) {
	svc, _, u := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Codigo: "12", Password: "secreto"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, u.Nombre, resp.User.Nombre)
	assert.NotEmpty(t, resp.RefreshToken)

	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, "encargado", claims.Rol)
	assert.True(t, claims.Permisos.QuitarLineas)
	assert.False(t, claims.Permisos.AplicarDescuento)
	assert.True(t, claims.Permisos.CerrarMesas)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Codigo: "12", Password: "otra"})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestLogin_CodigoDesconocidoMismoError(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	// Unknown code and bad password are indistinguishable to the caller
	_, err := svc.Login(context.Background(), dto.LoginRequest{Codigo: "99", Password: "secreto"})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	svc, _, u := newAuthFixture(t)
	u.Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{Codigo: "12", Password: "secreto"})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

// ── Refresh ──────────────────────────────────────────────────────────────────

func TestRefresh_EmiteNuevosTokens(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Codigo: "12", Password: "secreto"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, login.User.ID, renovado.User.ID)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, ErrRefreshInvalido)
}

func TestRefresh_UsuarioDesactivado(t *testing.T) {
	svc, _, u := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Codigo: "12", Password: "secreto"})
	require.NoError(t, err)

	u.Activo = false
	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshInvalido)
}

// ── VerificarPIN ─────────────────────────────────────────────────────────────

func TestVerificarPIN(t *testing.T) {
	svc, _, u := newAuthFixture(t)
	ctx := context.Background()

	verificado, err := svc.VerificarPIN(ctx, u.ID, "4321")
	require.NoError(t, err)
	assert.Equal(t, u.ID, verificado.ID)

	_, err = svc.VerificarPIN(ctx, u.ID, "0000")
	assert.ErrorIs(t, err, ErrPINInvalido)

	_, err = svc.VerificarPIN(ctx, uuid.New(), "4321")
	assert.ErrorIs(t, err, ErrPINInvalido)
}
