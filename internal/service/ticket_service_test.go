package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/config"
	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/model"
	"github.com/GreennWolf/Antojos-sub000/internal/pedido"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errNotImplemented = errors.New("not implemented in stub")

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ── In-memory TicketRepository stub ──────────────────────────────────────────

type stubTicketRepo struct {
	temps map[uuid.UUID]*model.TicketTemp // keyed by mesa
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{temps: make(map[uuid.UUID]*model.TicketTemp)}
}

func (r *stubTicketRepo) CrearTemp(_ context.Context, tt *model.TicketTemp) error {
	if tt.ID == uuid.Nil {
		tt.ID = uuid.New()
	}
	cloned := *tt
	r.temps[tt.MesaID] = &cloned
	return nil
}

func (r *stubTicketRepo) ObtenerTempPorMesa(_ context.Context, mesaID uuid.UUID) (*model.TicketTemp, error) {
	tt, ok := r.temps[mesaID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *tt
	return &cloned, nil
}

func (r *stubTicketRepo) ListarTemps(_ context.Context) ([]model.TicketTemp, error) {
	out := make([]model.TicketTemp, 0, len(r.temps))
	for _, tt := range r.temps {
		out = append(out, *tt)
	}
	return out, nil
}

func (r *stubTicketRepo) ActualizarTemp(_ context.Context, tt *model.TicketTemp, expectedVersion int) error {
	stored, ok := r.temps[tt.MesaID]
	if !ok || stored.Version != expectedVersion {
		return repository.ErrVersionStale
	}
	tt.Version = expectedVersion + 1
	cloned := *tt
	r.temps[tt.MesaID] = &cloned
	return nil
}

func (r *stubTicketRepo) EliminarTemp(_ context.Context, mesaID uuid.UUID) error {
	delete(r.temps, mesaID)
	return nil
}

func (r *stubTicketRepo) EliminarTempTx(_ *gorm.DB, mesaID uuid.UUID) error {
	delete(r.temps, mesaID)
	return nil
}

func (r *stubTicketRepo) CrearTicketTx(_ *gorm.DB, _ *model.Ticket) error { return errNotImplemented }
func (r *stubTicketRepo) SiguienteNumeroTx(_ *gorm.DB) (int, error)       { return 0, errNotImplemented }
func (r *stubTicketRepo) ObtenerTicket(_ context.Context, _ uuid.UUID) (*model.Ticket, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubTicketRepo) ListarTickets(_ context.Context, _, _ *time.Time, _ string, _, _ int) ([]model.Ticket, int64, error) {
	return nil, 0, errNotImplemented
}
func (r *stubTicketRepo) AnularTicket(_ context.Context, _ uuid.UUID) error { return errNotImplemented }
func (r *stubTicketRepo) CrearPrecuenta(_ context.Context, _ *model.Precuenta) error {
	return errNotImplemented
}
func (r *stubTicketRepo) DB() *gorm.DB { return nil }

// ── In-memory BorradorRepository stub ────────────────────────────────────────

type stubBorradorRepo struct {
	borradores map[uuid.UUID]*repository.Borrador
}

func newStubBorradorRepo() *stubBorradorRepo {
	return &stubBorradorRepo{borradores: make(map[uuid.UUID]*repository.Borrador)}
}

func (r *stubBorradorRepo) Guardar(_ context.Context, b *repository.Borrador) error {
	cloned := *b
	r.borradores[b.MesaID] = &cloned
	return nil
}

func (r *stubBorradorRepo) Obtener(_ context.Context, mesaID uuid.UUID) (*repository.Borrador, error) {
	b, ok := r.borradores[mesaID]
	if !ok {
		return nil, nil // cache miss
	}
	cloned := *b
	return &cloned, nil
}

func (r *stubBorradorRepo) Eliminar(_ context.Context, mesaID uuid.UUID) error {
	delete(r.borradores, mesaID)
	return nil
}

// ── In-memory SalonRepository stub ───────────────────────────────────────────

type stubSalonRepo struct {
	mesas map[uuid.UUID]*model.Mesa
}

func newStubSalonRepo() *stubSalonRepo {
	return &stubSalonRepo{mesas: make(map[uuid.UUID]*model.Mesa)}
}

func (r *stubSalonRepo) Crear(_ context.Context, _ *model.Salon) error { return errNotImplemented }
func (r *stubSalonRepo) Listar(_ context.Context, _ bool) ([]model.Salon, error) {
	return nil, errNotImplemented
}
func (r *stubSalonRepo) ObtenerPorID(_ context.Context, _ uuid.UUID) (*model.Salon, error) {
	return nil, errNotImplemented
}
func (r *stubSalonRepo) Actualizar(_ context.Context, _ *model.Salon) error { return errNotImplemented }
func (r *stubSalonRepo) CambiarActivo(_ context.Context, _ uuid.UUID, _ bool) error {
	return errNotImplemented
}

func (r *stubSalonRepo) CrearMesa(_ context.Context, m *model.Mesa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cloned := *m
	r.mesas[m.ID] = &cloned
	return nil
}

func (r *stubSalonRepo) ObtenerMesa(_ context.Context, id uuid.UUID) (*model.Mesa, error) {
	m, ok := r.mesas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *m
	return &cloned, nil
}

func (r *stubSalonRepo) ListarMesas(_ context.Context, _ *uuid.UUID) ([]model.Mesa, error) {
	return nil, errNotImplemented
}
func (r *stubSalonRepo) ActualizarMesa(_ context.Context, _ *model.Mesa) error {
	return errNotImplemented
}

func (r *stubSalonRepo) CambiarEstadoMesa(_ context.Context, id uuid.UUID, estado string) error {
	m, ok := r.mesas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Estado = estado
	return nil
}

func (r *stubSalonRepo) CambiarEstadoMesaTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	return r.CambiarEstadoMesa(context.Background(), id, estado)
}

func (r *stubSalonRepo) CambiarActivoMesa(_ context.Context, _ uuid.UUID, _ bool) error {
	return errNotImplemented
}

// ── In-memory ProductoRepository stub ────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Crear(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) Listar(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	return nil, 0, errNotImplemented
}
func (r *stubProductoRepo) ListarPorSubCategoria(_ context.Context, _ uuid.UUID) ([]model.Producto, error) {
	return nil, errNotImplemented
}
func (r *stubProductoRepo) Actualizar(_ context.Context, _ *model.Producto) error {
	return errNotImplemented
}
func (r *stubProductoRepo) ReemplazarReceta(_ context.Context, _ uuid.UUID, _ []model.RecetaItem) error {
	return errNotImplemented
}
func (r *stubProductoRepo) ReemplazarRelacionados(_ context.Context, _ uuid.UUID, _ []model.ProductoRelacionado) error {
	return errNotImplemented
}
func (r *stubProductoRepo) CambiarActivo(_ context.Context, _ uuid.UUID, _ bool) error {
	return errNotImplemented
}
func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, _ uuid.UUID, _ int) error { return nil }
func (r *stubProductoRepo) DB() *gorm.DB                                          { return nil }

// ── In-memory IngredienteRepository stub ─────────────────────────────────────

type stubIngredienteRepo struct {
	ingredientes map[uuid.UUID]*model.Ingrediente
}

func newStubIngredienteRepo() *stubIngredienteRepo {
	return &stubIngredienteRepo{ingredientes: make(map[uuid.UUID]*model.Ingrediente)}
}

func (r *stubIngredienteRepo) Crear(_ context.Context, i *model.Ingrediente) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.ingredientes[i.ID] = i
	return nil
}

func (r *stubIngredienteRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	i, ok := r.ingredientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubIngredienteRepo) ObtenerPorIDs(_ context.Context, _ []uuid.UUID) ([]model.Ingrediente, error) {
	return nil, errNotImplemented
}
func (r *stubIngredienteRepo) Listar(_ context.Context, _ bool) ([]model.Ingrediente, error) {
	return nil, errNotImplemented
}
func (r *stubIngredienteRepo) Actualizar(_ context.Context, _ *model.Ingrediente) error {
	return errNotImplemented
}
func (r *stubIngredienteRepo) CambiarActivo(_ context.Context, _ uuid.UUID, _ bool) error {
	return errNotImplemented
}
func (r *stubIngredienteRepo) DescontarStockTx(_ *gorm.DB, _ uuid.UUID, _ int) error { return nil }

// ── In-memory CategoriaRepository stub ───────────────────────────────────────

type stubCategoriaRepo struct {
	subs map[uuid.UUID]*model.SubCategoria
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{subs: make(map[uuid.UUID]*model.SubCategoria)}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, _ *model.Categoria) error {
	return errNotImplemented
}
func (r *stubCategoriaRepo) Listar(_ context.Context, _ bool) ([]model.Categoria, error) {
	return nil, errNotImplemented
}
func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, _ uuid.UUID) (*model.Categoria, error) {
	return nil, errNotImplemented
}
func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, _ string) (*model.Categoria, error) {
	return nil, errNotImplemented
}
func (r *stubCategoriaRepo) Actualizar(_ context.Context, _ *model.Categoria) error {
	return errNotImplemented
}
func (r *stubCategoriaRepo) CambiarActivo(_ context.Context, _ uuid.UUID, _ bool) error {
	return errNotImplemented
}

func (r *stubCategoriaRepo) CrearSub(_ context.Context, s *model.SubCategoria) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.subs[s.ID] = s
	return nil
}

func (r *stubCategoriaRepo) ListarSubs(_ context.Context, _ *uuid.UUID) ([]model.SubCategoria, error) {
	return nil, errNotImplemented
}

func (r *stubCategoriaRepo) ObtenerSubPorID(_ context.Context, id uuid.UUID) (*model.SubCategoria, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubCategoriaRepo) ActualizarSub(_ context.Context, _ *model.SubCategoria) error {
	return errNotImplemented
}
func (r *stubCategoriaRepo) ReemplazarIngredientesPermitidos(_ context.Context, _ *model.SubCategoria, _ []model.Ingrediente) error {
	return errNotImplemented
}
func (r *stubCategoriaRepo) CambiarActivoSub(_ context.Context, _ uuid.UUID, _ bool) error {
	return errNotImplemented
}

// ── AuthService and Encolador stubs ──────────────────────────────────────────

type stubAuth struct {
	usuario *model.Usuario
	pin     string
}

func (s *stubAuth) Login(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, errNotImplemented
}
func (s *stubAuth) Refresh(_ context.Context, _ string) (*dto.LoginResponse, error) {
	return nil, errNotImplemented
}
func (s *stubAuth) VerificarPIN(_ context.Context, usuarioID uuid.UUID, pin string) (*model.Usuario, error) {
	if s.usuario == nil || s.usuario.ID != usuarioID || s.pin != pin {
		return nil, ErrPINInvalido
	}
	return s.usuario, nil
}

type stubEncolador struct {
	impresiones []uuid.UUID
	emails      []string
}

func (e *stubEncolador) EncolarImpresion(_ context.Context, id uuid.UUID) error {
	e.impresiones = append(e.impresiones, id)
	return nil
}

func (e *stubEncolador) EncolarEmail(_ context.Context, destinatario, _, _, _ string) error {
	e.emails = append(e.emails, destinatario)
	return nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type ticketFixture struct {
	svc          TicketService
	tickets      *stubTicketRepo
	borradores   *stubBorradorRepo
	salones      *stubSalonRepo
	productos    *stubProductoRepo
	ingredientes *stubIngredienteRepo
	categorias   *stubCategoriaRepo
	auth         *stubAuth
	encolador    *stubEncolador

	mesa  *model.Mesa
	mozo  *model.Usuario
	sub   *model.SubCategoria
	pizza *model.Producto
	queso *model.Ingrediente
	bacon *model.Ingrediente
	anana *model.Ingrediente
}

// newTicketFixture seeds a table, a waiter with full permissions (PIN 1234),
// and a pizza whose recipe bundles 2 units of cheese. Bacon is whitelisted for
// the pizza subcategory; pineapple is not.
func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	ctx := context.Background()

	f := &ticketFixture{
		tickets:      newStubTicketRepo(),
		borradores:   newStubBorradorRepo(),
		salones:      newStubSalonRepo(),
		productos:    newStubProductoRepo(),
		ingredientes: newStubIngredienteRepo(),
		categorias:   newStubCategoriaRepo(),
		encolador:    &stubEncolador{},
	}

	f.mesa = &model.Mesa{Numero: 4, Estado: model.MesaLibre, Activo: true}
	require.NoError(t, f.salones.CrearMesa(ctx, f.mesa))

	f.mozo = &model.Usuario{
		ID:     uuid.New(),
		Nombre: "Caro",
		Rol: &model.Rol{
			Nombre:                "encargado",
			PuedeQuitarLineas:     true,
			PuedeAplicarDescuento: true,
			PuedeCerrarMesas:      true,
		},
	}
	f.auth = &stubAuth{usuario: f.mozo, pin: "1234"}

	f.queso = &model.Ingrediente{Nombre: "Queso", Precio: dec("1.50"), Activo: true}
	f.bacon = &model.Ingrediente{Nombre: "Bacon", Precio: dec("2"), Activo: true}
	f.anana = &model.Ingrediente{Nombre: "Ananá", Precio: dec("1"), Activo: true}
	require.NoError(t, f.ingredientes.Crear(ctx, f.queso))
	require.NoError(t, f.ingredientes.Crear(ctx, f.bacon))
	require.NoError(t, f.ingredientes.Crear(ctx, f.anana))

	zona := uuid.New()
	f.sub = &model.SubCategoria{
		Nombre:                 "Pizzas",
		ZonaID:                 &zona,
		IngredientesPermitidos: []model.Ingrediente{*f.queso, *f.bacon},
	}
	require.NoError(t, f.categorias.CrearSub(ctx, f.sub))

	f.pizza = &model.Producto{
		Nombre:         "Pizza Muzzarella",
		SubCategoriaID: f.sub.ID,
		Precio:         dec("10"),
		Activo:         true,
		SubCategoria:   f.sub,
		Receta: []model.RecetaItem{
			{IngredienteID: f.queso.ID, Cantidad: 2, Unidad: "porción", Ingrediente: f.queso},
		},
	}
	require.NoError(t, f.productos.Crear(ctx, f.pizza))

	cfg := &config.Config{PDFStoragePath: t.TempDir()}
	f.svc = NewTicketService(
		f.tickets, f.borradores, nil, f.salones,
		f.productos, f.ingredientes, f.categorias, nil,
		f.auth, f.encolador, cfg,
	)
	return f
}

// abrirConPizza opens the fixture table and adds n pizzas, returning the
// current draft.
func (f *ticketFixture) abrirConPizza(t *testing.T, n int) *dto.TicketTempResponse {
	t.Helper()
	ctx := context.Background()
	resp, err := f.svc.AbrirMesa(ctx, f.mesa.ID, f.mozo.ID, dto.AbrirMesaRequest{})
	require.NoError(t, err)
	resp, err = f.svc.AgregarLinea(ctx, f.mesa.ID, dto.AgregarLineaRequest{
		ProductoID: f.pizza.ID.String(),
		Cantidad:   n,
		Version:    resp.Version,
	})
	require.NoError(t, err)
	return resp
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func TestAbrirMesa_CreaBorrador(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	resp, err := f.svc.AbrirMesa(ctx, f.mesa.ID, f.mozo.ID, dto.AbrirMesaRequest{Comensales: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Version)
	assert.Empty(t, resp.Lineas)
	assert.True(t, resp.Total.IsZero())
	assert.Equal(t, 2, resp.Comensales)

	mesa, err := f.salones.ObtenerMesa(ctx, f.mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaAbierta, mesa.Estado)
}

func TestAbrirMesa_PersisteComensales(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	resp, err := f.svc.AbrirMesa(ctx, f.mesa.ID, f.mozo.ID, dto.AbrirMesaRequest{Comensales: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Comensales)

	tt, err := f.tickets.ObtenerTempPorMesa(ctx, f.mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, tt.Comensales)

	// The head count survives draft mutations
	resp, err = f.svc.AgregarLinea(ctx, f.mesa.ID, dto.AgregarLineaRequest{
		ProductoID: f.pizza.ID.String(),
		Cantidad:   1,
		Version:    resp.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Comensales)
}

func TestAbrirMesa_Idempotente(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	primero := f.abrirConPizza(t, 1)

	// Opening again must return the existing draft, not reset it
	segundo, err := f.svc.AbrirMesa(ctx, f.mesa.ID, f.mozo.ID, dto.AbrirMesaRequest{})
	require.NoError(t, err)
	assert.Equal(t, primero.Version, segundo.Version)
	require.Len(t, segundo.Lineas, 1)
	assert.Equal(t, "Pizza Muzzarella", segundo.Lineas[0].Nombre)
}

func TestAbrirMesa_MesaInactiva(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	mesa := &model.Mesa{Numero: 9, Estado: model.MesaLibre, Activo: false}
	require.NoError(t, f.salones.CrearMesa(ctx, mesa))

	_, err := f.svc.AbrirMesa(ctx, mesa.ID, f.mozo.ID, dto.AbrirMesaRequest{})
	assert.ErrorIs(t, err, ErrMesaInactiva)
}

func TestObtener_SinTicket(t *testing.T) {
	f := newTicketFixture(t)
	_, err := f.svc.Obtener(context.Background(), f.mesa.ID)
	assert.ErrorIs(t, err, ErrMesaSinTicket)
}

func TestObtener_BorradorCorrupto(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	require.NoError(t, f.tickets.CrearTemp(ctx, &model.TicketTemp{
		MesaID:    f.mesa.ID,
		UsuarioID: f.mozo.ID,
		Pedido:    []byte("{not json"),
		Version:   1,
	}))

	_, err := f.svc.Obtener(ctx, f.mesa.ID)
	assert.ErrorIs(t, err, ErrBorradorCorrupto)
}

// ── Composition ──────────────────────────────────────────────────────────────

func TestAgregarLinea_ConRecetaYZona(t *testing.T) {
	f := newTicketFixture(t)

	resp := f.abrirConPizza(t, 2)

	require.Len(t, resp.Lineas, 1)
	l := resp.Lineas[0]
	assert.Equal(t, 2, l.Cantidad)
	require.NotNil(t, l.ZonaID)
	assert.Equal(t, *f.sub.ZonaID, *l.ZonaID)
	require.Len(t, l.Ingredientes, 1)
	assert.True(t, l.Ingredientes[0].PorDefecto)
	assert.Equal(t, 2, l.Ingredientes[0].Cantidad)
	// recipe defaults bundled: 10 × 2
	assert.True(t, resp.Total.Equal(dec("20")), "total = %s", resp.Total)
	assert.Equal(t, 2, resp.Version)
}

func TestAgregarLinea_VersionVieja(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	f.abrirConPizza(t, 1) // draft now at version 2

	_, err := f.svc.AgregarLinea(ctx, f.mesa.ID, dto.AgregarLineaRequest{
		ProductoID: f.pizza.ID.String(),
		Cantidad:   1,
		Version:    1, // stale
	})
	assert.ErrorIs(t, err, repository.ErrVersionStale)
}

func TestAgregarLinea_ProductoInactivo(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	inactivo := &model.Producto{Nombre: "Fuera de carta", Precio: dec("5"), Activo: false}
	require.NoError(t, f.productos.Crear(ctx, inactivo))

	resp, err := f.svc.AbrirMesa(ctx, f.mesa.ID, f.mozo.ID, dto.AbrirMesaRequest{})
	require.NoError(t, err)

	_, err = f.svc.AgregarLinea(ctx, f.mesa.ID, dto.AgregarLineaRequest{
		ProductoID: inactivo.ID.String(),
		Cantidad:   1,
		Version:    resp.Version,
	})
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)
}

func TestQuitarLinea_RequierePIN(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	resp := f.abrirConPizza(t, 1)
	lineaID := resp.Lineas[0].ID

	_, err := f.svc.QuitarLinea(ctx, f.mesa.ID, lineaID, f.mozo.ID, dto.QuitarLineaRequest{
		PIN:     "9999",
		Version: resp.Version,
	})
	assert.ErrorIs(t, err, ErrPINInvalido)

	resp2, err := f.svc.QuitarLinea(ctx, f.mesa.ID, lineaID, f.mozo.ID, dto.QuitarLineaRequest{
		PIN:     "1234",
		Version: resp.Version,
	})
	require.NoError(t, err)
	assert.Empty(t, resp2.Lineas)
}

func TestQuitarLinea_RolSinPermiso(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	f.mozo.Rol.PuedeQuitarLineas = false
	resp := f.abrirConPizza(t, 1)

	_, err := f.svc.QuitarLinea(ctx, f.mesa.ID, resp.Lineas[0].ID, f.mozo.ID, dto.QuitarLineaRequest{
		PIN:     "1234",
		Version: resp.Version,
	})
	assert.ErrorIs(t, err, ErrPermisoDenegado)
}

func TestAgregarIngrediente_Whitelist(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	resp := f.abrirConPizza(t, 1)
	lineaID := resp.Lineas[0].ID

	// Bacon is whitelisted for the subcategory
	resp, err := f.svc.AgregarIngrediente(ctx, f.mesa.ID, lineaID, dto.AgregarIngredienteRequest{
		IngredienteID: f.bacon.ID.String(),
		Cantidad:      1,
		Version:       resp.Version,
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("12")), "total = %s", resp.Total)

	// Pineapple is not
	_, err = f.svc.AgregarIngrediente(ctx, f.mesa.ID, lineaID, dto.AgregarIngredienteRequest{
		IngredienteID: f.anana.ID.String(),
		Cantidad:      1,
		Version:       resp.Version,
	})
	assert.ErrorIs(t, err, ErrIngredienteNoPermitido)
}

func TestAgregarIngrediente_DefaultSiemprePermitido(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	// Empty the whitelist except for entries that aren't the recipe default
	f.sub.IngredientesPermitidos = []model.Ingrediente{*f.bacon}

	resp := f.abrirConPizza(t, 1)
	lineaID := resp.Lineas[0].ID

	// Cheese is the recipe default: always addable even off-whitelist
	resp, err := f.svc.AgregarIngrediente(ctx, f.mesa.ID, lineaID, dto.AgregarIngredienteRequest{
		IngredienteID: f.queso.ID.String(),
		Cantidad:      1,
		Version:       resp.Version,
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("11.50")), "total = %s", resp.Total)
}

func TestAgregarIngrediente_SinWhitelistSinRestriccion(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	f.sub.IngredientesPermitidos = nil

	resp := f.abrirConPizza(t, 1)
	_, err := f.svc.AgregarIngrediente(ctx, f.mesa.ID, resp.Lineas[0].ID, dto.AgregarIngredienteRequest{
		IngredienteID: f.anana.ID.String(),
		Cantidad:      1,
		Version:       resp.Version,
	})
	assert.NoError(t, err)
}

func TestAplicarDescuento_PINYPermiso(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	resp := f.abrirConPizza(t, 1)

	resp2, err := f.svc.AplicarDescuento(ctx, f.mesa.ID, f.mozo.ID, dto.DescuentoRequest{
		DescuentoPct: dec("10"),
		PIN:          "1234",
		Version:      resp.Version,
	})
	require.NoError(t, err)
	assert.True(t, resp2.Total.Equal(dec("9")), "total = %s", resp2.Total)

	f.mozo.Rol.PuedeAplicarDescuento = false
	_, err = f.svc.AplicarDescuento(ctx, f.mesa.ID, f.mozo.ID, dto.DescuentoRequest{
		DescuentoPct: dec("20"),
		PIN:          "1234",
		Version:      resp2.Version,
	})
	assert.ErrorIs(t, err, ErrPermisoDenegado)
}

// ── Split and merge ──────────────────────────────────────────────────────────

func TestDividir_AbreDestinoYMueveUnidad(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	destino := &model.Mesa{Numero: 5, Estado: model.MesaLibre, Activo: true}
	require.NoError(t, f.salones.CrearMesa(ctx, destino))

	resp := f.abrirConPizza(t, 2)

	out, err := f.svc.Dividir(ctx, f.mesa.ID, dto.DividirRequest{
		MesaDestinoID: destino.ID.String(),
		LineaID:       resp.Lineas[0].ID.String(),
		Version:       resp.Version,
	})
	require.NoError(t, err)

	require.Len(t, out.Origen.Lineas, 1)
	assert.Equal(t, 1, out.Origen.Lineas[0].Cantidad)
	require.Len(t, out.Destino.Lineas, 1)
	assert.Equal(t, 1, out.Destino.Lineas[0].Cantidad)

	mesa, err := f.salones.ObtenerMesa(ctx, destino.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaAbierta, mesa.Estado)
}

func TestDividir_OrigenVacioSigueAbierto(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	destino := &model.Mesa{Numero: 5, Estado: model.MesaLibre, Activo: true}
	require.NoError(t, f.salones.CrearMesa(ctx, destino))

	resp := f.abrirConPizza(t, 1)

	out, err := f.svc.Dividir(ctx, f.mesa.ID, dto.DividirRequest{
		MesaDestinoID: destino.ID.String(),
		LineaID:       resp.Lineas[0].ID.String(),
		Version:       resp.Version,
	})
	require.NoError(t, err)
	assert.Empty(t, out.Origen.Lineas)

	// The emptied source table is still occupied and its draft still exists
	mesa, err := f.salones.ObtenerMesa(ctx, f.mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaAbierta, mesa.Estado)
	_, err = f.svc.Obtener(ctx, f.mesa.ID)
	assert.NoError(t, err)
}

func TestDividir_MismaMesa(t *testing.T) {
	f := newTicketFixture(t)
	resp := f.abrirConPizza(t, 1)

	_, err := f.svc.Dividir(context.Background(), f.mesa.ID, dto.DividirRequest{
		MesaDestinoID: f.mesa.ID.String(),
		LineaID:       resp.Lineas[0].ID.String(),
		Version:       resp.Version,
	})
	assert.ErrorIs(t, err, ErrMismaMesa)
}

func TestJuntar_LiberaOrigen(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	origen := &model.Mesa{Numero: 5, Estado: model.MesaLibre, Activo: true}
	require.NoError(t, f.salones.CrearMesa(ctx, origen))

	destinoResp := f.abrirConPizza(t, 1)

	respOrigen, err := f.svc.AbrirMesa(ctx, origen.ID, f.mozo.ID, dto.AbrirMesaRequest{})
	require.NoError(t, err)
	_, err = f.svc.AgregarLinea(ctx, origen.ID, dto.AgregarLineaRequest{
		ProductoID: f.pizza.ID.String(),
		Cantidad:   1,
		Version:    respOrigen.Version,
	})
	require.NoError(t, err)

	out, err := f.svc.Juntar(ctx, f.mesa.ID, dto.JuntarRequest{
		MesaOrigenID: origen.ID.String(),
		Version:      destinoResp.Version,
	})
	require.NoError(t, err)

	// Concatenated, not merged
	assert.Len(t, out.Lineas, 2)
	assert.True(t, out.Total.Equal(dec("20")))

	mesa, err := f.salones.ObtenerMesa(ctx, origen.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaLibre, mesa.Estado)
	_, err = f.svc.Obtener(ctx, origen.ID)
	assert.ErrorIs(t, err, ErrMesaSinTicket)
}

// ── Redis draft cache ────────────────────────────────────────────────────────

func TestCargarBorrador_PrefiereCacheConVersionVigente(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	resp := f.abrirConPizza(t, 1)

	// A stale cache entry (old version) must be ignored in favor of Postgres
	viejo := pedido.Nuevo()
	require.NoError(t, f.borradores.Guardar(ctx, &repository.Borrador{
		MesaID:  f.mesa.ID,
		Pedido:  *viejo,
		Version: resp.Version - 1,
	}))

	actual, err := f.svc.Obtener(ctx, f.mesa.ID)
	require.NoError(t, err)
	assert.Len(t, actual.Lineas, 1, "stale cache must not shadow the durable draft")
}

func TestGuardarBorrador_RefrescaCache(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	resp := f.abrirConPizza(t, 1)

	b, err := f.borradores.Obtener(ctx, f.mesa.ID)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, resp.Version, b.Version)
	assert.Len(t, b.Pedido.Lineas, 1)
}

// Sanity check that the durable draft row round-trips through JSON unchanged.
func TestTicketTemp_PedidoRoundTrip(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	f.abrirConPizza(t, 3)

	tt, err := f.tickets.ObtenerTempPorMesa(ctx, f.mesa.ID)
	require.NoError(t, err)

	var p pedido.Pedido
	require.NoError(t, json.Unmarshal(tt.Pedido, &p))
	require.Len(t, p.Lineas, 1)
	assert.Equal(t, 3, p.Lineas[0].Cantidad)
	assert.True(t, p.Subtotal.Equal(tt.Subtotal))
}
