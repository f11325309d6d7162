package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/config"
	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/infra"
	"github.com/GreennWolf/Antojos-sub000/internal/model"
	"github.com/GreennWolf/Antojos-sub000/internal/pedido"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrMesaInactiva           = errors.New("la mesa no está activa")
	ErrMesaSinTicket          = errors.New("la mesa no tiene un ticket abierto")
	ErrTicketVacio            = errors.New("el ticket no tiene líneas")
	ErrPermisoDenegado        = errors.New("el rol no permite esta operación")
	ErrBorradorCorrupto       = errors.New("el ticket guardado está dañado y no puede leerse")
	ErrIngredienteNoPermitido = errors.New("el ingrediente no está permitido para este producto")
	ErrMismaMesa              = errors.New("la mesa de origen y destino son la misma")
	ErrTicketNoEncontrado     = errors.New("ticket no encontrado")
)

// Encolador abstracts the background job queue so the service stays testable
// without Redis. The worker dispatcher implements it.
type Encolador interface {
	EncolarImpresion(ctx context.Context, impresionID uuid.UUID) error
	EncolarEmail(ctx context.Context, destinatario, asunto, cuerpo, pdfPath string) error
}

// TicketService orchestrates the lifecycle of a table's order: open, compose
// via the pedido engine, split/merge across tables, pre-bill, and close into an
// immutable ticket with print and email side effects queued for the workers.
type TicketService interface {
	AbrirMesa(ctx context.Context, mesaID, usuarioID uuid.UUID, req dto.AbrirMesaRequest) (*dto.TicketTempResponse, error)
	Obtener(ctx context.Context, mesaID uuid.UUID) (*dto.TicketTempResponse, error)
	ListarAbiertas(ctx context.Context) ([]dto.TicketTempResponse, error)

	AgregarLinea(ctx context.Context, mesaID uuid.UUID, req dto.AgregarLineaRequest) (*dto.TicketTempResponse, error)
	CambiarCantidad(ctx context.Context, mesaID, lineaID uuid.UUID, req dto.CambiarCantidadRequest) (*dto.TicketTempResponse, error)
	QuitarLinea(ctx context.Context, mesaID, lineaID, usuarioID uuid.UUID, req dto.QuitarLineaRequest) (*dto.TicketTempResponse, error)
	AgregarIngrediente(ctx context.Context, mesaID, lineaID uuid.UUID, req dto.AgregarIngredienteRequest) (*dto.TicketTempResponse, error)
	QuitarIngrediente(ctx context.Context, mesaID, lineaID, ingredienteID uuid.UUID, req dto.QuitarIngredienteRequest) (*dto.TicketTempResponse, error)
	Observar(ctx context.Context, mesaID, lineaID uuid.UUID, req dto.ObservacionRequest) (*dto.TicketTempResponse, error)
	AplicarDescuento(ctx context.Context, mesaID, usuarioID uuid.UUID, req dto.DescuentoRequest) (*dto.TicketTempResponse, error)

	Dividir(ctx context.Context, mesaOrigenID uuid.UUID, req dto.DividirRequest) (*dto.DividirResponse, error)
	Juntar(ctx context.Context, mesaDestinoID uuid.UUID, req dto.JuntarRequest) (*dto.TicketTempResponse, error)

	Precuenta(ctx context.Context, mesaID, usuarioID uuid.UUID) (*dto.PrecuentaResponse, error)
	Cerrar(ctx context.Context, mesaID, usuarioID uuid.UUID, mozo string, req dto.CerrarMesaRequest) (*dto.TicketResponse, error)

	ListarTickets(ctx context.Context, filter dto.TicketFilter) (*dto.TicketListResponse, error)
	ObtenerTicket(ctx context.Context, id uuid.UUID) (*dto.TicketResponse, error)
	AnularTicket(ctx context.Context, id uuid.UUID) error
}

type ticketService struct {
	tickets      repository.TicketRepository
	borradores   repository.BorradorRepository
	impresiones  repository.ImpresionRepository
	salones      repository.SalonRepository
	productos    repository.ProductoRepository
	ingredientes repository.IngredienteRepository
	categorias   repository.CategoriaRepository
	ajustes      repository.AjustesRepository
	auth         AuthService
	encolador    Encolador
	cfg          *config.Config
}

func NewTicketService(
	tickets repository.TicketRepository,
	borradores repository.BorradorRepository,
	impresiones repository.ImpresionRepository,
	salones repository.SalonRepository,
	productos repository.ProductoRepository,
	ingredientes repository.IngredienteRepository,
	categorias repository.CategoriaRepository,
	ajustes repository.AjustesRepository,
	auth AuthService,
	encolador Encolador,
	cfg *config.Config,
) TicketService {
	return &ticketService{
		tickets:      tickets,
		borradores:   borradores,
		impresiones:  impresiones,
		salones:      salones,
		productos:    productos,
		ingredientes: ingredientes,
		categorias:   categorias,
		ajustes:      ajustes,
		auth:         auth,
		encolador:    encolador,
		cfg:          cfg,
	}
}

// ── Draft loading and saving ──────────────────────────────────────────────────

// cargarBorrador loads a table's open order: the Redis copy when its version
// matches the Postgres row, otherwise the durable row itself. A stored draft
// that no longer deserializes surfaces ErrBorradorCorrupto instead of being
// silently discarded.
func (s *ticketService) cargarBorrador(ctx context.Context, mesaID uuid.UUID) (*model.TicketTemp, *pedido.Pedido, error) {
	tt, err := s.tickets.ObtenerTempPorMesa(ctx, mesaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrMesaSinTicket
		}
		return nil, nil, err
	}

	if b, err := s.borradores.Obtener(ctx, mesaID); err == nil && b != nil && b.Version == tt.Version {
		p := b.Pedido
		return tt, &p, nil
	}

	var p pedido.Pedido
	if err := json.Unmarshal(tt.Pedido, &p); err != nil {
		return nil, nil, fmt.Errorf("%w: mesa %s", ErrBorradorCorrupto, mesaID)
	}
	return tt, &p, nil
}

// guardarBorrador persists the mutated draft against the version the client
// saw. Postgres is the arbiter; the Redis copy is refreshed best-effort.
func (s *ticketService) guardarBorrador(ctx context.Context, tt *model.TicketTemp, p *pedido.Pedido, expectedVersion int) (*dto.TicketTempResponse, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	tt.Pedido = data
	tt.Subtotal = p.Subtotal
	tt.Descuento = p.DescuentoPct
	tt.Total = p.Total

	if err := s.tickets.ActualizarTemp(ctx, tt, expectedVersion); err != nil {
		return nil, err
	}

	if err := s.borradores.Guardar(ctx, &repository.Borrador{MesaID: tt.MesaID, Pedido: *p, Version: tt.Version}); err != nil {
		log.Warn().Err(err).Str("mesa_id", tt.MesaID.String()).Msg("no se pudo refrescar el borrador en redis")
	}

	resp := mapTicketTemp(tt, p)
	return &resp, nil
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

// AbrirMesa opens a draft ticket on a free table. Opening an already-open
// table returns its current draft unchanged.
func (s *ticketService) AbrirMesa(ctx context.Context, mesaID, usuarioID uuid.UUID, req dto.AbrirMesaRequest) (*dto.TicketTempResponse, error) {
	mesa, err := s.salones.ObtenerMesa(ctx, mesaID)
	if err != nil {
		return nil, ErrMesaNoEncontrada
	}
	if !mesa.Activo {
		return nil, ErrMesaInactiva
	}

	if tt, p, err := s.cargarBorrador(ctx, mesaID); err == nil {
		resp := mapTicketTemp(tt, p)
		return &resp, nil
	} else if !errors.Is(err, ErrMesaSinTicket) {
		return nil, err
	}

	p := pedido.Nuevo()
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	tt := &model.TicketTemp{
		MesaID:     mesaID,
		UsuarioID:  usuarioID,
		Pedido:     data,
		Subtotal:   decimal.Zero,
		Descuento:  decimal.Zero,
		Total:      decimal.Zero,
		Comensales: req.Comensales,
		Version:    1,
	}
	if err := s.tickets.CrearTemp(ctx, tt); err != nil {
		return nil, err
	}
	if err := s.salones.CambiarEstadoMesa(ctx, mesaID, model.MesaAbierta); err != nil {
		return nil, err
	}
	if err := s.borradores.Guardar(ctx, &repository.Borrador{MesaID: mesaID, Pedido: *p, Version: 1}); err != nil {
		log.Warn().Err(err).Str("mesa_id", mesaID.String()).Msg("no se pudo cachear el borrador")
	}

	resp := mapTicketTemp(tt, p)
	return &resp, nil
}

func (s *ticketService) Obtener(ctx context.Context, mesaID uuid.UUID) (*dto.TicketTempResponse, error) {
	tt, p, err := s.cargarBorrador(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	resp := mapTicketTemp(tt, p)
	return &resp, nil
}

func (s *ticketService) ListarAbiertas(ctx context.Context) ([]dto.TicketTempResponse, error) {
	temps, err := s.tickets.ListarTemps(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketTempResponse, 0, len(temps))
	for i := range temps {
		tt := &temps[i]
		var p pedido.Pedido
		if err := json.Unmarshal(tt.Pedido, &p); err != nil {
			return nil, fmt.Errorf("%w: mesa %s", ErrBorradorCorrupto, tt.MesaID)
		}
		out = append(out, mapTicketTemp(tt, &p))
	}
	return out, nil
}

// ── Composition ───────────────────────────────────────────────────────────────

func (s *ticketService) AgregarLinea(ctx context.Context, mesaID uuid.UUID, req dto.AgregarLineaRequest) (*dto.TicketTempResponse, error) {
	tt, p, err := s.cargarBorrador(ctx, mesaID)
	if err != nil {
		return nil, err
	}

	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	producto, err := s.productos.ObtenerPorID(ctx, productoID)
	if err != nil || !producto.Activo {
		return nil, ErrProductoNoEncontrado
	}

	linea := pedido.Linea{
		ID:         uuid.New(),
		ProductoID: producto.ID,
		Nombre:     producto.Nombre,
		Precio:     producto.Precio,
	}
	if producto.SubCategoria != nil {
		linea.ZonaID = producto.SubCategoria.ZonaID
	}
	for _, item := range producto.Receta {
		entrada := pedido.IngredienteLinea{
			IngredienteID: item.IngredienteID,
			Cantidad:      item.Cantidad,
			PorDefecto:    true,
			Unidad:        item.Unidad,
		}
		if item.Ingrediente != nil {
			entrada.Nombre = item.Ingrediente.Nombre
			entrada.Precio = item.Ingrediente.Precio
		}
		linea.Ingredientes = append(linea.Ingredientes, entrada)
	}

	if _, err := p.AgregarProducto(linea, req.Cantidad); err != nil {
		return nil, err
	}
	return s.guardarBorrador(ctx, tt, p, req.Version)
}

func (s *ticketService) CambiarCantidad(ctx context.Context, mesaID, lineaID uuid.UUID, req dto.CambiarCantidadRequest) (*dto.TicketTempResponse, error) {
	tt, p, err := s.cargarBorrador(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	if err := p.CambiarCantidad(lineaID, req.Cantidad); err != nil {
		return nil, err
	}
	return s.guardarBorrador(ctx, tt, p, req.Version)
}

// QuitarLinea removes a line after re-authorizing the waiter with their PIN
// and checking the role flag.
func (s *ticketService) QuitarLinea(ctx context.Context, mesaID, lineaID, usuarioID uuid.UUID, req dto.QuitarLineaRequest) (*dto.TicketTempResponse, error) {
	u, err := s.auth.VerificarPIN(ctx, usuarioID, req.PIN)
	if err != nil {
		return nil, err
	}
	if u.Rol == nil || !u.Rol.PuedeQuitarLineas {
		return nil, ErrPermisoDenegado
	}

	tt, p, err := s.cargarBorrador(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	if err := p.QuitarLinea(lineaID); err != nil {
		return nil, err
	}
	return s.guardarBorrador(ctx, tt, p, req.Version)
}

func (s *ticketService) AgregarIngrediente(ctx context.Context, mesaID, lineaID uuid.UUID, req dto.AgregarIngredienteRequest) (*dto.TicketTempResponse, error) {
	tt, p, err := s.cargarBorrador(ctx, mesaID)
	if err != nil {
		return nil, err
	}

	ingredienteID, err := uuid.Parse(req.IngredienteID)
	if err != nil {
		return nil, ErrIngredienteNoEncontrado
	}
	ing, err := s.ingredientes.ObtenerPorID(ctx, ingredienteID)
	if err != nil || !ing.Activo {
		return nil, ErrIngredienteNoEncontrado
	}

	var linea *pedido.Linea
	for i := range p.Lineas {
		if p.Lineas[i].ID == lineaID {
			linea = &p.Lineas[i]
			break
		}
	}
	if linea == nil {
		return nil, pedido.ErrLineaNoEncontrada
	}
	if err := s.validarIngredientePermitido(ctx, linea, ing.ID); err != nil {
		return nil, err
	}

	entrada := pedido.IngredienteLinea{
		IngredienteID: ing.ID,
		Nombre:        ing.Nombre,
		Precio:        ing.Precio,
		Unidad:        ing.Unidad,
	}
	if err := p.AgregarIngrediente(lineaID, entrada, req.Cantidad); err != nil {
		return nil, err
	}
	return s.guardarBorrador(ctx, tt, p, req.Version)
}

// validarIngredientePermitido enforces the subcategory whitelist. Recipe
// defaults are always allowed (replenishing "sin" removals); an empty
// whitelist imposes no restriction.
func (s *ticketService) validarIngredientePermitido(ctx context.Context, linea *pedido.Linea, ingredienteID uuid.UUID) error {
	for _, e := range linea.Ingredientes {
		if e.IngredienteID == ingredienteID && e.PorDefecto {
			return nil
		}
	}

	producto, err := s.productos.ObtenerPorID(ctx, linea.ProductoID)
	if err != nil {
		return ErrProductoNoEncontrado
	}
	sub, err := s.categorias.ObtenerSubPorID(ctx, producto.SubCategoriaID)
	if err != nil {
		return ErrSubCategoriaNoEncontrada
	}
	if len(sub.IngredientesPermitidos) == 0 {
		return nil
	}
	for _, permitido := range sub.IngredientesPermitidos {
		if permitido.ID == ingredienteID {
			return nil
		}
	}
	return ErrIngredienteNoPermitido
}

func (s *ticketService) QuitarIngrediente(ctx context.Context, mesaID, lineaID, ingredienteID uuid.UUID, req dto.QuitarIngredienteRequest) (*dto.TicketTempResponse, error) {
	tt, p, err := s.cargarBorrador(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	if err := p.QuitarIngrediente(lineaID, ingredienteID, req.Cantidad); err != nil {
		return nil, err
	}
	return s.guardarBorrador(ctx, tt, p, req.Version)
}

func (s *ticketService) Observar(ctx context.Context, mesaID, lineaID uuid.UUID, req dto.ObservacionRequest) (*dto.TicketTempResponse, error) {
	tt, p, err := s.cargarBorrador(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	if err := p.Observar(lineaID, req.Texto); err != nil {
		return nil, err
	}
	return s.guardarBorrador(ctx, tt, p, req.Version)
}

func (s *ticketService) AplicarDescuento(ctx context.Context, mesaID, usuarioID uuid.UUID, req dto.DescuentoRequest) (*dto.TicketTempResponse, error) {
	u, err := s.auth.VerificarPIN(ctx, usuarioID, req.PIN)
	if err != nil {
		return nil, err
	}
	if u.Rol == nil || !u.Rol.PuedeAplicarDescuento {
		return nil, ErrPermisoDenegado
	}

	tt, p, err := s.cargarBorrador(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	if err := p.AplicarDescuento(req.DescuentoPct); err != nil {
		return nil, err
	}
	return s.guardarBorrador(ctx, tt, p, req.Version)
}

// ── Split and merge ───────────────────────────────────────────────────────────

// Dividir moves one unit of a line from the source table to the destination,
// opening a draft on the destination if it has none. The source draft stays
// open even when emptied: the table is still occupied.
func (s *ticketService) Dividir(ctx context.Context, mesaOrigenID uuid.UUID, req dto.DividirRequest) (*dto.DividirResponse, error) {
	mesaDestinoID, err := uuid.Parse(req.MesaDestinoID)
	if err != nil {
		return nil, ErrMesaNoEncontrada
	}
	if mesaDestinoID == mesaOrigenID {
		return nil, ErrMismaMesa
	}
	lineaID, err := uuid.Parse(req.LineaID)
	if err != nil {
		return nil, pedido.ErrLineaNoEncontrada
	}

	ttOrigen, pOrigen, err := s.cargarBorrador(ctx, mesaOrigenID)
	if err != nil {
		return nil, err
	}

	ttDestino, pDestino, err := s.cargarBorrador(ctx, mesaDestinoID)
	if errors.Is(err, ErrMesaSinTicket) {
		if _, err := s.AbrirMesa(ctx, mesaDestinoID, ttOrigen.UsuarioID, dto.AbrirMesaRequest{}); err != nil {
			return nil, err
		}
		ttDestino, pDestino, err = s.cargarBorrador(ctx, mesaDestinoID)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := pedido.MoverUnidad(pOrigen, pDestino, lineaID); err != nil {
		return nil, err
	}

	origenResp, err := s.guardarBorrador(ctx, ttOrigen, pOrigen, req.Version)
	if err != nil {
		return nil, err
	}
	destinoResp, err := s.guardarBorrador(ctx, ttDestino, pDestino, ttDestino.Version)
	if err != nil {
		return nil, err
	}
	return &dto.DividirResponse{Origen: *origenResp, Destino: *destinoResp}, nil
}

// Juntar folds the source table's order into the destination and frees the
// source. Lines are concatenated, never merged, so each table's entries stay
// as rung up.
func (s *ticketService) Juntar(ctx context.Context, mesaDestinoID uuid.UUID, req dto.JuntarRequest) (*dto.TicketTempResponse, error) {
	mesaOrigenID, err := uuid.Parse(req.MesaOrigenID)
	if err != nil {
		return nil, ErrMesaNoEncontrada
	}
	if mesaOrigenID == mesaDestinoID {
		return nil, ErrMismaMesa
	}

	ttDestino, pDestino, err := s.cargarBorrador(ctx, mesaDestinoID)
	if err != nil {
		return nil, err
	}
	_, pOrigen, err := s.cargarBorrador(ctx, mesaOrigenID)
	if err != nil {
		return nil, err
	}

	pedido.Juntar(pDestino, pOrigen)

	resp, err := s.guardarBorrador(ctx, ttDestino, pDestino, req.Version)
	if err != nil {
		return nil, err
	}

	if err := s.tickets.EliminarTemp(ctx, mesaOrigenID); err != nil {
		return nil, err
	}
	if err := s.borradores.Eliminar(ctx, mesaOrigenID); err != nil {
		log.Warn().Err(err).Str("mesa_id", mesaOrigenID.String()).Msg("no se pudo borrar el borrador de redis")
	}
	if err := s.salones.CambiarEstadoMesa(ctx, mesaOrigenID, model.MesaLibre); err != nil {
		return nil, err
	}
	return resp, nil
}

// ── Pre-bill and close ────────────────────────────────────────────────────────

func (s *ticketService) Precuenta(ctx context.Context, mesaID, usuarioID uuid.UUID) (*dto.PrecuentaResponse, error) {
	_, p, err := s.cargarBorrador(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	if p.Vacio() {
		return nil, ErrTicketVacio
	}

	mesa, err := s.salones.ObtenerMesa(ctx, mesaID)
	if err != nil {
		return nil, ErrMesaNoEncontrada
	}
	comercio, err := s.ajustes.ObtenerComercio(ctx)
	if err != nil {
		return nil, err
	}

	leyenda := ""
	if comercio.LeyendaTicket != nil {
		leyenda = *comercio.LeyendaTicket
	}
	ahora := time.Now()
	datos := infra.PDFDatos{
		Comercio:     comercio.Nombre,
		Leyenda:      leyenda,
		Titulo:       "PRECUENTA",
		Mesa:         fmt.Sprintf("%d", mesa.Numero),
		Fecha:        ahora.Format("02/01/2006 15:04"),
		Lineas:       p.Lineas,
		Subtotal:     p.Subtotal,
		DescuentoPct: p.DescuentoPct,
		Total:        p.Total,
	}
	fileName := fmt.Sprintf("precuenta-%s-%d.pdf", mesaID, ahora.Unix())
	pdfPath, err := infra.GenerarPDF(datos, s.cfg.PDFStoragePath, fileName)
	if err != nil {
		return nil, err
	}

	pre := &model.Precuenta{
		MesaID:    mesaID,
		UsuarioID: usuarioID,
		Subtotal:  p.Subtotal,
		Total:     p.Total,
		PDFPath:   &pdfPath,
	}
	if err := s.tickets.CrearPrecuenta(ctx, pre); err != nil {
		return nil, err
	}

	return &dto.PrecuentaResponse{
		ID:       pre.ID.String(),
		MesaID:   mesaID.String(),
		Subtotal: pre.Subtotal,
		Total:    pre.Total,
		PDFPath:  pre.PDFPath,
	}, nil
}

// Cerrar converts the draft into an immutable numbered ticket inside one
// transaction: reserve the number, snapshot the lines, discount stock, drop
// the draft and free the table. Print jobs and the optional receipt email are
// queued after commit.
func (s *ticketService) Cerrar(ctx context.Context, mesaID, usuarioID uuid.UUID, mozo string, req dto.CerrarMesaRequest) (*dto.TicketResponse, error) {
	tt, p, err := s.cargarBorrador(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	if p.Vacio() {
		return nil, ErrTicketVacio
	}
	if tt.Version != req.Version {
		return nil, repository.ErrVersionStale
	}

	metodoPagoID, err := uuid.Parse(req.MetodoPagoID)
	if err != nil {
		return nil, ErrMetodoPagoNoEncontrado
	}
	metodo, err := s.ajustes.ObtenerMetodoPago(ctx, metodoPagoID)
	if err != nil || !metodo.Activo {
		return nil, ErrMetodoPagoNoEncontrado
	}

	// Payment surcharge applies on top of the discounted total
	total := p.Total
	if !metodo.RecargoPct.IsZero() {
		recargo := total.Mul(metodo.RecargoPct).Div(decimal.NewFromInt(100)).Round(2)
		total = total.Add(recargo)
	}

	mesa, err := s.salones.ObtenerMesa(ctx, mesaID)
	if err != nil {
		return nil, ErrMesaNoEncontrada
	}

	ticket := &model.Ticket{
		MesaID:       mesaID,
		UsuarioID:    usuarioID,
		MetodoPagoID: metodo.ID,
		Subtotal:     p.Subtotal,
		DescuentoPct: p.DescuentoPct,
		Total:        total,
		Estado:       model.TicketCerrado,
		Comensales:   tt.Comensales,
	}

	err = s.tickets.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		numero, err := s.tickets.SiguienteNumeroTx(tx)
		if err != nil {
			return err
		}
		ticket.Numero = numero

		for _, l := range p.Lineas {
			ingredientes, err := json.Marshal(l.Ingredientes)
			if err != nil {
				return err
			}
			ticket.Items = append(ticket.Items, model.TicketItem{
				ProductoID:     l.ProductoID,
				Nombre:         l.Nombre,
				Cantidad:       l.Cantidad,
				PrecioUnitario: l.Precio,
				Total:          l.Total(),
				Ingredientes:   ingredientes,
				Observaciones:  l.Observaciones,
			})
		}
		if err := s.tickets.CrearTicketTx(tx, ticket); err != nil {
			return err
		}

		for _, l := range p.Lineas {
			if err := s.productos.DescontarStockTx(tx, l.ProductoID, l.Cantidad); err != nil {
				return err
			}
			for _, e := range l.Ingredientes {
				if neto := e.CantidadNeta(); neto > 0 {
					if err := s.ingredientes.DescontarStockTx(tx, e.IngredienteID, neto*l.Cantidad); err != nil {
						return err
					}
				}
			}
		}

		if err := s.tickets.EliminarTempTx(tx, mesaID); err != nil {
			return err
		}
		return s.salones.CambiarEstadoMesaTx(tx, mesaID, model.MesaLibre)
	})
	if err != nil {
		return nil, err
	}

	if err := s.borradores.Eliminar(ctx, mesaID); err != nil {
		log.Warn().Err(err).Str("mesa_id", mesaID.String()).Msg("no se pudo borrar el borrador de redis")
	}

	s.encolarImpresiones(ctx, ticket, p, mesa, mozo)
	s.encolarRecibo(ctx, ticket, p, mesa, req.ClienteEmail)

	resp := mapTicket(ticket)
	return &resp, nil
}

// encolarImpresiones groups the closed order's lines by print zone and queues
// one job per zone. Lines without a zone are not printed. Failures here never
// fail the close; the retry cron picks up whatever could not be queued.
func (s *ticketService) encolarImpresiones(ctx context.Context, ticket *model.Ticket, p *pedido.Pedido, mesa *model.Mesa, mozo string) {
	porZona := make(map[uuid.UUID][]infra.PrintLinea)
	for _, l := range p.Lineas {
		if l.ZonaID == nil {
			continue
		}
		porZona[*l.ZonaID] = append(porZona[*l.ZonaID], infra.PrintLinea{
			Producto:      l.Nombre,
			Cantidad:      l.Cantidad,
			Modificadores: modificadores(l),
			Observaciones: l.Observaciones,
		})
	}
	if len(porZona) == 0 {
		return
	}

	hora := time.Now().Format("15:04")
	for zonaID, lineas := range porZona {
		zona, err := s.ajustes.ObtenerZona(ctx, zonaID)
		if err != nil {
			log.Error().Err(err).Str("zona_id", zonaID.String()).Msg("zona de impresión desconocida")
			continue
		}
		payload := infra.PrintPayload{
			Zona:   zona.Nombre,
			Mesa:   fmt.Sprintf("%d", mesa.Numero),
			Mozo:   mozo,
			Lineas: lineas,
			Hora:   hora,
		}
		contenido, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Msg("no se pudo serializar el trabajo de impresión")
			continue
		}
		job := &model.Impresion{
			TicketID:  &ticket.ID,
			MesaID:    mesa.ID,
			ZonaID:    zonaID,
			Contenido: contenido,
			Estado:    model.ImpresionPendiente,
		}
		if err := s.impresiones.Crear(ctx, job); err != nil {
			log.Error().Err(err).Msg("no se pudo registrar el trabajo de impresión")
			continue
		}
		if err := s.encolador.EncolarImpresion(ctx, job.ID); err != nil {
			// The retry cron rescues jobs that never reached the queue
			log.Warn().Err(err).Str("impresion_id", job.ID.String()).Msg("no se pudo encolar la impresión")
		}
	}
}

// encolarRecibo renders the receipt PDF and queues the email when the customer
// left an address. Best-effort: the ticket is already closed.
func (s *ticketService) encolarRecibo(ctx context.Context, ticket *model.Ticket, p *pedido.Pedido, mesa *model.Mesa, clienteEmail *string) {
	if clienteEmail == nil || *clienteEmail == "" {
		return
	}

	comercio, err := s.ajustes.ObtenerComercio(ctx)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo cargar el comercio para el recibo")
		return
	}
	leyenda := ""
	if comercio.LeyendaTicket != nil {
		leyenda = *comercio.LeyendaTicket
	}
	datos := infra.PDFDatos{
		Comercio:     comercio.Nombre,
		Leyenda:      leyenda,
		Titulo:       fmt.Sprintf("Ticket N° %d", ticket.Numero),
		Mesa:         fmt.Sprintf("%d", mesa.Numero),
		Fecha:        ticket.CreatedAt.Format("02/01/2006 15:04"),
		Lineas:       p.Lineas,
		Subtotal:     ticket.Subtotal,
		DescuentoPct: ticket.DescuentoPct,
		Total:        ticket.Total,
	}
	fileName := fmt.Sprintf("ticket-%d.pdf", ticket.Numero)
	pdfPath, err := infra.GenerarPDF(datos, s.cfg.PDFStoragePath, fileName)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo generar el PDF del recibo")
		return
	}

	asunto := fmt.Sprintf("%s - Ticket N° %d", comercio.Nombre, ticket.Numero)
	cuerpo := fmt.Sprintf("Gracias por su visita. Adjuntamos el ticket N° %d por $%s.", ticket.Numero, ticket.Total.StringFixed(2))
	if err := s.encolador.EncolarEmail(ctx, *clienteEmail, asunto, cuerpo, pdfPath); err != nil {
		log.Warn().Err(err).Str("email", *clienteEmail).Msg("no se pudo encolar el recibo")
	}
}

// ── Closed tickets ────────────────────────────────────────────────────────────

func (s *ticketService) ListarTickets(ctx context.Context, filter dto.TicketFilter) (*dto.TicketListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	var desde, hasta *time.Time
	if filter.Desde != "" {
		t, err := time.Parse("2006-01-02", filter.Desde)
		if err != nil {
			return nil, fmt.Errorf("fecha desde inválida: %w", err)
		}
		desde = &t
	}
	if filter.Hasta != "" {
		t, err := time.Parse("2006-01-02", filter.Hasta)
		if err != nil {
			return nil, fmt.Errorf("fecha hasta inválida: %w", err)
		}
		fin := t.AddDate(0, 0, 1)
		hasta = &fin
	}

	tickets, total, err := s.tickets.ListarTickets(ctx, desde, hasta, filter.Estado, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.TicketListResponse{
		Data:  make([]dto.TicketResponse, 0, len(tickets)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range tickets {
		resp.Data = append(resp.Data, mapTicket(&tickets[i]))
	}
	return resp, nil
}

func (s *ticketService) ObtenerTicket(ctx context.Context, id uuid.UUID) (*dto.TicketResponse, error) {
	t, err := s.tickets.ObtenerTicket(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNoEncontrado
		}
		return nil, err
	}
	resp := mapTicket(t)
	return &resp, nil
}

func (s *ticketService) AnularTicket(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tickets.ObtenerTicket(ctx, id); err != nil {
		return ErrTicketNoEncontrado
	}
	return s.tickets.AnularTicket(ctx, id)
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func mapTicketTemp(tt *model.TicketTemp, p *pedido.Pedido) dto.TicketTempResponse {
	return dto.TicketTempResponse{
		MesaID:       tt.MesaID,
		Lineas:       p.Lineas,
		Subtotal:     p.Subtotal,
		DescuentoPct: p.DescuentoPct,
		Total:        p.Total,
		Comensales:   tt.Comensales,
		Version:      tt.Version,
	}
}

func mapTicket(t *model.Ticket) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:           t.ID.String(),
		Numero:       t.Numero,
		MesaID:       t.MesaID.String(),
		Subtotal:     t.Subtotal,
		DescuentoPct: t.DescuentoPct,
		Total:        t.Total,
		Comensales:   t.Comensales,
		Estado:       t.Estado,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
	if t.Usuario != nil {
		resp.Mozo = t.Usuario.Nombre
	}
	if t.MetodoPago != nil {
		resp.MetodoPago = t.MetodoPago.Nombre
	}
	for _, item := range t.Items {
		resp.Items = append(resp.Items, dto.TicketItemResponse{
			Producto:       item.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Total:          item.Total,
			Observaciones:  item.Observaciones,
		})
	}
	return resp
}

// modificadores renders a line's ingredient deltas for the kitchen ticket.
func modificadores(l pedido.Linea) []string {
	var out []string
	for _, e := range l.Ingredientes {
		switch {
		case e.PorDefecto && e.CantidadQuitada > 0:
			out = append(out, fmt.Sprintf("sin %s x%d", e.Nombre, e.CantidadQuitada))
		}
		if fact := e.CantidadFacturable(); fact > 0 {
			out = append(out, fmt.Sprintf("extra %s x%d", e.Nombre, fact))
		}
	}
	return out
}
