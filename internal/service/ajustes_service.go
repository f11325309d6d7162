package service

import (
	"context"
	"errors"

	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/infra"
	"github.com/GreennWolf/Antojos-sub000/internal/model"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMetodoPagoNoEncontrado = errors.New("método de pago no encontrado")
	ErrZonaNoEncontrada       = errors.New("zona de impresión no encontrada")
)

// AjustesService manages payment methods, print zones and the business profile.
type AjustesService interface {
	CrearMetodoPago(ctx context.Context, req dto.CrearMetodoPagoRequest) (*dto.MetodoPagoResponse, error)
	ListarMetodosPago(ctx context.Context) ([]dto.MetodoPagoResponse, error)
	ActualizarMetodoPago(ctx context.Context, id uuid.UUID, req dto.ActualizarMetodoPagoRequest) (*dto.MetodoPagoResponse, error)
	CambiarActivoMetodoPago(ctx context.Context, id uuid.UUID, activo bool) error

	CrearZona(ctx context.Context, req dto.CrearZonaRequest) (*dto.ZonaResponse, error)
	ListarZonas(ctx context.Context) ([]dto.ZonaResponse, error)
	ActualizarZona(ctx context.Context, id uuid.UUID, req dto.ActualizarZonaRequest) (*dto.ZonaResponse, error)
	CambiarActivoZona(ctx context.Context, id uuid.UUID, activo bool) error
	ImpresorasDisponibles(ctx context.Context) ([]string, error)

	ObtenerComercio(ctx context.Context) (*dto.ComercioResponse, error)
	ActualizarComercio(ctx context.Context, req dto.ActualizarComercioRequest) (*dto.ComercioResponse, error)
}

type ajustesService struct {
	ajustes   repository.AjustesRepository
	impresora *infra.ImpresoraClient
}

func NewAjustesService(ajustes repository.AjustesRepository, impresora *infra.ImpresoraClient) AjustesService {
	return &ajustesService{ajustes: ajustes, impresora: impresora}
}

func (s *ajustesService) CrearMetodoPago(ctx context.Context, req dto.CrearMetodoPagoRequest) (*dto.MetodoPagoResponse, error) {
	m := &model.MetodoPago{Nombre: req.Nombre, RecargoPct: req.RecargoPct, Activo: true}
	if err := s.ajustes.CrearMetodoPago(ctx, m); err != nil {
		return nil, err
	}
	resp := mapMetodoPago(m)
	return &resp, nil
}

func (s *ajustesService) ListarMetodosPago(ctx context.Context) ([]dto.MetodoPagoResponse, error) {
	metodos, err := s.ajustes.ListarMetodosPago(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MetodoPagoResponse, 0, len(metodos))
	for i := range metodos {
		out = append(out, mapMetodoPago(&metodos[i]))
	}
	return out, nil
}

func (s *ajustesService) ActualizarMetodoPago(ctx context.Context, id uuid.UUID, req dto.ActualizarMetodoPagoRequest) (*dto.MetodoPagoResponse, error) {
	m, err := s.ajustes.ObtenerMetodoPago(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMetodoPagoNoEncontrado
		}
		return nil, err
	}
	if req.Nombre != nil {
		m.Nombre = *req.Nombre
	}
	if req.RecargoPct != nil {
		m.RecargoPct = *req.RecargoPct
	}
	if err := s.ajustes.ActualizarMetodoPago(ctx, m); err != nil {
		return nil, err
	}
	resp := mapMetodoPago(m)
	return &resp, nil
}

func (s *ajustesService) CambiarActivoMetodoPago(ctx context.Context, id uuid.UUID, activo bool) error {
	return s.ajustes.CambiarActivoMetodoPago(ctx, id, activo)
}

func (s *ajustesService) CrearZona(ctx context.Context, req dto.CrearZonaRequest) (*dto.ZonaResponse, error) {
	z := &model.ZonaImpresion{Nombre: req.Nombre, Impresora: req.Impresora, Activo: true}
	if err := s.ajustes.CrearZona(ctx, z); err != nil {
		return nil, err
	}
	resp := mapZona(z)
	return &resp, nil
}

func (s *ajustesService) ListarZonas(ctx context.Context) ([]dto.ZonaResponse, error) {
	zonas, err := s.ajustes.ListarZonas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZonaResponse, 0, len(zonas))
	for i := range zonas {
		out = append(out, mapZona(&zonas[i]))
	}
	return out, nil
}

func (s *ajustesService) ActualizarZona(ctx context.Context, id uuid.UUID, req dto.ActualizarZonaRequest) (*dto.ZonaResponse, error) {
	z, err := s.ajustes.ObtenerZona(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZonaNoEncontrada
		}
		return nil, err
	}
	if req.Nombre != nil {
		z.Nombre = *req.Nombre
	}
	if req.Impresora != nil {
		z.Impresora = *req.Impresora
	}
	if err := s.ajustes.ActualizarZona(ctx, z); err != nil {
		return nil, err
	}
	resp := mapZona(z)
	return &resp, nil
}

func (s *ajustesService) CambiarActivoZona(ctx context.Context, id uuid.UUID, activo bool) error {
	return s.ajustes.CambiarActivoZona(ctx, id, activo)
}

// ImpresorasDisponibles asks the print bridge which printers it can reach,
// for the zones admin screen.
func (s *ajustesService) ImpresorasDisponibles(ctx context.Context) ([]string, error) {
	return s.impresora.Printers(ctx)
}

func (s *ajustesService) ObtenerComercio(ctx context.Context) (*dto.ComercioResponse, error) {
	c, err := s.ajustes.ObtenerComercio(ctx)
	if err != nil {
		return nil, err
	}
	resp := mapComercio(c)
	return &resp, nil
}

func (s *ajustesService) ActualizarComercio(ctx context.Context, req dto.ActualizarComercioRequest) (*dto.ComercioResponse, error) {
	c, err := s.ajustes.ObtenerComercio(ctx)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.CUIT != nil {
		c.CUIT = req.CUIT
	}
	if req.LeyendaTicket != nil {
		c.LeyendaTicket = req.LeyendaTicket
	}
	if err := s.ajustes.GuardarComercio(ctx, c); err != nil {
		return nil, err
	}
	resp := mapComercio(c)
	return &resp, nil
}

func mapMetodoPago(m *model.MetodoPago) dto.MetodoPagoResponse {
	return dto.MetodoPagoResponse{ID: m.ID, Nombre: m.Nombre, RecargoPct: m.RecargoPct, Activo: m.Activo}
}

func mapZona(z *model.ZonaImpresion) dto.ZonaResponse {
	return dto.ZonaResponse{ID: z.ID, Nombre: z.Nombre, Impresora: z.Impresora, Activo: z.Activo}
}

func mapComercio(c *model.Comercio) dto.ComercioResponse {
	return dto.ComercioResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Direccion:     c.Direccion,
		Telefono:      c.Telefono,
		Email:         c.Email,
		CUIT:          c.CUIT,
		LeyendaTicket: c.LeyendaTicket,
	}
}
