package service

import (
	"context"
	"errors"

	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/model"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSalonNoEncontrado = errors.New("salón no encontrado")
	ErrMesaNoEncontrada  = errors.New("mesa no encontrada")
	ErrMesaOcupada       = errors.New("la mesa tiene un ticket abierto")
)

// SalonService manages the floor plan: dining rooms and their tables.
type SalonService interface {
	Crear(ctx context.Context, req dto.CrearSalonRequest) (*dto.SalonResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.SalonResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSalonRequest) (*dto.SalonResponse, error)
	CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error

	CrearMesa(ctx context.Context, req dto.CrearMesaRequest) (*dto.MesaResponse, error)
	ListarMesas(ctx context.Context, salonID *uuid.UUID) ([]dto.MesaResponse, error)
	ActualizarMesa(ctx context.Context, id uuid.UUID, req dto.ActualizarMesaRequest) (*dto.MesaResponse, error)
	CambiarActivoMesa(ctx context.Context, id uuid.UUID, activo bool) error
}

type salonService struct {
	salones repository.SalonRepository
}

func NewSalonService(salones repository.SalonRepository) SalonService {
	return &salonService{salones: salones}
}

func (s *salonService) Crear(ctx context.Context, req dto.CrearSalonRequest) (*dto.SalonResponse, error) {
	salon := &model.Salon{Nombre: req.Nombre, Orden: req.Orden, Activo: true}
	if err := s.salones.Crear(ctx, salon); err != nil {
		return nil, err
	}
	resp := mapSalon(salon)
	return &resp, nil
}

func (s *salonService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.SalonResponse, error) {
	salones, err := s.salones.Listar(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalonResponse, 0, len(salones))
	for i := range salones {
		out = append(out, mapSalon(&salones[i]))
	}
	return out, nil
}

func (s *salonService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSalonRequest) (*dto.SalonResponse, error) {
	salon, err := s.salones.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalonNoEncontrado
		}
		return nil, err
	}
	if req.Nombre != nil {
		salon.Nombre = *req.Nombre
	}
	if req.Orden != nil {
		salon.Orden = *req.Orden
	}
	if err := s.salones.Actualizar(ctx, salon); err != nil {
		return nil, err
	}
	resp := mapSalon(salon)
	return &resp, nil
}

func (s *salonService) CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return s.salones.CambiarActivo(ctx, id, activo)
}

func (s *salonService) CrearMesa(ctx context.Context, req dto.CrearMesaRequest) (*dto.MesaResponse, error) {
	salonID, err := uuid.Parse(req.SalonID)
	if err != nil {
		return nil, ErrSalonNoEncontrado
	}
	if _, err := s.salones.ObtenerPorID(ctx, salonID); err != nil {
		return nil, ErrSalonNoEncontrado
	}

	capacidad := req.Capacidad
	if capacidad == 0 {
		capacidad = 4
	}
	mesa := &model.Mesa{
		SalonID:   salonID,
		Numero:    req.Numero,
		Capacidad: capacidad,
		Estado:    model.MesaLibre,
		Activo:    true,
	}
	if err := s.salones.CrearMesa(ctx, mesa); err != nil {
		return nil, err
	}
	resp := mapMesa(mesa)
	return &resp, nil
}

func (s *salonService) ListarMesas(ctx context.Context, salonID *uuid.UUID) ([]dto.MesaResponse, error) {
	mesas, err := s.salones.ListarMesas(ctx, salonID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MesaResponse, 0, len(mesas))
	for i := range mesas {
		out = append(out, mapMesa(&mesas[i]))
	}
	return out, nil
}

func (s *salonService) ActualizarMesa(ctx context.Context, id uuid.UUID, req dto.ActualizarMesaRequest) (*dto.MesaResponse, error) {
	mesa, err := s.salones.ObtenerMesa(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMesaNoEncontrada
		}
		return nil, err
	}
	if req.SalonID != nil {
		salonID, err := uuid.Parse(*req.SalonID)
		if err != nil {
			return nil, ErrSalonNoEncontrado
		}
		if _, err := s.salones.ObtenerPorID(ctx, salonID); err != nil {
			return nil, ErrSalonNoEncontrado
		}
		mesa.SalonID = salonID
	}
	if req.Numero != nil {
		mesa.Numero = *req.Numero
	}
	if req.Capacidad != nil {
		mesa.Capacidad = *req.Capacidad
	}
	if err := s.salones.ActualizarMesa(ctx, mesa); err != nil {
		return nil, err
	}
	resp := mapMesa(mesa)
	return &resp, nil
}

func (s *salonService) CambiarActivoMesa(ctx context.Context, id uuid.UUID, activo bool) error {
	mesa, err := s.salones.ObtenerMesa(ctx, id)
	if err != nil {
		return ErrMesaNoEncontrada
	}
	// An open table cannot be removed from the floor plan
	if !activo && mesa.Estado == model.MesaAbierta {
		return ErrMesaOcupada
	}
	return s.salones.CambiarActivoMesa(ctx, id, activo)
}

func mapSalon(s *model.Salon) dto.SalonResponse {
	return dto.SalonResponse{
		ID:     s.ID,
		Nombre: s.Nombre,
		Orden:  s.Orden,
		Activo: s.Activo,
	}
}

func mapMesa(m *model.Mesa) dto.MesaResponse {
	return dto.MesaResponse{
		ID:        m.ID,
		SalonID:   m.SalonID,
		Numero:    m.Numero,
		Capacidad: m.Capacidad,
		Estado:    m.Estado,
		Activo:    m.Activo,
	}
}
