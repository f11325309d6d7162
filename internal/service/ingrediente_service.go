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

var ErrIngredienteNoEncontrado = errors.New("ingrediente no encontrado")

type IngredienteService interface {
	Crear(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.IngredienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error)
	CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error
}

type ingredienteService struct {
	ingredientes repository.IngredienteRepository
	categorias   repository.CategoriaRepository
	cache        *CartaCache
}

func NewIngredienteService(
	ingredientes repository.IngredienteRepository,
	categorias repository.CategoriaRepository,
	cache *CartaCache,
) IngredienteService {
	return &ingredienteService{ingredientes: ingredientes, categorias: categorias, cache: cache}
}

func (s *ingredienteService) Crear(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error) {
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, ErrCategoriaNoEncontrada
	}
	if _, err := s.categorias.ObtenerPorID(ctx, categoriaID); err != nil {
		return nil, ErrCategoriaNoEncontrada
	}

	unidad := req.Unidad
	if unidad == "" {
		unidad = "unidad"
	}
	ing := &model.Ingrediente{
		Nombre:      req.Nombre,
		CategoriaID: categoriaID,
		Precio:      req.Precio,
		Costo:       req.Costo,
		StockActual: req.StockActual,
		StockMinimo: req.StockMinimo,
		Unidad:      unidad,
		Activo:      true,
	}
	if err := s.ingredientes.Crear(ctx, ing); err != nil {
		return nil, err
	}
	s.cache.Invalidar(ctx)
	resp := mapIngrediente(ing)
	return &resp, nil
}

func (s *ingredienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error) {
	ing, err := s.ingredientes.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredienteNoEncontrado
		}
		return nil, err
	}
	resp := mapIngrediente(ing)
	return &resp, nil
}

func (s *ingredienteService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.IngredienteResponse, error) {
	ingredientes, err := s.ingredientes.Listar(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredienteResponse, 0, len(ingredientes))
	for i := range ingredientes {
		out = append(out, mapIngrediente(&ingredientes[i]))
	}
	return out, nil
}

func (s *ingredienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error) {
	ing, err := s.ingredientes.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrIngredienteNoEncontrado
	}

	if req.Nombre != nil {
		ing.Nombre = *req.Nombre
	}
	if req.CategoriaID != nil {
		categoriaID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, ErrCategoriaNoEncontrada
		}
		if _, err := s.categorias.ObtenerPorID(ctx, categoriaID); err != nil {
			return nil, ErrCategoriaNoEncontrada
		}
		ing.CategoriaID = categoriaID
	}
	if req.Precio != nil {
		ing.Precio = *req.Precio
	}
	if req.Costo != nil {
		ing.Costo = *req.Costo
	}
	if req.StockActual != nil {
		ing.StockActual = *req.StockActual
	}
	if req.StockMinimo != nil {
		ing.StockMinimo = *req.StockMinimo
	}
	if req.Unidad != nil {
		ing.Unidad = *req.Unidad
	}

	if err := s.ingredientes.Actualizar(ctx, ing); err != nil {
		return nil, err
	}
	s.cache.Invalidar(ctx)
	resp := mapIngrediente(ing)
	return &resp, nil
}

func (s *ingredienteService) CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	if err := s.ingredientes.CambiarActivo(ctx, id, activo); err != nil {
		return err
	}
	s.cache.Invalidar(ctx)
	return nil
}

func mapIngrediente(i *model.Ingrediente) dto.IngredienteResponse {
	return dto.IngredienteResponse{
		ID:          i.ID,
		Nombre:      i.Nombre,
		CategoriaID: i.CategoriaID,
		Precio:      i.Precio,
		Costo:       i.Costo,
		StockActual: i.StockActual,
		StockMinimo: i.StockMinimo,
		Unidad:      i.Unidad,
		Activo:      i.Activo,
	}
}
