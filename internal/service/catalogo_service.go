package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/model"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrCategoriaNoEncontrada    = errors.New("categoría no encontrada")
	ErrSubCategoriaNoEncontrada = errors.New("subcategoría no encontrada")
	ErrNombreDuplicado          = errors.New("ya existe una categoría con ese nombre")
)

const (
	cartaCacheKey = "carta:v1"
	cartaCacheTTL = 5 * time.Minute
)

// CartaCache keeps the aggregated menu in Redis so the order screen does not
// hammer Postgres with joins on every table open. Any catalog write
// invalidates; misses rebuild lazily.
type CartaCache struct{ rdb *redis.Client }

func NewCartaCache(rdb *redis.Client) *CartaCache { return &CartaCache{rdb: rdb} }

func (c *CartaCache) Obtener(ctx context.Context) (*dto.CartaResponse, bool) {
	data, err := c.rdb.Get(ctx, cartaCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var carta dto.CartaResponse
	if err := json.Unmarshal(data, &carta); err != nil {
		return nil, false
	}
	return &carta, true
}

func (c *CartaCache) Guardar(ctx context.Context, carta *dto.CartaResponse) {
	data, err := json.Marshal(carta)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cartaCacheKey, data, cartaCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo cachear la carta")
	}
}

func (c *CartaCache) Invalidar(ctx context.Context) {
	if err := c.rdb.Del(ctx, cartaCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la cache de carta")
	}
}

// CatalogoService manages categories, subcategories and the aggregated menu.
type CatalogoService interface {
	CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	ListarCategorias(ctx context.Context, incluirInactivas bool) ([]dto.CategoriaResponse, error)
	ActualizarCategoria(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	CambiarActivoCategoria(ctx context.Context, id uuid.UUID, activo bool) error

	CrearSubCategoria(ctx context.Context, req dto.CrearSubCategoriaRequest) (*dto.SubCategoriaResponse, error)
	ListarSubCategorias(ctx context.Context, categoriaID *uuid.UUID) ([]dto.SubCategoriaResponse, error)
	ActualizarSubCategoria(ctx context.Context, id uuid.UUID, req dto.ActualizarSubCategoriaRequest) (*dto.SubCategoriaResponse, error)
	CambiarActivoSubCategoria(ctx context.Context, id uuid.UUID, activo bool) error

	Carta(ctx context.Context) (*dto.CartaResponse, error)
}

type catalogoService struct {
	categorias   repository.CategoriaRepository
	productos    repository.ProductoRepository
	ingredientes repository.IngredienteRepository
	cache        *CartaCache
}

func NewCatalogoService(
	categorias repository.CategoriaRepository,
	productos repository.ProductoRepository,
	ingredientes repository.IngredienteRepository,
	cache *CartaCache,
) CatalogoService {
	return &catalogoService{
		categorias:   categorias,
		productos:    productos,
		ingredientes: ingredientes,
		cache:        cache,
	}
}

func (s *catalogoService) CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	if _, err := s.categorias.ObtenerPorNombre(ctx, req.Nombre); err == nil {
		return nil, ErrNombreDuplicado
	}
	c := &model.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Orden:       req.Orden,
		Activo:      true,
	}
	if err := s.categorias.Crear(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Invalidar(ctx)
	resp := mapCategoria(c)
	return &resp, nil
}

func (s *catalogoService) ListarCategorias(ctx context.Context, incluirInactivas bool) ([]dto.CategoriaResponse, error) {
	categorias, err := s.categorias.Listar(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		out = append(out, mapCategoria(&categorias[i]))
	}
	return out, nil
}

func (s *catalogoService) ActualizarCategoria(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.categorias.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoriaNoEncontrada
		}
		return nil, err
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}
	if req.Orden != nil {
		c.Orden = *req.Orden
	}
	if err := s.categorias.Actualizar(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Invalidar(ctx)
	resp := mapCategoria(c)
	return &resp, nil
}

func (s *catalogoService) CambiarActivoCategoria(ctx context.Context, id uuid.UUID, activo bool) error {
	if err := s.categorias.CambiarActivo(ctx, id, activo); err != nil {
		return err
	}
	s.cache.Invalidar(ctx)
	return nil
}

func (s *catalogoService) CrearSubCategoria(ctx context.Context, req dto.CrearSubCategoriaRequest) (*dto.SubCategoriaResponse, error) {
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, ErrCategoriaNoEncontrada
	}
	if _, err := s.categorias.ObtenerPorID(ctx, categoriaID); err != nil {
		return nil, ErrCategoriaNoEncontrada
	}

	sub := &model.SubCategoria{
		CategoriaID: categoriaID,
		Nombre:      req.Nombre,
		IVAPct:      req.IVAPct,
		Orden:       req.Orden,
		Activo:      true,
	}
	if req.ZonaID != nil {
		zonaID, err := uuid.Parse(*req.ZonaID)
		if err != nil {
			return nil, errors.New("zona de impresión inválida")
		}
		sub.ZonaID = &zonaID
	}
	if err := s.categorias.CrearSub(ctx, sub); err != nil {
		return nil, err
	}

	if len(req.Ingredientes) > 0 {
		ingredientes, err := s.resolverIngredientes(ctx, req.Ingredientes)
		if err != nil {
			return nil, err
		}
		if err := s.categorias.ReemplazarIngredientesPermitidos(ctx, sub, ingredientes); err != nil {
			return nil, err
		}
		sub.IngredientesPermitidos = ingredientes
	}

	s.cache.Invalidar(ctx)
	resp := mapSubCategoria(sub)
	return &resp, nil
}

func (s *catalogoService) ListarSubCategorias(ctx context.Context, categoriaID *uuid.UUID) ([]dto.SubCategoriaResponse, error) {
	subs, err := s.categorias.ListarSubs(ctx, categoriaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubCategoriaResponse, 0, len(subs))
	for i := range subs {
		out = append(out, mapSubCategoria(&subs[i]))
	}
	return out, nil
}

func (s *catalogoService) ActualizarSubCategoria(ctx context.Context, id uuid.UUID, req dto.ActualizarSubCategoriaRequest) (*dto.SubCategoriaResponse, error) {
	sub, err := s.categorias.ObtenerSubPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubCategoriaNoEncontrada
		}
		return nil, err
	}

	if req.Nombre != nil {
		sub.Nombre = *req.Nombre
	}
	if req.IVAPct != nil {
		sub.IVAPct = *req.IVAPct
	}
	if req.Orden != nil {
		sub.Orden = *req.Orden
	}
	if req.ZonaID != nil {
		zonaID, err := uuid.Parse(*req.ZonaID)
		if err != nil {
			return nil, errors.New("zona de impresión inválida")
		}
		sub.ZonaID = &zonaID
	}
	if err := s.categorias.ActualizarSub(ctx, sub); err != nil {
		return nil, err
	}

	if req.Ingredientes != nil {
		ingredientes, err := s.resolverIngredientes(ctx, req.Ingredientes)
		if err != nil {
			return nil, err
		}
		if err := s.categorias.ReemplazarIngredientesPermitidos(ctx, sub, ingredientes); err != nil {
			return nil, err
		}
		sub.IngredientesPermitidos = ingredientes
	}

	s.cache.Invalidar(ctx)
	resp := mapSubCategoria(sub)
	return &resp, nil
}

func (s *catalogoService) CambiarActivoSubCategoria(ctx context.Context, id uuid.UUID, activo bool) error {
	if err := s.categorias.CambiarActivoSub(ctx, id, activo); err != nil {
		return err
	}
	s.cache.Invalidar(ctx)
	return nil
}

// Carta builds the aggregated menu: active categories, their subcategories and
// each subcategory's active products with recipes, served from cache when warm.
func (s *catalogoService) Carta(ctx context.Context) (*dto.CartaResponse, error) {
	if carta, ok := s.cache.Obtener(ctx); ok {
		return carta, nil
	}

	categorias, err := s.categorias.Listar(ctx, false)
	if err != nil {
		return nil, err
	}
	subs, err := s.categorias.ListarSubs(ctx, nil)
	if err != nil {
		return nil, err
	}

	carta := &dto.CartaResponse{Categorias: make([]dto.CartaCategoria, 0, len(categorias))}
	for _, cat := range categorias {
		cc := dto.CartaCategoria{ID: cat.ID, Nombre: cat.Nombre}
		for i := range subs {
			sub := &subs[i]
			if sub.CategoriaID != cat.ID || !sub.Activo {
				continue
			}
			productos, err := s.productos.ListarPorSubCategoria(ctx, sub.ID)
			if err != nil {
				return nil, err
			}
			cs := dto.CartaSubCategoria{ID: sub.ID, Nombre: sub.Nombre}
			for j := range productos {
				cs.Productos = append(cs.Productos, mapProducto(&productos[j]))
			}
			cc.SubCategorias = append(cc.SubCategorias, cs)
		}
		carta.Categorias = append(carta.Categorias, cc)
	}

	s.cache.Guardar(ctx, carta)
	return carta, nil
}

func (s *catalogoService) resolverIngredientes(ctx context.Context, ids []string) ([]model.Ingrediente, error) {
	uuids := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrIngredienteNoEncontrado
		}
		uuids = append(uuids, id)
	}
	ingredientes, err := s.ingredientes.ObtenerPorIDs(ctx, uuids)
	if err != nil {
		return nil, err
	}
	if len(ingredientes) != len(uuids) {
		return nil, ErrIngredienteNoEncontrado
	}
	return ingredientes, nil
}

func mapCategoria(c *model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Orden:       c.Orden,
		Activo:      c.Activo,
	}
}

func mapSubCategoria(s *model.SubCategoria) dto.SubCategoriaResponse {
	resp := dto.SubCategoriaResponse{
		ID:          s.ID,
		CategoriaID: s.CategoriaID,
		Nombre:      s.Nombre,
		IVAPct:      s.IVAPct,
		ZonaID:      s.ZonaID,
		Orden:       s.Orden,
		Activo:      s.Activo,
	}
	for _, ing := range s.IngredientesPermitidos {
		resp.Ingredientes = append(resp.Ingredientes, ing.ID)
	}
	return resp
}
