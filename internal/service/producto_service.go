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

var ErrProductoNoEncontrado = errors.New("producto no encontrado")

// ProductoService manages menu products and their recipes.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error
}

type productoService struct {
	productos    repository.ProductoRepository
	categorias   repository.CategoriaRepository
	ingredientes repository.IngredienteRepository
	cache        *CartaCache
}

func NewProductoService(
	productos repository.ProductoRepository,
	categorias repository.CategoriaRepository,
	ingredientes repository.IngredienteRepository,
	cache *CartaCache,
) ProductoService {
	return &productoService{
		productos:    productos,
		categorias:   categorias,
		ingredientes: ingredientes,
		cache:        cache,
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	subID, err := uuid.Parse(req.SubCategoriaID)
	if err != nil {
		return nil, ErrSubCategoriaNoEncontrada
	}
	if _, err := s.categorias.ObtenerSubPorID(ctx, subID); err != nil {
		return nil, ErrSubCategoriaNoEncontrada
	}

	receta, err := s.construirReceta(ctx, uuid.Nil, req.Receta)
	if err != nil {
		return nil, err
	}

	p := &model.Producto{
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		SubCategoriaID: subID,
		Precio:         req.Precio,
		Costo:          req.Costo,
		ControlaStock:  req.ControlaStock,
		StockActual:    req.StockActual,
		StockMinimo:    req.StockMinimo,
		Activo:         true,
	}
	if err := s.productos.Crear(ctx, p); err != nil {
		return nil, err
	}

	for i := range receta {
		receta[i].ProductoID = p.ID
	}
	if len(receta) > 0 {
		if err := s.productos.ReemplazarReceta(ctx, p.ID, receta); err != nil {
			return nil, err
		}
	}
	if len(req.Relacionados) > 0 {
		relacionados, err := s.construirRelacionados(p.ID, req.Relacionados)
		if err != nil {
			return nil, err
		}
		if err := s.productos.ReemplazarRelacionados(ctx, p.ID, relacionados); err != nil {
			return nil, err
		}
	}

	s.cache.Invalidar(ctx)
	return s.Obtener(ctx, p.ID)
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.productos.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	resp := mapProducto(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.productos.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductoListResponse{
		Data:  make([]dto.ProductoResponse, 0, len(productos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range productos {
		resp.Data = append(resp.Data, mapProducto(&productos[i]))
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.productos.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.SubCategoriaID != nil {
		subID, err := uuid.Parse(*req.SubCategoriaID)
		if err != nil {
			return nil, ErrSubCategoriaNoEncontrada
		}
		if _, err := s.categorias.ObtenerSubPorID(ctx, subID); err != nil {
			return nil, ErrSubCategoriaNoEncontrada
		}
		p.SubCategoriaID = subID
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.Costo != nil {
		p.Costo = *req.Costo
	}
	if req.ControlaStock != nil {
		p.ControlaStock = *req.ControlaStock
	}
	if req.StockActual != nil {
		p.StockActual = *req.StockActual
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}

	if err := s.productos.Actualizar(ctx, p); err != nil {
		return nil, err
	}

	if req.Receta != nil {
		receta, err := s.construirReceta(ctx, p.ID, req.Receta)
		if err != nil {
			return nil, err
		}
		if err := s.productos.ReemplazarReceta(ctx, p.ID, receta); err != nil {
			return nil, err
		}
	}
	if req.Relacionados != nil {
		relacionados, err := s.construirRelacionados(p.ID, req.Relacionados)
		if err != nil {
			return nil, err
		}
		if err := s.productos.ReemplazarRelacionados(ctx, p.ID, relacionados); err != nil {
			return nil, err
		}
	}

	s.cache.Invalidar(ctx)
	return s.Obtener(ctx, p.ID)
}

func (s *productoService) CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	if err := s.productos.CambiarActivo(ctx, id, activo); err != nil {
		return err
	}
	s.cache.Invalidar(ctx)
	return nil
}

func (s *productoService) construirReceta(ctx context.Context, productoID uuid.UUID, items []dto.RecetaItemRequest) ([]model.RecetaItem, error) {
	receta := make([]model.RecetaItem, 0, len(items))
	for _, item := range items {
		ingID, err := uuid.Parse(item.IngredienteID)
		if err != nil {
			return nil, ErrIngredienteNoEncontrado
		}
		ing, err := s.ingredientes.ObtenerPorID(ctx, ingID)
		if err != nil {
			return nil, ErrIngredienteNoEncontrado
		}
		unidad := item.Unidad
		if unidad == "" {
			unidad = ing.Unidad
		}
		receta = append(receta, model.RecetaItem{
			ProductoID:    productoID,
			IngredienteID: ing.ID,
			Cantidad:      item.Cantidad,
			Unidad:        unidad,
		})
	}
	return receta, nil
}

func (s *productoService) construirRelacionados(productoID uuid.UUID, ids []string) ([]model.ProductoRelacionado, error) {
	out := make([]model.ProductoRelacionado, 0, len(ids))
	for _, raw := range ids {
		relID, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrProductoNoEncontrado
		}
		if relID == productoID {
			return nil, errors.New("un producto no puede relacionarse consigo mismo")
		}
		out = append(out, model.ProductoRelacionado{ProductoID: productoID, RelacionadoID: relID})
	}
	return out, nil
}

func mapProducto(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		SubCategoriaID: p.SubCategoriaID,
		Precio:         p.Precio,
		Costo:          p.Costo,
		ControlaStock:  p.ControlaStock,
		StockActual:    p.StockActual,
		StockMinimo:    p.StockMinimo,
		Activo:         p.Activo,
	}
	for _, item := range p.Receta {
		ri := dto.RecetaItemResponse{
			IngredienteID: item.IngredienteID,
			Cantidad:      item.Cantidad,
			Unidad:        item.Unidad,
		}
		if item.Ingrediente != nil {
			ri.Nombre = item.Ingrediente.Nombre
			ri.Precio = item.Ingrediente.Precio
		}
		resp.Receta = append(resp.Receta, ri)
	}
	for _, rel := range p.Relacionados {
		resp.Relacionados = append(resp.Relacionados, rel.RelacionadoID)
	}
	return resp
}
