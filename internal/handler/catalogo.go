package handler

import (
	"net/http"

	"github.com/GreennWolf/Antojos-sub000/internal/apierror"
	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CrearCategoria POST /api/categorias
func (h *CatalogoHandler) CrearCategoria(c *gin.Context) {
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCategoria(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarCategorias GET /api/categorias
func (h *CatalogoHandler) ListarCategorias(c *gin.Context) {
	incluirInactivas := c.Query("activo") == "all"
	resp, err := h.svc.ListarCategorias(c.Request.Context(), incluirInactivas)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCategoria PUT /api/categorias/:id
func (h *CatalogoHandler) ActualizarCategoria(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCategoria(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarActivoCategoria PATCH /api/categorias/:id/activo
func (h *CatalogoHandler) CambiarActivoCategoria(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarActivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarActivoCategoria(c.Request.Context(), id, req.Activo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// ── Subcategorías ─────────────────────────────────────────────────────────────

// CrearSubCategoria POST /api/subcategorias
func (h *CatalogoHandler) CrearSubCategoria(c *gin.Context) {
	var req dto.CrearSubCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearSubCategoria(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarSubCategorias GET /api/subcategorias?categoria_id=…
func (h *CatalogoHandler) ListarSubCategorias(c *gin.Context) {
	var categoriaID *uuid.UUID
	if raw := c.Query("categoria_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("categoria_id inválido"))
			return
		}
		categoriaID = &id
	}
	resp, err := h.svc.ListarSubCategorias(c.Request.Context(), categoriaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarSubCategoria PUT /api/subcategorias/:id
func (h *CatalogoHandler) ActualizarSubCategoria(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarSubCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarSubCategoria(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarActivoSubCategoria PATCH /api/subcategorias/:id/activo
func (h *CatalogoHandler) CambiarActivoSubCategoria(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarActivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarActivoSubCategoria(c.Request.Context(), id, req.Activo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// ── Carta ─────────────────────────────────────────────────────────────────────

// Carta GET /api/carta — the aggregated menu for the order screen.
func (h *CatalogoHandler) Carta(c *gin.Context) {
	resp, err := h.svc.Carta(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
