package handler

import (
	"net/http"

	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type IngredientesHandler struct{ svc service.IngredienteService }

func NewIngredientesHandler(svc service.IngredienteService) *IngredientesHandler {
	return &IngredientesHandler{svc: svc}
}

// Crear POST /api/ingredientes
func (h *IngredientesHandler) Crear(c *gin.Context) {
	var req dto.CrearIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /api/ingredientes
func (h *IngredientesHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("activo") == "all"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /api/ingredientes/:id
func (h *IngredientesHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar PUT /api/ingredientes/:id
func (h *IngredientesHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarActivo PATCH /api/ingredientes/:id/activo
func (h *IngredientesHandler) CambiarActivo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarActivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarActivo(c.Request.Context(), id, req.Activo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
