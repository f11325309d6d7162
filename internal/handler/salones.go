package handler

import (
	"net/http"

	"github.com/GreennWolf/Antojos-sub000/internal/apierror"
	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalonesHandler struct{ svc service.SalonService }

func NewSalonesHandler(svc service.SalonService) *SalonesHandler {
	return &SalonesHandler{svc: svc}
}

// Crear POST /api/salones
func (h *SalonesHandler) Crear(c *gin.Context) {
	var req dto.CrearSalonRequest
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

// Listar GET /api/salones — includes each room's tables with live state.
func (h *SalonesHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("activo") == "all"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar PUT /api/salones/:id
func (h *SalonesHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarSalonRequest
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

// CambiarActivo PATCH /api/salones/:id/activo
func (h *SalonesHandler) CambiarActivo(c *gin.Context) {
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

// ── Mesas ─────────────────────────────────────────────────────────────────────

// CrearMesa POST /api/mesas
func (h *SalonesHandler) CrearMesa(c *gin.Context) {
	var req dto.CrearMesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMesa(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarMesas GET /api/mesas?salon_id=…
func (h *SalonesHandler) ListarMesas(c *gin.Context) {
	var salonID *uuid.UUID
	if raw := c.Query("salon_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("salon_id inválido"))
			return
		}
		salonID = &id
	}
	resp, err := h.svc.ListarMesas(c.Request.Context(), salonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarMesa PUT /api/mesas/:id
func (h *SalonesHandler) ActualizarMesa(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarMesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarMesa(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarActivoMesa PATCH /api/mesas/:id/activo
func (h *SalonesHandler) CambiarActivoMesa(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarActivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarActivoMesa(c.Request.Context(), id, req.Activo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
