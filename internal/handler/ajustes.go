package handler

import (
	"net/http"

	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type AjustesHandler struct{ svc service.AjustesService }

func NewAjustesHandler(svc service.AjustesService) *AjustesHandler {
	return &AjustesHandler{svc: svc}
}

// ── Métodos de pago ───────────────────────────────────────────────────────────

// CrearMetodoPago POST /api/metodos-pago
func (h *AjustesHandler) CrearMetodoPago(c *gin.Context) {
	var req dto.CrearMetodoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMetodoPago(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarMetodosPago GET /api/metodos-pago
func (h *AjustesHandler) ListarMetodosPago(c *gin.Context) {
	resp, err := h.svc.ListarMetodosPago(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarMetodoPago PUT /api/metodos-pago/:id
func (h *AjustesHandler) ActualizarMetodoPago(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarMetodoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarMetodoPago(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarActivoMetodoPago PATCH /api/metodos-pago/:id/activo
func (h *AjustesHandler) CambiarActivoMetodoPago(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarActivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarActivoMetodoPago(c.Request.Context(), id, req.Activo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// ── Zonas de impresión ────────────────────────────────────────────────────────

// CrearZona POST /api/zonas
func (h *AjustesHandler) CrearZona(c *gin.Context) {
	var req dto.CrearZonaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearZona(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarZonas GET /api/zonas
func (h *AjustesHandler) ListarZonas(c *gin.Context) {
	resp, err := h.svc.ListarZonas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarZona PUT /api/zonas/:id
func (h *AjustesHandler) ActualizarZona(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarZonaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarZona(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarActivoZona PATCH /api/zonas/:id/activo
func (h *AjustesHandler) CambiarActivoZona(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarActivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarActivoZona(c.Request.Context(), id, req.Activo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// Impresoras GET /api/zonas/impresoras — names the print bridge can reach.
func (h *AjustesHandler) Impresoras(c *gin.Context) {
	nombres, err := h.svc.ImpresorasDisponibles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "puente de impresión inaccesible"})
		return
	}
	c.JSON(http.StatusOK, nombres)
}

// ── Comercio ──────────────────────────────────────────────────────────────────

// ObtenerComercio GET /api/comercio
func (h *AjustesHandler) ObtenerComercio(c *gin.Context) {
	resp, err := h.svc.ObtenerComercio(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarComercio PUT /api/comercio
func (h *AjustesHandler) ActualizarComercio(c *gin.Context) {
	var req dto.ActualizarComercioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarComercio(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
