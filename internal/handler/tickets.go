package handler

import (
	"net/http"

	"github.com/GreennWolf/Antojos-sub000/internal/apierror"
	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/middleware"
	"github.com/GreennWolf/Antojos-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TicketsHandler struct{ svc service.TicketService }

func NewTicketsHandler(svc service.TicketService) *TicketsHandler {
	return &TicketsHandler{svc: svc}
}

// usuarioID extracts the authenticated user's ID from the JWT claims.
func usuarioID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// ── Draft lifecycle ───────────────────────────────────────────────────────────

// Abrir POST /api/tickets-temps/:mesaID/abrir
func (h *TicketsHandler) Abrir(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	uid, ok := usuarioID(c)
	if !ok {
		return
	}
	var req dto.AbrirMesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AbrirMesa(c.Request.Context(), mesaID, uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /api/tickets-temps/:mesaID
func (h *TicketsHandler) Obtener(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), mesaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarAbiertas GET /api/tickets-temps
func (h *TicketsHandler) ListarAbiertas(c *gin.Context) {
	resp, err := h.svc.ListarAbiertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Composition ───────────────────────────────────────────────────────────────

// AgregarLinea POST /api/tickets-temps/:mesaID/lineas
func (h *TicketsHandler) AgregarLinea(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	var req dto.AgregarLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarLinea(c.Request.Context(), mesaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarCantidad PATCH /api/tickets-temps/:mesaID/lineas/:lineaID/cantidad
func (h *TicketsHandler) CambiarCantidad(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	lineaID, ok := parseID(c, "lineaID")
	if !ok {
		return
	}
	var req dto.CambiarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarCantidad(c.Request.Context(), mesaID, lineaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarLinea DELETE /api/tickets-temps/:mesaID/lineas/:lineaID
// Requires the waiter's PIN; the role must allow removing lines.
func (h *TicketsHandler) QuitarLinea(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	lineaID, ok := parseID(c, "lineaID")
	if !ok {
		return
	}
	uid, ok := usuarioID(c)
	if !ok {
		return
	}
	var req dto.QuitarLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.QuitarLinea(c.Request.Context(), mesaID, lineaID, uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarIngrediente POST /api/tickets-temps/:mesaID/lineas/:lineaID/ingredientes
func (h *TicketsHandler) AgregarIngrediente(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	lineaID, ok := parseID(c, "lineaID")
	if !ok {
		return
	}
	var req dto.AgregarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarIngrediente(c.Request.Context(), mesaID, lineaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarIngrediente DELETE /api/tickets-temps/:mesaID/lineas/:lineaID/ingredientes/:ingredienteID
func (h *TicketsHandler) QuitarIngrediente(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	lineaID, ok := parseID(c, "lineaID")
	if !ok {
		return
	}
	ingredienteID, ok := parseID(c, "ingredienteID")
	if !ok {
		return
	}
	var req dto.QuitarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.QuitarIngrediente(c.Request.Context(), mesaID, lineaID, ingredienteID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Observar PUT /api/tickets-temps/:mesaID/lineas/:lineaID/observacion
func (h *TicketsHandler) Observar(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	lineaID, ok := parseID(c, "lineaID")
	if !ok {
		return
	}
	var req dto.ObservacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Observar(c.Request.Context(), mesaID, lineaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AplicarDescuento PATCH /api/tickets-temps/:mesaID/descuento
// Requires the waiter's PIN; the role must allow discounts.
func (h *TicketsHandler) AplicarDescuento(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	uid, ok := usuarioID(c)
	if !ok {
		return
	}
	var req dto.DescuentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AplicarDescuento(c.Request.Context(), mesaID, uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Split / merge ─────────────────────────────────────────────────────────────

// Dividir POST /api/tickets-temps/:mesaID/dividir
func (h *TicketsHandler) Dividir(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	var req dto.DividirRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Dividir(c.Request.Context(), mesaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Juntar POST /api/tickets-temps/:mesaID/juntar
func (h *TicketsHandler) Juntar(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	var req dto.JuntarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Juntar(c.Request.Context(), mesaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Pre-bill and close ────────────────────────────────────────────────────────

// Precuenta POST /api/precuentas/:mesaID
func (h *TicketsHandler) Precuenta(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	uid, ok := usuarioID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Precuenta(c.Request.Context(), mesaID, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar POST /api/tickets-temps/:mesaID/cerrar
func (h *TicketsHandler) Cerrar(c *gin.Context) {
	mesaID, ok := parseID(c, "mesaID")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	if !claims.Permisos.CerrarMesas {
		c.JSON(http.StatusForbidden, apierror.New("El rol no permite cerrar mesas"))
		return
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido"))
		return
	}
	var req dto.CerrarMesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.Cerrar(c.Request.Context(), mesaID, uid, claims.Nombre, req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ── Closed tickets ────────────────────────────────────────────────────────────

// ListarTickets GET /api/tickets
func (h *TicketsHandler) ListarTickets(c *gin.Context) {
	var filter dto.TicketFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("filtros inválidos: "+err.Error()))
		return
	}
	resp, err := h.svc.ListarTickets(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerTicket GET /api/tickets/:id
func (h *TicketsHandler) ObtenerTicket(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerTicket(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnularTicket POST /api/tickets/:id/anular
func (h *TicketsHandler) AnularTicket(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.AnularTicket(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
