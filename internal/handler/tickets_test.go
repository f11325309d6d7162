package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GreennWolf/Antojos-sub000/internal/dto"
	"github.com/GreennWolf/Antojos-sub000/internal/middleware"
	"github.com/GreennWolf/Antojos-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubTicketSvc overrides only the PIN-gated operations; calling anything else
// panics on the nil embedded interface, which is fine for these tests.
type stubTicketSvc struct {
	service.TicketService
	err error
}

func (s *stubTicketSvc) QuitarLinea(_ context.Context, _, _, _ uuid.UUID, _ dto.QuitarLineaRequest) (*dto.TicketTempResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.TicketTempResponse{Version: 2}, nil
}

func (s *stubTicketSvc) AplicarDescuento(_ context.Context, _, _ uuid.UUID, _ dto.DescuentoRequest) (*dto.TicketTempResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.TicketTempResponse{Version: 2}, nil
}

func newGatedRouter(svcErr error, conClaims bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTicketsHandler(&stubTicketSvc{err: svcErr})

	r := gin.New()
	if conClaims {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ClaimsKey, &middleware.JWTClaims{
				UserID: uuid.New().String(),
				Nombre: "Caro",
				Rol:    "mozo",
			})
		})
	}
	r.DELETE("/api/tickets-temps/:mesaID/lineas/:lineaID", h.QuitarLinea)
	r.PATCH("/api/tickets-temps/:mesaID/descuento", h.AplicarDescuento)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// A wrong PIN is a failed re-authentication (401); a role without the flag is
// a missing permission (403). The two must stay distinguishable.
func TestOperacionesConPIN_CodigosDeEstado(t *testing.T) {
	mesaID := uuid.New().String()
	lineaID := uuid.New().String()

	quitarPath := "/api/tickets-temps/" + mesaID + "/lineas/" + lineaID
	quitarBody := `{"pin":"0000","version":1}`
	descuentoPath := "/api/tickets-temps/" + mesaID + "/descuento"
	descuentoBody := `{"descuento_pct":10,"pin":"0000","version":1}`

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		svcErr error
		want   int
	}{
		{"quitar linea pin incorrecto", http.MethodDelete, quitarPath, quitarBody, service.ErrPINInvalido, http.StatusUnauthorized},
		{"quitar linea rol sin permiso", http.MethodDelete, quitarPath, quitarBody, service.ErrPermisoDenegado, http.StatusForbidden},
		{"quitar linea autorizada", http.MethodDelete, quitarPath, quitarBody, nil, http.StatusOK},
		{"descuento pin incorrecto", http.MethodPatch, descuentoPath, descuentoBody, service.ErrPINInvalido, http.StatusUnauthorized},
		{"descuento rol sin permiso", http.MethodPatch, descuentoPath, descuentoBody, service.ErrPermisoDenegado, http.StatusForbidden},
		{"descuento autorizado", http.MethodPatch, descuentoPath, descuentoBody, nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newGatedRouter(tc.svcErr, true)
			w := doJSON(r, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestOperacionesConPIN_SinClaimsDevuelve401(t *testing.T) {
	// No claims in the context must yield a clean 401, never a panic
	r := newGatedRouter(nil, false)

	w := doJSON(r, http.MethodDelete,
		"/api/tickets-temps/"+uuid.New().String()+"/lineas/"+uuid.New().String(),
		`{"pin":"0000","version":1}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
