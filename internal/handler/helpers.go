package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/GreennWolf/Antojos-sub000/internal/apierror"
	"github.com/GreennWolf/Antojos-sub000/internal/pedido"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"
	"github.com/GreennWolf/Antojos-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID reads a UUID path parameter, writing a 400 on failure.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service sentinel errors onto HTTP status codes so every
// handler returns consistent responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrVersionStale):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrPermisoDenegado):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.Is(err, service.ErrMesaNoEncontrada),
		errors.Is(err, service.ErrMesaSinTicket),
		errors.Is(err, service.ErrSalonNoEncontrado),
		errors.Is(err, service.ErrProductoNoEncontrado),
		errors.Is(err, service.ErrIngredienteNoEncontrado),
		errors.Is(err, service.ErrCategoriaNoEncontrada),
		errors.Is(err, service.ErrSubCategoriaNoEncontrada),
		errors.Is(err, service.ErrUsuarioNoEncontrado),
		errors.Is(err, service.ErrRolNoEncontrado),
		errors.Is(err, service.ErrMetodoPagoNoEncontrado),
		errors.Is(err, service.ErrZonaNoEncontrada),
		errors.Is(err, service.ErrTicketNoEncontrado),
		errors.Is(err, pedido.ErrLineaNoEncontrada),
		errors.Is(err, pedido.ErrIngredienteNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrBorradorCorrupto):
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCredencialesInvalidas),
		errors.Is(err, service.ErrRefreshInvalido),
		errors.Is(err, service.ErrPINInvalido):
		// A wrong PIN is failed re-authentication, not a missing permission
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
