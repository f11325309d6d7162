package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetClaims_SinClaimsDevuelveNil(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// Requests that never passed through JWTAuth must not panic
	assert.Nil(t, GetClaims(c))
}

func TestGetClaims_DevuelveClaimsTipados(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	claims := &JWTClaims{UserID: "u-1", Rol: "mozo"}
	c.Set(ClaimsKey, claims)
	assert.Equal(t, claims, GetClaims(c))
}

func TestGetClaims_TipoInesperadoDevuelveNil(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Set(ClaimsKey, "no-son-claims")
	assert.Nil(t, GetClaims(c))
}
