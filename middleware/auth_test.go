package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"carebook/config"
	"carebook/models"
	"carebook/utils"
)

type boundActor struct {
	id   string
	role string
}

func newAuthRouter(requiredRole string) (*gin.Engine, *boundActor) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"

	bound := &boundActor{}
	router := gin.New()
	router.GET("/protected", JWTAuth(requiredRole), func(c *gin.Context) {
		bound.id = ActorID(c)
		bound.role = Role(c)
		c.JSON(http.StatusOK, gin.H{"actor": bound.id})
	})
	return router, bound
}

func TestJWTAuth_BindsActorFromToken(t *testing.T) {
	router, bound := newAuthRouter(models.RoleProvider)
	token, err := utils.GenerateToken("P1", models.RoleProvider, time.Hour)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "P1", bound.id)
	assert.Equal(t, models.RoleProvider, bound.role)
}

func TestJWTAuth_WrongRoleForbidden(t *testing.T) {
	router, _ := newAuthRouter(models.RoleProvider)
	token, err := utils.GenerateToken("R1", models.RoleRequester, time.Hour)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuth_MissingHeaderUnauthorized(t *testing.T) {
	router, _ := newAuthRouter("")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredTokenUnauthorized(t *testing.T) {
	router, _ := newAuthRouter("")
	token, err := utils.GenerateToken("R1", models.RoleRequester, -time.Minute)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_GarbageTokenUnauthorized(t *testing.T) {
	router, _ := newAuthRouter("")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
