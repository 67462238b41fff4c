package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", JWTAuth(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": GetJWTName(c)})
	})
	return engine
}

func doGet(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret-key-for-unit-tests!!", time.Hour, "billing-backend")
	engine := setupAuthRouter(jwtService)

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		token, _, err := jwtService.GenerateToken(&identity.User{
			ID: uuid.New(), Email: "ana@example.com.br", Name: "Ana", Role: identity.RoleFinance,
		})
		require.NoError(t, err)

		w := doGet(engine, "Bearer "+token)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Ana")
	})

	t.Run("missing header", func(t *testing.T) {
		w := doGet(engine, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token de acesso ausente")
	})

	t.Run("non bearer header", func(t *testing.T) {
		w := doGet(engine, "Basic abc")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Cabeçalho de autorização inválido")
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doGet(engine, "Bearer not.a.token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token inválido")
	})

	t.Run("expired token", func(t *testing.T) {
		expired := auth.NewJWTService("test-secret-key-for-unit-tests!!", -time.Minute, "billing-backend")
		token, _, err := expired.GenerateToken(&identity.User{ID: uuid.New(), Name: "Ana"})
		require.NoError(t, err)

		w := doGet(engine, "Bearer "+token)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expirado")
	})
}
