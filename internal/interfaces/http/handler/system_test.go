package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping() error { return f.err }

func setupSystemRouter(p Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSystemHandler(p, "billing-backend", "1.0.0")
	engine := gin.New()
	engine.GET("/health", h.Health)
	return engine
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("reports ok when the database responds", func(t *testing.T) {
		engine := setupSystemRouter(&fakePinger{})

		w := doJSON(t, engine, http.MethodGet, "/health", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeEnvelope(t, w)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "up", body["database"])
		assert.Equal(t, "billing-backend", body["app"])
	})

	t.Run("degrades when the database is down", func(t *testing.T) {
		engine := setupSystemRouter(&fakePinger{err: errors.New("connection refused")})

		w := doJSON(t, engine, http.MethodGet, "/health", nil)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decodeEnvelope(t, w)
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, "down", body["database"])
	})
}
