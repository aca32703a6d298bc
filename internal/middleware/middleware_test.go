package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return zap.New(core).Sugar(), logs
}

func TestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("logs successful request at info", func(t *testing.T) {
		log, logs := newObservedLogger()
		r := gin.New()
		r.Use(Logger(log))
		r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok?verbose=1", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zap.InfoLevel, entry.Level)
		assert.Equal(t, "HTTP request", entry.Message)

		fields := entry.ContextMap()
		assert.EqualValues(t, http.StatusOK, fields["status"])
		assert.Equal(t, "/ok", fields["path"])
		assert.Equal(t, "verbose=1", fields["query"])
	})

	t.Run("logs client error at warn", func(t *testing.T) {
		log, logs := newObservedLogger()
		r := gin.New()
		r.Use(Logger(log))
		r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
	})

	t.Run("logs server error at error", func(t *testing.T) {
		log, logs := newObservedLogger()
		r := gin.New()
		r.Use(Logger(log))
		r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zap.ErrorLevel, logs.All()[0].Level)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("converts panic to 500 response", func(t *testing.T) {
		log, logs := newObservedLogger()
		r := gin.New()
		r.Use(Recovery(log))
		r.GET("/panic", func(c *gin.Context) { panic("something broke") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`, w.Body.String())

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "panic recovered", entry.Message)
		assert.Equal(t, "something broke", entry.ContextMap()["error"])
	})

	t.Run("passes through normal requests", func(t *testing.T) {
		log, logs := newObservedLogger()
		r := gin.New()
		r.Use(Recovery(log))
		r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, logs.Len())
	})
}
