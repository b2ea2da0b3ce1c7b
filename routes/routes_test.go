package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"postapi/controllers"
	"postapi/handlers"
	"postapi/logger"
	"postapi/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitForTests()
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T, health HealthChecker) *gin.Engine {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := services.NewHubService(ctx)
	r := gin.New()
	SetupRoutes(r,
		controllers.NewPostController(nil, time.Second),
		handlers.NewWebSocketHandler(hub, nil),
		health,
		prometheus.NewRegistry(),
	)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return w
}

func TestSetupRoutes(t *testing.T) {
	t.Run("Should report healthy storage", func(t *testing.T) {
		r := newEngine(t, func(context.Context) error { return nil })

		w := get(r, "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("Should report unreachable storage as unavailable", func(t *testing.T) {
		r := newEngine(t, func(context.Context) error {
			return errors.New("failed to connect to `host=db.internal user=app`: dial tcp: refused")
		})

		w := get(r, "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "db.internal")
	})

	t.Run("Should expose metrics", func(t *testing.T) {
		r := newEngine(t, func(context.Context) error { return nil })

		assert.Equal(t, http.StatusOK, get(r, "/metrics").Code)
	})

	t.Run("Should serve the swagger document", func(t *testing.T) {
		r := newEngine(t, func(context.Context) error { return nil })

		w := get(r, "/swagger/doc.json")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"/posts/{id}"`)
	})

	t.Run("Should document every post route", func(t *testing.T) {
		r := newEngine(t, func(context.Context) error { return nil })
		var doc struct {
			Paths map[string]map[string]json.RawMessage `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(get(r, "/swagger/doc.json").Body.Bytes(), &doc))

		for _, route := range r.Routes() {
			if !strings.HasPrefix(route.Path, "/posts") {
				continue
			}
			path := strings.ReplaceAll(route.Path, ":id", "{id}")
			require.Contains(t, doc.Paths, path)
			assert.Contains(t, doc.Paths[path], strings.ToLower(route.Method), "%s %s", route.Method, path)
		}
	})

	t.Run("Should reject invalid post ids before touching storage", func(t *testing.T) {
		r := newEngine(t, func(context.Context) error { return nil })

		assert.Equal(t, http.StatusBadRequest, get(r, "/posts/abc").Code)
	})
}
