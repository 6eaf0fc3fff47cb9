package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindzone/grindzone-api/metrics"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, "/missing", line["path"])
	assert.NotEmpty(t, line["request_id"])
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	m := metrics.NewMock()

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/tournaments/{tournamentID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tournaments/"+id, nil))
	}
	assert.Equal(t, 3, m.Requests())
	assert.Equal(t, []string{"/api/tournaments/{tournamentID}"}, m.Routes())
}

func TestRoutePattern(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tournaments/a", nil)
	assert.Equal(t, "unmatched", routePattern(req))

	rctx := chi.NewRouteContext()
	rctx.RoutePatterns = []string{"/api/tournaments/{tournamentID}"}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	assert.Equal(t, "/api/tournaments/{tournamentID}", routePattern(req))
}
