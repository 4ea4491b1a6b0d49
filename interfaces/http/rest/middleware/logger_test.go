package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clusterview-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMetrics_RecordsPerRoutePattern(t *testing.T) {
	// Arrange
	collector := observability.NewCollector("test")

	router := chi.NewRouter()
	router.Use(Metrics(collector))
	router.Get("/clusters/{clusterID}/detail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Act: two different ids, one route pattern.
	for _, path := range []string{"/clusters/GroupX/detail", "/clusters/GroupY/detail"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Assert
	counter := collector.HTTPRequests.WithLabelValues(http.MethodGet, "/clusters/{clusterID}/detail", "200")
	assert.InDelta(t, 2, testutil.ToFloat64(counter), 1e-9)
}

func TestLogger_PassesThrough(t *testing.T) {
	handler := Logger(zaptest.NewLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
