package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"clusterview-backend/infrastructure/config"
	pkgerrors "clusterview-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func loaderConfig() *config.Config {
	return &config.Config{
		DocumentFormat: "json",
		Fetch: config.FetchConfig{
			TimeoutSeconds:         2,
			BreakerMaxRequests:     1,
			BreakerIntervalSeconds: 1,
			BreakerTimeoutSeconds:  1,
		},
	}
}

func TestDocumentLoader_LoadFromFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	cfg := loaderConfig()
	cfg.DocumentPath = path
	loader := NewDocumentLoader(cfg, testClassifier(), zaptest.NewLogger(t))

	// Act
	nodes, edges, err := loader.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Len(t, nodes, 3)
	assert.Len(t, edges, 2)
}

func TestDocumentLoader_LoadFromURL(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleDocument))
	}))
	defer server.Close()

	cfg := loaderConfig()
	cfg.DocumentURL = server.URL
	loader := NewDocumentLoader(cfg, testClassifier(), zaptest.NewLogger(t))

	// Act
	nodes, edges, err := loader.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Len(t, nodes, 3)
	assert.Len(t, edges, 2)
}

func TestDocumentLoader_PathTakesPrecedenceOverURL(t *testing.T) {
	// Arrange: the server would fail the test if contacted.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("remote fetch attempted despite a configured local path")
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	cfg := loaderConfig()
	cfg.DocumentPath = path
	cfg.DocumentURL = server.URL
	loader := NewDocumentLoader(cfg, testClassifier(), zaptest.NewLogger(t))

	// Act / Assert
	_, _, err := loader.Load(context.Background())
	require.NoError(t, err)
}

func TestDocumentLoader_TriplesFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	require.NoError(t, os.WriteFile(path, []byte("a;b\na;b;0.5\n"), 0o644))

	cfg := loaderConfig()
	cfg.DocumentPath = path
	cfg.DocumentFormat = "triples"
	loader := NewDocumentLoader(cfg, testClassifier(), zaptest.NewLogger(t))

	nodes, edges, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, nodes, 2)
	assert.Len(t, edges, 1)
}

func TestDocumentLoader_NoSourceConfigured(t *testing.T) {
	loader := NewDocumentLoader(loaderConfig(), testClassifier(), zaptest.NewLogger(t))

	_, _, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestDocumentLoader_RemoteFailureTripsBreaker(t *testing.T) {
	// Arrange: the host always fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := loaderConfig()
	cfg.DocumentURL = server.URL
	loader := NewDocumentLoader(cfg, testClassifier(), zaptest.NewLogger(t))

	// Act: gobreaker's default trip rule opens after five consecutive
	// failures; every attempt surfaces as an internal error either way.
	for i := 0; i < 7; i++ {
		_, _, err := loader.Load(context.Background())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsInternal(err))
	}
}
