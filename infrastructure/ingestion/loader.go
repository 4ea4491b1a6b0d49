package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"clusterview-backend/domain/core/entities"
	domainservices "clusterview-backend/domain/services"
	"clusterview-backend/infrastructure/config"
	pkgerrors "clusterview-backend/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DocumentLoader implements ports.GraphSource. A local path takes
// precedence; remote fetches go through a circuit breaker so a flapping
// document host does not stall every reload trigger.
type DocumentLoader struct {
	path       string
	url        string
	format     string
	delim      string
	classifier domainservices.GroupClassifier
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewDocumentLoader creates a loader for the configured document source.
func NewDocumentLoader(cfg *config.Config, classifier domainservices.GroupClassifier, logger *zap.Logger) *DocumentLoader {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "document-fetch",
		MaxRequests: cfg.Fetch.BreakerMaxRequests,
		Interval:    time.Duration(cfg.Fetch.BreakerIntervalSeconds) * time.Second,
		Timeout:     time.Duration(cfg.Fetch.BreakerTimeoutSeconds) * time.Second,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &DocumentLoader{
		path:       cfg.DocumentPath,
		url:        cfg.DocumentURL,
		format:     cfg.DocumentFormat,
		delim:      ";",
		classifier: classifier,
		client: &http.Client{
			Timeout: time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		},
		breaker: breaker,
		logger:  logger,
	}
}

// Load fetches, parses, and converts the configured document.
func (l *DocumentLoader) Load(ctx context.Context) ([]*entities.Node, []*entities.Edge, error) {
	raw, err := l.fetch(ctx)
	if err != nil {
		return nil, nil, err
	}

	var doc *Document
	switch l.format {
	case "triples":
		doc, err = ParseTriples(bytes.NewReader(raw), l.delim)
	default:
		doc, err = ParseDocument(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, nil, err
	}

	l.logger.Debug("document parsed",
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("edges", len(doc.Edges)),
	)

	return doc.ToDomain(l.classifier)
}

func (l *DocumentLoader) fetch(ctx context.Context) ([]byte, error) {
	if l.path != "" {
		raw, err := os.ReadFile(l.path)
		if err != nil {
			return nil, pkgerrors.NewInternal("read document file", err)
		}
		return raw, nil
	}

	if l.url == "" {
		return nil, pkgerrors.NewValidation("no document source configured")
	}

	result, err := l.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("document fetch returned %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, pkgerrors.NewInternal("fetch document", err)
	}

	return result.([]byte), nil
}
