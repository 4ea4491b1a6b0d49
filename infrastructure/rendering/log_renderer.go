// Package rendering holds the default stand-ins for the drawing
// collaborators, which live outside this service. The log renderer keeps
// the last frame so read paths and tests can inspect what would have
// been drawn.
package rendering

import (
	"context"
	"sync"

	"clusterview-backend/application/ports"

	"go.uber.org/zap"
)

// LogRenderer records each frame and logs a one-line summary.
type LogRenderer struct {
	mu     sync.RWMutex
	last   ports.Frame
	logger *zap.Logger
}

// NewLogRenderer creates a renderer backed by the given logger.
func NewLogRenderer(logger *zap.Logger) *LogRenderer {
	return &LogRenderer{logger: logger}
}

// Render implements ports.Renderer.
func (r *LogRenderer) Render(ctx context.Context, frame ports.Frame) error {
	r.mu.Lock()
	r.last = frame
	r.mu.Unlock()

	r.logger.Info("frame rendered",
		zap.String("view", frame.View.String()),
		zap.Float64("threshold", frame.Threshold),
		zap.Int("clusters", len(frame.Clusters)),
	)
	return nil
}

// LastFrame returns the most recently rendered frame.
func (r *LogRenderer) LastFrame() ports.Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

// LogDetailSink logs cluster detail strings instead of displaying them.
type LogDetailSink struct {
	logger *zap.Logger
}

// NewLogDetailSink creates a detail sink backed by the given logger.
func NewLogDetailSink(logger *zap.Logger) *LogDetailSink {
	return &LogDetailSink{logger: logger}
}

// ShowDetail implements ports.DetailSink.
func (s *LogDetailSink) ShowDetail(ctx context.Context, detail string) error {
	s.logger.Info("cluster detail", zap.String("detail", detail))
	return nil
}
