// Package memory holds the in-memory snapshot store. Snapshots are the
// only persistence this service has: client-local JSON exports of a
// rendered frame, written to a local directory on request. There is no
// server-side storage beyond that.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"clusterview-backend/application/ports"
	pkgerrors "clusterview-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot is one exported frame.
type Snapshot struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	Frame     ports.Frame `json:"frame"`
	Path      string      `json:"path"`
}

// SnapshotStore keeps exported snapshots in memory and mirrors each one
// to a JSON file in the export directory.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	dir       string
	logger    *zap.Logger
}

// NewSnapshotStore creates a snapshot store writing to dir.
func NewSnapshotStore(dir string, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[string]*Snapshot),
		dir:       dir,
		logger:    logger,
	}
}

// Export records the frame and writes it to a local JSON file.
func (s *SnapshotStore) Export(ctx context.Context, frame ports.Frame) (*Snapshot, error) {
	snapshot := &Snapshot{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Frame:     frame,
	}
	snapshot.Path = filepath.Join(s.dir, "cluster-snapshot-"+snapshot.ID+".json")

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, pkgerrors.NewInternal("encode snapshot", err)
	}

	if err := os.WriteFile(snapshot.Path, payload, 0o644); err != nil {
		return nil, pkgerrors.NewInternal("write snapshot file", err)
	}

	s.mu.Lock()
	s.snapshots[snapshot.ID] = snapshot
	s.mu.Unlock()

	s.logger.Info("snapshot exported",
		zap.String("id", snapshot.ID),
		zap.String("path", snapshot.Path),
	)

	return snapshot, nil
}

// Get retrieves a snapshot by id.
func (s *SnapshotStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[id]
	if !ok {
		return nil, pkgerrors.NewNotFound("snapshot: " + id)
	}
	return snapshot, nil
}

// List returns all snapshots exported this session, oldest first.
func (s *SnapshotStore) List(ctx context.Context) []*Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Snapshot, 0, len(s.snapshots))
	for _, snapshot := range s.snapshots {
		out = append(out, snapshot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
