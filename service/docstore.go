package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/pkg/logger"
)

// Snapshot is one consistent view of the document list. Readers always see a
// complete snapshot; there is no intermediate state where the list and the
// stats disagree.
type Snapshot struct {
	Documents []model.Document     `json:"documents"`
	Stats     *model.DocumentStats `json:"stats,omitempty"`
	Err       string               `json:"error,omitempty"`
}

// DocumentStore is a read-through cache over the registry's document list and
// aggregate stats. Every mutation refreshes the whole snapshot; a failed load
// replaces the snapshot with an empty list and the error, never a partial
// view.
type DocumentStore struct {
	registry *Registry

	mu       sync.RWMutex
	snapshot Snapshot

	subMu sync.Mutex
	subs  []chan Snapshot
}

func NewDocumentStore(registry *Registry) *DocumentStore {
	return &DocumentStore{
		registry: registry,
		snapshot: Snapshot{Documents: []model.Document{}},
	}
}

// Snapshot returns the current view. The caller must not mutate the slice.
func (s *DocumentStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Subscribe returns a channel that receives each new snapshot. Slow
// subscribers drop intermediate snapshots; the latest one always lands.
func (s *DocumentStore) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

// Refresh reloads documents and stats in parallel and replaces the snapshot
// atomically. On failure the snapshot becomes empty with the error recorded;
// stale data is never kept alongside a failed load.
func (s *DocumentStore) Refresh(ctx context.Context) Snapshot {
	var (
		docs  []model.Document
		stats *model.DocumentStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = s.registry.ListDocuments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.registry.Stats(gctx)
		return err
	})

	var next Snapshot
	if err := g.Wait(); err != nil {
		logger.Error(ctx, "document snapshot load failed", "error", err)
		next = Snapshot{Documents: []model.Document{}, Err: err.Error()}
	} else {
		next = Snapshot{Documents: docs, Stats: stats}
	}

	s.replace(next)
	return next
}

// RemoveDocument deletes a document and refreshes the snapshot. A failed
// delete keeps the current documents and stats but records the failure in the
// snapshot's error, so observers see why the list did not change.
func (s *DocumentStore) RemoveDocument(ctx context.Context, id string) error {
	if err := s.registry.DeleteDocument(ctx, id); err != nil {
		logger.Error(ctx, "document delete failed", "document_id", id, "error", err)
		prior := s.Snapshot()
		s.replace(Snapshot{Documents: prior.Documents, Stats: prior.Stats, Err: err.Error()})
		return err
	}
	s.Refresh(ctx)
	return nil
}

func (s *DocumentStore) replace(next Snapshot) {
	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	s.subMu.Lock()
	for _, ch := range s.subs {
		// drop the stale pending snapshot, keep only the newest
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- next:
		default:
		}
	}
	s.subMu.Unlock()
}
