package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rshade/freightprint/internal/engine"
)

// MemoryStore is an in-memory Store for tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]engine.FootprintRecord
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]engine.FootprintRecord)}
}

// Save stores the record keyed by its id.
func (s *MemoryStore) Save(ctx context.Context, rec engine.FootprintRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return rec.ID, nil
}

// ListByUser returns the user's records newest first.
func (s *MemoryStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]engine.FootprintRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	var result []engine.FootprintRecord
	for _, rec := range s.records {
		if rec.UserID == userID {
			result = append(result, rec)
		}
	}
	s.mu.RUnlock()

	// Newest first; ULIDs are time-ordered so they break timestamp ties.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CalculatedAt.Equal(result[j].CalculatedAt) {
			return result[i].CalculatedAt.After(result[j].CalculatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// GetByID returns a record or ErrNotFound.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (engine.FootprintRecord, error) {
	if err := ctx.Err(); err != nil {
		return engine.FootprintRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return engine.FootprintRecord{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes a record after checking ownership.
func (s *MemoryStore) Delete(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if rec.UserID != userID {
		return ErrUnauthorized
	}
	delete(s.records, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
