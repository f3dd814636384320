package memory

import (
	"context"
	"sync"
	"time"

	"stays/internal/app/middleware"
)

// IdempotencyStore keeps confirmation outcomes in process memory. Records
// older than ttl read as unseen and are pruned on the next save. A zero ttl
// keeps records forever.
type IdempotencyStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	records map[string]middleware.IdempotencyRecord
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		ttl:     ttl,
		now:     time.Now,
		records: make(map[string]middleware.IdempotencyRecord),
	}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok || s.expired(rec, s.now()) {
		return middleware.IdempotencyRecord{}, false, nil
	}
	return rec, true, nil
}

func (s *IdempotencyStore) Save(_ context.Context, rec middleware.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = now
	}
	for key, old := range s.records {
		if s.expired(old, now) {
			delete(s.records, key)
		}
	}
	s.records[rec.Key] = rec
	return nil
}

// Len reports the stored records, expired ones included until pruned.
func (s *IdempotencyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *IdempotencyStore) expired(rec middleware.IdempotencyRecord, now time.Time) bool {
	return s.ttl > 0 && now.Sub(rec.OccurredAt) > s.ttl
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
