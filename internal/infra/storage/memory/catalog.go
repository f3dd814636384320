package memory

import (
	"context"
	"errors"
	"sync"

	appcatalog "stays/internal/app/catalog"
	domainlistings "stays/internal/domain/listings"
)

// ErrUnavailable simulates a source outage.
var ErrUnavailable = errors.New("memory: catalog unavailable")

// CatalogSource serves a fixed catalog. It backs the memory source kind and
// tests that need to flip a source between healthy and failing.
type CatalogSource struct {
	mu     sync.RWMutex
	items  []domainlistings.Listing
	failed bool
}

func NewCatalogSource(items []domainlistings.Listing) *CatalogSource {
	s := &CatalogSource{}
	s.Replace(items)
	return s
}

func (s *CatalogSource) Name() string { return "memory" }

func (s *CatalogSource) Fetch(ctx context.Context) ([]domainlistings.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failed {
		return nil, ErrUnavailable
	}
	out := make([]domainlistings.Listing, len(s.items))
	for i, l := range s.items {
		out[i] = l.Clone()
	}
	return out, nil
}

// Replace swaps the catalog content.
func (s *CatalogSource) Replace(items []domainlistings.Listing) {
	cp := make([]domainlistings.Listing, len(items))
	for i, l := range items {
		cp[i] = l.Clone()
	}
	s.mu.Lock()
	s.items = cp
	s.mu.Unlock()
}

// SetFailing makes subsequent fetches fail until reset.
func (s *CatalogSource) SetFailing(failed bool) {
	s.mu.Lock()
	s.failed = failed
	s.mu.Unlock()
}

var _ appcatalog.Source = (*CatalogSource)(nil)
