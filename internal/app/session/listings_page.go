package session

import (
	"context"
	"log/slog"
	"sync"

	"stays/internal/app/catalog"
	domainlistings "stays/internal/domain/listings"
	"stays/internal/domain/shared/events"
)

// CatalogLoader is the part of catalog.Loader the pages depend on.
type CatalogLoader interface {
	Load(ctx context.Context) catalog.Result
}

// Snapshot is what the listings page shows after a filter pass.
type Snapshot struct {
	Generation uint64
	View       domainlistings.ViewMode
	Facets     domainlistings.Facets
	Items      []domainlistings.Listing
	Total      int
	Source     string
	Fallback   bool
}

// Empty reports whether the placeholder replaces the item list.
func (s Snapshot) Empty() bool {
	return len(s.Items) == 0
}

// RenderSink receives every snapshot the page produces.
type RenderSink func(Snapshot)

// ListingsPage owns the state of one listings page: the cached catalog, the
// active view mode and facets. Each Load bumps a generation counter and a
// result is only stored if no newer Load started meanwhile.
type ListingsPage struct {
	loader CatalogLoader
	sink   RenderSink
	logger *slog.Logger

	mu         sync.Mutex
	generation uint64
	loaded     catalog.Result
	view       domainlistings.ViewMode
	facets     domainlistings.Facets
	recorder   events.EventRecorder
}

func NewListingsPage(loader CatalogLoader, sink RenderSink, logger *slog.Logger) *ListingsPage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListingsPage{
		loader: loader,
		sink:   sink,
		logger: logger,
		view:   domainlistings.ViewGrid,
		facets: domainlistings.DefaultFacets(),
	}
}

// Load fetches the catalog and renders it with the current facets. A load
// that is overtaken by a newer one is discarded and stale is true.
func (p *ListingsPage) Load(ctx context.Context) (snap Snapshot, stale bool) {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	res := p.loader.Load(ctx)

	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		p.logger.Debug("stale catalog load dropped", "generation", gen)
		return p.Current(), true
	}
	p.loaded = res
	p.recorder.Record(res.Event())
	snap = p.snapshotLocked()
	p.mu.Unlock()

	p.emit(snap)
	return snap, false
}

// Apply replaces the facet selection and re-filters the cached catalog.
func (p *ListingsPage) Apply(f domainlistings.Facets) Snapshot {
	p.mu.Lock()
	p.facets = f.Normalized()
	snap := p.snapshotLocked()
	p.mu.Unlock()
	p.emit(snap)
	return snap
}

// SetView switches the visible region and re-renders the current selection.
func (p *ListingsPage) SetView(mode domainlistings.ViewMode) Snapshot {
	p.mu.Lock()
	p.view = domainlistings.ParseViewMode(string(mode))
	snap := p.snapshotLocked()
	p.mu.Unlock()
	p.emit(snap)
	return snap
}

// Reset clears every facet back to its default and shows the full catalog.
func (p *ListingsPage) Reset() Snapshot {
	return p.Apply(domainlistings.DefaultFacets())
}

// Current returns the latest snapshot without rendering.
func (p *ListingsPage) Current() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Events drains the events recorded by loads.
func (p *ListingsPage) Events() []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.recorder.Drain()
}

func (p *ListingsPage) snapshotLocked() Snapshot {
	items := domainlistings.SelectAndOrder(p.loaded.Listings, p.facets)
	return Snapshot{
		Generation: p.generation,
		View:       p.view,
		Facets:     p.facets,
		Items:      items,
		Total:      len(p.loaded.Listings),
		Source:     p.loaded.Source,
		Fallback:   p.loaded.Fallback,
	}
}

func (p *ListingsPage) emit(s Snapshot) {
	if p.sink != nil {
		p.sink(s)
	}
}
