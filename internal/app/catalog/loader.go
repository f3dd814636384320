package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stays/internal/app/policies"
	domainlistings "stays/internal/domain/listings"
)

var (
	// ErrUnavailable means the catalog could not be obtained from the configured source.
	ErrUnavailable = errors.New("catalog: data unavailable")
	// ErrNoSource is reported when the loader runs without a source, e.g. offline mode.
	ErrNoSource = errors.New("catalog: no source configured")
)

// FallbackWarning is surfaced when the embedded dataset replaces a failed fetch.
const FallbackWarning = "Unable to load listings right now. Using offline data."

// Source fetches the full catalog. Implementations must not cache.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domainlistings.Listing, error)
}

// Policy decides what the loader does when a fetch fails.
type Policy int

const (
	// FallbackOnError substitutes the embedded dataset and warns.
	FallbackOnError Policy = iota
	// Strict reports the failure and returns no listings.
	Strict
)

// Result is the outcome of one load. Err is set whenever the source failed,
// even when Listings holds fallback data.
type Result struct {
	Listings []domainlistings.Listing
	Source   string
	Fallback bool
	Err      error
	LoadedAt time.Time
}

func (r Result) OK() bool { return r.Err == nil }

// Event describes the load for publishing.
func (r Result) Event() domainlistings.CatalogLoadedEvent {
	return domainlistings.CatalogLoadedEvent{
		Source:   r.Source,
		Count:    len(r.Listings),
		Fallback: r.Fallback,
		At:       r.LoadedAt,
	}
}

// Loader obtains the catalog from its source and applies the fallback policy.
type Loader struct {
	Source   Source
	Policy   Policy
	Notifier policies.Notifier
	Logger   *slog.Logger
	Now      func() time.Time
}

// Fetch performs one uncached fetch and reports the raw outcome.
func (l *Loader) Fetch(ctx context.Context) Result {
	res := Result{LoadedAt: l.now()}
	if l.Source == nil {
		res.Source = "none"
		res.Err = fmt.Errorf("%w: %w", ErrUnavailable, ErrNoSource)
		return res
	}
	res.Source = l.Source.Name()
	items, err := l.Source.Fetch(ctx)
	if err != nil {
		res.Err = fmt.Errorf("%w: %s: %w", ErrUnavailable, res.Source, err)
		return res
	}
	valid := make([]domainlistings.Listing, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			l.logger().Warn("catalog entry skipped", "source", res.Source, "err", err)
			continue
		}
		valid = append(valid, item)
	}
	res.Listings = valid
	return res
}

// Load fetches the catalog and never fails: under FallbackOnError a failed
// fetch yields the embedded dataset and a warning toast. An offline loader
// falls back silently.
func (l *Loader) Load(ctx context.Context) Result {
	res := l.Fetch(ctx)
	if res.Err == nil {
		l.logger().Debug("catalog loaded", "source", res.Source, "count", len(res.Listings))
		return res
	}
	if l.Policy == Strict {
		l.logger().Error("catalog load failed", "source", res.Source, "err", res.Err)
		return res
	}

	res.Listings = Fallback()
	res.Fallback = true
	if errors.Is(res.Err, ErrNoSource) {
		l.logger().Info("catalog offline, using embedded data", "count", len(res.Listings))
		return res
	}
	l.logger().Error("catalog load failed, using embedded data", "source", res.Source, "err", res.Err)
	if l.Notifier != nil {
		l.Notifier.Notify(ctx, policies.SeverityWarning, FallbackWarning)
	}
	return res
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}
