package listings

import (
	"time"
)

// CatalogLoadedEvent records where a page's catalog came from.
type CatalogLoadedEvent struct {
	Source   string
	Count    int
	Fallback bool
	At       time.Time
}

func (e CatalogLoadedEvent) EventName() string     { return "catalog.loaded" }
func (e CatalogLoadedEvent) AggregateID() string   { return e.Source }
func (e CatalogLoadedEvent) OccurredAt() time.Time { return e.At }

// ListingViewedEvent is recorded when a property page resolves its listing.
type ListingViewedEvent struct {
	ListingID ListingID
	Defaulted bool
	At        time.Time
}

func (e ListingViewedEvent) EventName() string     { return "listing.viewed" }
func (e ListingViewedEvent) AggregateID() string   { return string(e.ListingID) }
func (e ListingViewedEvent) OccurredAt() time.Time { return e.At }
