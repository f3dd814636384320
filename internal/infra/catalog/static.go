package catalog

import (
	"context"

	appcatalog "stays/internal/app/catalog"
	domainlistings "stays/internal/domain/listings"
)

// OfflineSource never has data; the loader answers with the embedded catalog
// without warning, as when pages are browsed without a server.
type OfflineSource struct{}

func (OfflineSource) Name() string { return "offline" }

func (OfflineSource) Fetch(context.Context) ([]domainlistings.Listing, error) {
	return nil, appcatalog.ErrNoSource
}

var _ appcatalog.Source = OfflineSource{}
