package listings

import (
	"context"

	"stays/internal/app/dto"
	"stays/internal/app/queries"
	"stays/internal/app/session"
	domainlistings "stays/internal/domain/listings"
)

const searchListingsKey = "listings.search"

// SearchListingsQuery filters and orders a freshly loaded catalog.
type SearchListingsQuery struct {
	Facets domainlistings.Facets
	View   domainlistings.ViewMode
}

func (q SearchListingsQuery) Key() string { return searchListingsKey }

type SearchListingsHandler struct {
	Loader session.CatalogLoader
}

func (h *SearchListingsHandler) Handle(ctx context.Context, q SearchListingsQuery) (dto.ListingCatalog, error) {
	res := h.Loader.Load(ctx)
	facets := q.Facets.Normalized()
	return dto.MapCatalog(dto.CatalogView{
		Items:    domainlistings.SelectAndOrder(res.Listings, facets),
		Facets:   facets,
		View:     domainlistings.ParseViewMode(string(q.View)),
		Total:    len(res.Listings),
		Source:   res.Source,
		Fallback: res.Fallback,
	}), nil
}

var _ queries.Handler[SearchListingsQuery, dto.ListingCatalog] = (*SearchListingsHandler)(nil)
