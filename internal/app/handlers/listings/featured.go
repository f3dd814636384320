package listings

import (
	"context"

	"stays/internal/app/dto"
	"stays/internal/app/queries"
	"stays/internal/app/session"
	domainlistings "stays/internal/domain/listings"
)

const featuredKey = "listings.featured"

// DefaultFeatured is how many top rated listings the home page shows.
const DefaultFeatured = 3

type FeaturedQuery struct {
	Limit int
}

func (q FeaturedQuery) Key() string { return featuredKey }

type FeaturedHandler struct {
	Loader session.CatalogLoader
}

func (h *FeaturedHandler) Handle(ctx context.Context, q FeaturedQuery) ([]dto.ListingCard, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultFeatured
	}
	res := h.Loader.Load(ctx)
	top := domainlistings.Featured(res.Listings, limit)
	cards := make([]dto.ListingCard, 0, len(top))
	for _, l := range top {
		cards = append(cards, dto.MapListingCard(l))
	}
	return cards, nil
}

var _ queries.Handler[FeaturedQuery, []dto.ListingCard] = (*FeaturedHandler)(nil)
