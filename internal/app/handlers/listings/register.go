package listings

import (
	"stays/internal/app/dto"
	"stays/internal/app/queries"
	"stays/internal/app/session"
)

// Register wires the listing queries onto bus.
func Register(bus *queries.InMemoryBus, loader session.CatalogLoader) {
	queries.RegisterHandler[SearchListingsQuery, dto.ListingCatalog](bus, searchListingsKey, &SearchListingsHandler{Loader: loader})
	queries.RegisterHandler[FeaturedQuery, []dto.ListingCard](bus, featuredKey, &FeaturedHandler{Loader: loader})
	queries.RegisterHandler[GetDetailQuery, dto.ListingDetail](bus, getDetailKey, &GetDetailHandler{Loader: loader})
}
