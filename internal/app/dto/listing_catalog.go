package dto

import (
	"math"

	domainlistings "stays/internal/domain/listings"
	"stays/internal/domain/shared/money"
)

// ListingCatalog is the filtered, ordered listing set.
type ListingCatalog struct {
	Items   []ListingCard   `json:"items"`
	Filters CatalogFilters  `json:"filters"`
	Meta    CatalogMetadata `json:"meta"`
}

type ListingCard struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	City         string   `json:"city"`
	Beds         int      `json:"beds"`
	Baths        int      `json:"baths"`
	Guests       int      `json:"guests"`
	PropertyType string   `json:"property_type"`
	NightlyRate  MoneyDTO `json:"nightly_rate"`
	Rating       float64  `json:"rating"`
	Amenities    []string `json:"amenities"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Images       []string `json:"images"`
	Summary      string   `json:"summary,omitempty"`
}

// CatalogFilters echoes back the applied selection after normalization.
type CatalogFilters struct {
	Where     string   `json:"where"`
	PriceMin  float64  `json:"price_min"`
	PriceMax  *float64 `json:"price_max"`
	Types     []string `json:"types"`
	Amenities []string `json:"amenities"`
	RatingMin float64  `json:"rating_min"`
}

type CatalogMetadata struct {
	Total    int    `json:"total"`
	Count    int    `json:"count"`
	Sort     string `json:"sort"`
	View     string `json:"view"`
	Source   string `json:"source"`
	Fallback bool   `json:"fallback"`
}

// DefaultThumbnail is used for listings without images.
const DefaultThumbnail = "assets/photos/cairo.png"

func MapListingCard(l domainlistings.Listing) ListingCard {
	thumb := DefaultThumbnail
	if len(l.Images) > 0 {
		thumb = l.Images[0]
	}
	return ListingCard{
		ID:           string(l.ID),
		Title:        l.Title,
		Location:     l.Location,
		City:         l.City(),
		Beds:         l.Beds,
		Baths:        l.Baths,
		Guests:       l.Guests,
		PropertyType: string(domainlistings.InferPropertyType(l)),
		NightlyRate:  MapMoney(money.FromMajor(l.Price, money.DefaultCurrency)),
		Rating:       l.Rating,
		Amenities:    append([]string{}, l.Amenities...),
		ThumbnailURL: thumb,
		Images:       append([]string{}, l.Images...),
		Summary:      l.Summary,
	}
}

// CatalogView carries what MapCatalog needs besides the items.
type CatalogView struct {
	Items    []domainlistings.Listing
	Facets   domainlistings.Facets
	View     domainlistings.ViewMode
	Total    int
	Source   string
	Fallback bool
}

func MapCatalog(v CatalogView) ListingCatalog {
	f := v.Facets.Normalized()
	items := make([]ListingCard, 0, len(v.Items))
	for _, l := range v.Items {
		items = append(items, MapListingCard(l))
	}
	types := make([]string, 0, len(f.Types))
	for _, t := range f.Types {
		types = append(types, string(t))
	}
	var priceMax *float64
	if limit := f.EffectivePriceMax(); !math.IsInf(limit, 1) {
		priceMax = &limit
	}
	view := v.View
	if view == "" {
		view = domainlistings.ViewGrid
	}
	return ListingCatalog{
		Items: items,
		Filters: CatalogFilters{
			Where:     f.Where,
			PriceMin:  f.PriceMin,
			PriceMax:  priceMax,
			Types:     types,
			Amenities: append([]string{}, f.Amenities...),
			RatingMin: f.RatingMin,
		},
		Meta: CatalogMetadata{
			Total:    v.Total,
			Count:    len(items),
			Sort:     string(f.Sort),
			View:     string(view),
			Source:   v.Source,
			Fallback: v.Fallback,
		},
	}
}
