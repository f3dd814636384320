package listings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() []Listing {
	return []Listing{
		{ID: "cairo-apartment", Title: "Modern Apartment with View", Location: "Cairo, Egypt", Beds: 2, Baths: 1, Guests: 3, Price: 189, Rating: 4.9, Amenities: []string{"WiFi", "Kitchen", "Air conditioning", "Parking"}},
		{ID: "alexandria-studio", Title: "Cozy Studio by the Sea", Location: "Alexandria, Egypt", Beds: 1, Baths: 1, Guests: 2, Price: 125, Rating: 4.7, Amenities: []string{"WiFi", "Kitchen", "Balcony"}},
		{ID: "luxor-loft", Title: "Elegant Loft in Luxor", Location: "Luxor, Egypt", Beds: 3, Baths: 2, Guests: 5, Price: 275, Rating: 4.8, Amenities: []string{"WiFi", "AC"}},
		{ID: "aswan-nile-flat", Title: "Nile View Flat", Location: "Aswan, Egypt", Beds: 2, Baths: 1, Guests: 4, Price: 165, Rating: 4.6, Amenities: []string{"WiFi", "Balcony"}},
		{ID: "dahab-penthouse", Title: "Luxury Penthouse with Terrace", Location: "Dahab, Egypt", Beds: 4, Baths: 3, Guests: 7, Price: 450, Rating: 5.0, Amenities: []string{"WiFi", "Pool", "Parking"}},
		{ID: "siwa-bohemian", Title: "Artistic Bohemian Space", Location: "Siwa Oasis, Egypt", Beds: 1, Baths: 1, Guests: 2, Price: 135, Rating: 4.5, Amenities: []string{"WiFi", "Kitchen"}},
	}
}

func ids(items []Listing) []ListingID {
	out := make([]ListingID, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestInferPropertyType(t *testing.T) {
	assert.Equal(t, TypeEntire, InferPropertyType(Listing{Beds: 2}))
	assert.Equal(t, TypeEntire, InferPropertyType(Listing{Beds: 5}))
	assert.Equal(t, TypePrivate, InferPropertyType(Listing{Beds: 1}))
	assert.Equal(t, TypeShared, InferPropertyType(Listing{Beds: 0}))
}

func TestSelectAndOrder_DefaultFacetsKeepCatalogOrder(t *testing.T) {
	all := sampleCatalog()
	got := SelectAndOrder(all, DefaultFacets())
	assert.Equal(t, ids(all), ids(got))
}

func TestSelectAndOrder_CairoHighRating(t *testing.T) {
	got := SelectAndOrder(sampleCatalog(), Facets{Where: "cairo", RatingMin: 4.5})
	require.Len(t, got, 1)
	assert.Equal(t, ListingID("cairo-apartment"), got[0].ID)
	assert.Equal(t, 4.9, got[0].Rating)
	assert.Equal(t, "Cairo, Egypt", got[0].Location)
}

func TestSelectAndOrder_IsPure(t *testing.T) {
	all := sampleCatalog()
	before := sampleCatalog()
	f := Facets{Amenities: []string{"wifi"}, Sort: SortPriceDesc}

	first := SelectAndOrder(all, f)
	second := SelectAndOrder(all, f)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, before, all, "input catalog must not be reordered or mutated")
}

func TestSelectAndOrder_EmptyResultIsValid(t *testing.T) {
	got := SelectAndOrder(sampleCatalog(), Facets{Where: "paris"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSelectAndOrder_Sorting(t *testing.T) {
	all := sampleCatalog()

	asc := SelectAndOrder(all, Facets{Sort: SortPriceAsc})
	assert.Equal(t, []ListingID{"alexandria-studio", "siwa-bohemian", "aswan-nile-flat", "cairo-apartment", "luxor-loft", "dahab-penthouse"}, ids(asc))

	desc := SelectAndOrder(all, Facets{Sort: SortPriceDesc})
	assert.Equal(t, []ListingID{"dahab-penthouse", "luxor-loft", "cairo-apartment", "aswan-nile-flat", "siwa-bohemian", "alexandria-studio"}, ids(desc))

	rating := SelectAndOrder(all, Facets{Sort: SortRatingDesc})
	assert.Equal(t, []ListingID{"dahab-penthouse", "cairo-apartment", "luxor-loft", "alexandria-studio", "aswan-nile-flat", "siwa-bohemian"}, ids(rating))
}

func TestSelectAndOrder_StableForEqualKeys(t *testing.T) {
	all := []Listing{
		{ID: "a", Title: "A", Price: 100, Rating: 4.5},
		{ID: "b", Title: "B", Price: 100, Rating: 4.5},
		{ID: "c", Title: "C", Price: 50, Rating: 4.0},
		{ID: "d", Title: "D", Price: 100, Rating: 4.5},
	}
	for _, key := range []SortKey{SortPriceAsc, SortPriceDesc, SortRatingDesc} {
		got := SelectAndOrder(all, Facets{Sort: key})
		var equal []ListingID
		for _, item := range got {
			if item.Price == 100 {
				equal = append(equal, item.ID)
			}
		}
		assert.Equal(t, []ListingID{"a", "b", "d"}, equal, "sort %s must keep input order for ties", key)
	}
}

func TestMatches_EveryClauseIsRequired(t *testing.T) {
	cairo := sampleCatalog()[0]
	passing := Facets{
		Where:     "apartment",
		PriceMin:  100,
		PriceMax:  200,
		Types:     []PropertyType{TypeEntire},
		Amenities: []string{"wifi", "conditioning"},
		RatingMin: 4.5,
	}
	require.True(t, Matches(cairo, passing))

	failing := map[string]func(f *Facets){
		"where":     func(f *Facets) { f.Where = "luxor" },
		"price min": func(f *Facets) { f.PriceMin = 190 },
		"price max": func(f *Facets) { f.PriceMax = 188 },
		"slider":    func(f *Facets) { f.PriceSlider = 150 },
		"type":      func(f *Facets) { f.Types = []PropertyType{TypePrivate, TypeShared} },
		"amenity":   func(f *Facets) { f.Amenities = append(f.Amenities, "pool") },
		"rating":    func(f *Facets) { f.RatingMin = 4.95 },
	}
	for name, mutate := range failing {
		t.Run(name, func(t *testing.T) {
			f := passing
			f.Amenities = append([]string(nil), passing.Amenities...)
			mutate(&f)
			assert.False(t, Matches(cairo, f))
			assert.NotContains(t, ids(SelectAndOrder([]Listing{cairo}, f)), cairo.ID)
		})
	}
}

func TestMatchesWhere_SearchesTitleAndLocation(t *testing.T) {
	l := sampleCatalog()[1]
	assert.True(t, MatchesWhere(l, "STUDIO"))
	assert.True(t, MatchesWhere(l, "alexandria"))
	assert.True(t, MatchesWhere(l, "sea alexandria"))
	assert.True(t, MatchesWhere(l, ""))
	assert.False(t, MatchesWhere(l, "cairo"))
}

func TestMatchesAmenities_SubstringAndCaseInsensitive(t *testing.T) {
	l := sampleCatalog()[0]
	assert.True(t, MatchesAmenities(l, []string{"WIFI"}))
	assert.True(t, MatchesAmenities(l, []string{"condition"}), "tokens match by substring")
	assert.False(t, MatchesAmenities(l, []string{"ac"}))
	assert.False(t, MatchesAmenities(l, []string{"wifi", "pool"}))
}

func TestEffectivePriceMax_TighterBoundWins(t *testing.T) {
	assert.Equal(t, 150.0, Facets{PriceMax: 300, PriceSlider: 150}.EffectivePriceMax())
	assert.Equal(t, 150.0, Facets{PriceMax: 150, PriceSlider: 300}.EffectivePriceMax())
	assert.Equal(t, 200.0, Facets{PriceSlider: 200}.EffectivePriceMax())
	assert.True(t, Facets{}.IsDefault())
	assert.False(t, Facets{PriceSlider: 200}.IsDefault())
}

func TestMatchesType_NoTypeMeansAll(t *testing.T) {
	for _, l := range sampleCatalog() {
		assert.True(t, MatchesType(l, nil))
	}
	got := SelectAndOrder(sampleCatalog(), Facets{Types: []PropertyType{TypePrivate}})
	assert.Equal(t, []ListingID{"alexandria-studio", "siwa-bohemian"}, ids(got))
}

func TestFeatured_TopRated(t *testing.T) {
	got := Featured(sampleCatalog(), 3)
	assert.Equal(t, []ListingID{"dahab-penthouse", "cairo-apartment", "luxor-loft"}, ids(got))
	assert.Len(t, Featured(sampleCatalog()[:2], 3), 2)
}

func TestResolveOrFirst(t *testing.T) {
	all := sampleCatalog()

	l, found, err := ResolveOrFirst(all, "luxor-loft")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, ListingID("luxor-loft"), l.ID)

	l, found, err = ResolveOrFirst(all, "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, ListingID("cairo-apartment"), l.ID)

	_, _, err = ResolveOrFirst(nil, "x")
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortKey("price-asc"))
	assert.Equal(t, SortRatingDesc, ParseSortKey(" Rating-Desc "))
	assert.Equal(t, SortRecommended, ParseSortKey("newest"))
	assert.Equal(t, SortRecommended, ParseSortKey(""))
}

func TestListingValidate(t *testing.T) {
	assert.NoError(t, sampleCatalog()[0].Validate())
	assert.ErrorIs(t, Listing{Title: "x", Price: 1}.Validate(), ErrIDRequired)
	assert.ErrorIs(t, Listing{ID: "x", Title: "x"}.Validate(), ErrNightlyRate)
	assert.ErrorIs(t, Listing{ID: "x", Title: "x", Price: 1, Rating: 6}.Validate(), ErrRatingRange)
	assert.Equal(t, "Siwa Oasis", sampleCatalog()[5].City())
}
