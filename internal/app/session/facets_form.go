package session

import (
	"net/url"
	"strconv"
	"strings"

	domainlistings "stays/internal/domain/listings"
)

// Form field names of the stays filter panel.
const (
	FieldWhere      = "where"
	FieldPriceMin   = "priceMin"
	FieldPriceMax   = "priceMax"
	FieldPriceRange = "priceRange"
	FieldEntire     = "entirePlace"
	FieldPrivate    = "privateRoom"
	FieldShared     = "sharedRoom"
	FieldRating     = "rating"
	FieldSort       = "sortBy"
	FieldView       = "view"

	RatingAny      = "any"
	RatingFour     = "four"
	RatingFourFive = "fourFive"
)

// AmenityFields are the amenity checkboxes; each field name is also the
// substring token matched against listing amenities.
var AmenityFields = []string{"wifi", "kitchen", "ac", "parking", "pool"}

var typeFields = map[string]domainlistings.PropertyType{
	FieldEntire:  domainlistings.TypeEntire,
	FieldPrivate: domainlistings.TypePrivate,
	FieldShared:  domainlistings.TypeShared,
}

// ParseFacetForm reads a facet selection from form values. Every field is
// optional; numeric fields ignore non-digits and anything unparseable means
// no constraint.
func ParseFacetForm(v url.Values) domainlistings.Facets {
	f := domainlistings.DefaultFacets()
	f.Where = strings.TrimSpace(v.Get(FieldWhere))
	f.PriceMin = digits(v.Get(FieldPriceMin))
	f.PriceMax = digits(v.Get(FieldPriceMax))
	f.PriceSlider = digits(v.Get(FieldPriceRange))
	for _, field := range []string{FieldEntire, FieldPrivate, FieldShared} {
		if checked(v, field) {
			f.Types = append(f.Types, typeFields[field])
		}
	}
	for _, field := range AmenityFields {
		if checked(v, field) {
			f.Amenities = append(f.Amenities, field)
		}
	}
	switch {
	case v.Get(FieldRating) == RatingFourFive || checked(v, RatingFourFive):
		f.RatingMin = 4.5
	case v.Get(FieldRating) == RatingFour || checked(v, RatingFour):
		f.RatingMin = 4.0
	}
	f.Sort = domainlistings.ParseSortKey(v.Get(FieldSort))
	return f.Normalized()
}

// FacetFormValues is the inverse of ParseFacetForm, used to keep the filter
// panel and links in sync with the applied selection.
func FacetFormValues(f domainlistings.Facets, view domainlistings.ViewMode) url.Values {
	v := url.Values{}
	if f.Where != "" {
		v.Set(FieldWhere, f.Where)
	}
	setNumber(v, FieldPriceMin, f.PriceMin)
	setNumber(v, FieldPriceMax, f.PriceMax)
	setNumber(v, FieldPriceRange, f.PriceSlider)
	for field, t := range typeFields {
		if f.HasType(t) {
			v.Set(field, "on")
		}
	}
	for _, a := range f.Amenities {
		v.Set(a, "on")
	}
	switch {
	case f.RatingMin >= 4.5:
		v.Set(FieldRating, RatingFourFive)
	case f.RatingMin >= 4:
		v.Set(FieldRating, RatingFour)
	}
	if f.Sort != "" && f.Sort != domainlistings.SortRecommended {
		v.Set(FieldSort, string(f.Sort))
	}
	if view != "" && view != domainlistings.ViewGrid {
		v.Set(FieldView, string(view))
	}
	return v
}

func digits(raw string) float64 {
	clean := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if clean == "" {
		return 0
	}
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return n
}

func checked(v url.Values, field string) bool {
	if !v.Has(field) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v.Get(field))) {
	case "", "on", "1", "true", "yes":
		return true
	default:
		return false
	}
}

func setNumber(v url.Values, field string, n float64) {
	if n > 0 {
		v.Set(field, strconv.FormatFloat(n, 'f', -1, 64))
	}
}
