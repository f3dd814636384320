package listings

import (
	"sort"
	"strings"
)

// SelectAndOrder filters all against f and orders the survivors. It never
// modifies all or its elements; the returned slice is freshly allocated.
func SelectAndOrder(all []Listing, f Facets) []Listing {
	opts := f.Normalized()
	selected := make([]Listing, 0, len(all))
	for _, listing := range all {
		if matches(listing, opts) {
			selected = append(selected, listing)
		}
	}
	sortListings(selected, opts.Sort)
	return selected
}

// Matches reports whether l satisfies every clause of f.
func Matches(l Listing, f Facets) bool {
	return matches(l, f.Normalized())
}

func matches(l Listing, opts Facets) bool {
	return MatchesWhere(l, opts.Where) &&
		MatchesPrice(l, opts.PriceMin, opts.EffectivePriceMax()) &&
		MatchesType(l, opts.Types) &&
		MatchesAmenities(l, opts.Amenities) &&
		MatchesRating(l, opts.RatingMin)
}

// MatchesWhere is a case-insensitive substring match of where against
// "title location". An empty needle matches everything.
func MatchesWhere(l Listing, where string) bool {
	needle := strings.TrimSpace(strings.ToLower(where))
	if needle == "" {
		return true
	}
	haystack := strings.ToLower(l.Title + " " + l.Location)
	return strings.Contains(haystack, needle)
}

// MatchesPrice checks min <= price <= max (inclusive on both ends).
func MatchesPrice(l Listing, min, max float64) bool {
	if min < 0 {
		min = 0
	}
	return l.Price >= min && l.Price <= max
}

// MatchesType passes every listing when no type is requested.
func MatchesType(l Listing, types []PropertyType) bool {
	if len(types) == 0 {
		return true
	}
	inferred := InferPropertyType(l)
	for _, t := range types {
		if t == inferred {
			return true
		}
	}
	return false
}

// MatchesAmenities requires every requested token to be a substring of at
// least one of the listing's amenities, case-insensitively.
func MatchesAmenities(l Listing, required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make([]string, 0, len(l.Amenities))
	for _, amenity := range l.Amenities {
		have = append(have, strings.ToLower(amenity))
	}
	for _, token := range required {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" {
			continue
		}
		if !containsSubstring(have, token) {
			return false
		}
	}
	return true
}

// MatchesRating checks rating >= min.
func MatchesRating(l Listing, min float64) bool {
	return l.Rating >= min
}

// Featured returns the n best-rated listings; ties keep catalog order.
func Featured(all []Listing, n int) []Listing {
	ranked := append([]Listing(nil), all...)
	sortListings(ranked, SortRatingDesc)
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func sortListings(items []Listing, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case SortRatingDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Rating > items[j].Rating })
	}
}

func containsSubstring(values []string, needle string) bool {
	for _, value := range values {
		if strings.Contains(value, needle) {
			return true
		}
	}
	return false
}
