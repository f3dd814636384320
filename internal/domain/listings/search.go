package listings

import (
	"math"
	"strings"
)

// SortKey defines a supported ordering.
type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortRatingDesc  SortKey = "rating-desc"
)

// ParseSortKey maps raw input to a sort key, falling back to recommended.
func ParseSortKey(raw string) SortKey {
	switch key := SortKey(strings.TrimSpace(strings.ToLower(raw))); key {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return key
	default:
		return SortRecommended
	}
}

// Facets is the user-editable filter selection. Zero values mean "no
// constraint" for every dimension.
type Facets struct {
	Where       string         `json:"where"`
	PriceMin    float64        `json:"price_min"`
	PriceMax    float64        `json:"price_max"`
	PriceSlider float64        `json:"price_slider"`
	Types       []PropertyType `json:"types"`
	Amenities   []string       `json:"amenities"`
	RatingMin   float64        `json:"rating_min"`
	Sort        SortKey        `json:"sort"`
}

// DefaultFacets returns the unconstrained selection.
func DefaultFacets() Facets {
	return Facets{Sort: SortRecommended}
}

// Normalized returns a sanitized copy of f.
func (f Facets) Normalized() Facets {
	normalized := f
	normalized.Where = strings.TrimSpace(strings.ToLower(f.Where))
	normalized.Amenities = normalizeTokens(f.Amenities)
	normalized.Types = normalizeTypes(f.Types)
	if normalized.PriceMin < 0 {
		normalized.PriceMin = 0
	}
	if normalized.PriceMax < 0 {
		normalized.PriceMax = 0
	}
	if normalized.PriceSlider < 0 {
		normalized.PriceSlider = 0
	}
	if normalized.RatingMin < 0 {
		normalized.RatingMin = 0
	}
	normalized.Sort = ParseSortKey(string(f.Sort))
	return normalized
}

// EffectivePriceMax is the tighter of the numeric maximum and the slider
// bound. Unset bounds do not constrain.
func (f Facets) EffectivePriceMax() float64 {
	limit := math.Inf(1)
	if f.PriceMax > 0 {
		limit = f.PriceMax
	}
	if f.PriceSlider > 0 && f.PriceSlider < limit {
		limit = f.PriceSlider
	}
	return limit
}

// HasType reports whether t was requested.
func (f Facets) HasType(t PropertyType) bool {
	for _, candidate := range f.Types {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsDefault reports whether the selection constrains nothing.
func (f Facets) IsDefault() bool {
	n := f.Normalized()
	return n.Where == "" && n.PriceMin == 0 && math.IsInf(n.EffectivePriceMax(), 1) &&
		len(n.Types) == 0 && len(n.Amenities) == 0 && n.RatingMin == 0 && n.Sort == SortRecommended
}

func normalizeTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeTypes(values []PropertyType) []PropertyType {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[PropertyType]struct{}, len(values))
	out := make([]PropertyType, 0, len(values))
	for _, value := range values {
		value = PropertyType(strings.TrimSpace(strings.ToLower(string(value))))
		switch value {
		case TypeEntire, TypePrivate, TypeShared:
		default:
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
