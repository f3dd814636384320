package detail

import "strings"

// MaxHighlights is the exact number of highlight cards shown.
const MaxHighlights = 3

type Highlight struct {
	Key   string
	Icon  string
	Title string
	Text  string
}

// Rule pairs a predicate over the lowercased amenity set with the card it yields.
type Rule struct {
	Match  func(amenities []string) bool
	Result Highlight
}

type Rules []Rule

// KeywordRule matches when any amenity contains keyword.
func KeywordRule(keyword string, h Highlight) Rule {
	keyword = strings.ToLower(keyword)
	return Rule{
		Match: func(amenities []string) bool {
			for _, a := range amenities {
				if strings.Contains(a, keyword) {
					return true
				}
			}
			return false
		},
		Result: h,
	}
}

var dedicatedHost = Highlight{
	Key:   "hosted",
	Icon:  "bi-emoji-smile",
	Title: "Dedicated host",
	Text:  "Helpful local host for tips and support.",
}

// DefaultRules is the ordered keyword table used on the property page.
func DefaultRules() Rules {
	cooling := Highlight{Key: "ac", Icon: "bi-snow", Title: "Air conditioning", Text: "Stay cool and comfortable."}
	return Rules{
		KeywordRule("pool", Highlight{Key: "pool", Icon: "bi-water", Title: "Private pool", Text: "Enjoy a refreshing swim during your stay."}),
		KeywordRule("kitchen", Highlight{Key: "kitchen", Icon: "bi-egg-fried", Title: "Full kitchen", Text: "Cook meals with essential appliances."}),
		KeywordRule("wifi", Highlight{Key: "wifi", Icon: "bi-wifi", Title: "Fast Wi‑Fi", Text: "Reliable internet for work and streaming."}),
		KeywordRule("parking", Highlight{Key: "parking", Icon: "bi-car-front", Title: "Free parking", Text: "On-site parking for your convenience."}),
		KeywordRule("balcony", Highlight{Key: "balcony", Icon: "bi-building", Title: "Balcony/terrace", Text: "Outdoor space to relax and enjoy views."}),
		KeywordRule("air conditioning", cooling),
		KeywordRule("ac", cooling),
	}
}

// Select evaluates the rules in order and keeps the first MaxHighlights matches,
// padding with the dedicated host card.
//
// Matches are distinct by title, deliberately: rules that share a card (the
// "air conditioning" and "ac" keywords) contribute it once, and the skipped
// rule does not use up a slot. Plain first-matches-in-order would list
// "Air conditioning" twice for ["AC", "Air conditioning"].
func (rs Rules) Select(amenities []string) []Highlight {
	lowered := make([]string, len(amenities))
	for i, a := range amenities {
		lowered[i] = strings.ToLower(a)
	}

	chosen := make([]Highlight, 0, MaxHighlights)
	seen := make(map[string]struct{}, MaxHighlights)
	for _, r := range rs {
		if len(chosen) == MaxHighlights {
			break
		}
		if _, dup := seen[r.Result.Title]; dup {
			continue
		}
		if r.Match != nil && r.Match(lowered) {
			chosen = append(chosen, r.Result)
			seen[r.Result.Title] = struct{}{}
		}
	}
	for len(chosen) < MaxHighlights {
		chosen = append(chosen, dedicatedHost)
	}
	return chosen
}
