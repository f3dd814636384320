package catalog

import (
	_ "embed"
	"encoding/json"
	"sync"

	domainlistings "stays/internal/domain/listings"
)

//go:embed fallback.json
var fallbackJSON []byte

var (
	fallbackOnce  sync.Once
	fallbackItems []domainlistings.Listing
)

// Fallback returns a fresh copy of the embedded offline catalog.
func Fallback() []domainlistings.Listing {
	fallbackOnce.Do(func() {
		if err := json.Unmarshal(fallbackJSON, &fallbackItems); err != nil {
			panic("catalog: embedded fallback is not valid json: " + err.Error())
		}
	})
	out := make([]domainlistings.Listing, len(fallbackItems))
	for i, l := range fallbackItems {
		out[i] = l.Clone()
	}
	return out
}

// Decode parses a catalog document: a JSON array of listings.
func Decode(data []byte) ([]domainlistings.Listing, error) {
	var items []domainlistings.Listing
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domainlistings.Listing{}
	}
	return items, nil
}
