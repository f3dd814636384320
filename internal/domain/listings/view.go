package listings

import "strings"

// ViewMode selects the presentation of a filtered listing set.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
	ViewMap  ViewMode = "map"
)

// ParseViewMode maps raw input to a view mode, defaulting to grid.
func ParseViewMode(raw string) ViewMode {
	switch mode := ViewMode(strings.TrimSpace(strings.ToLower(raw))); mode {
	case ViewList, ViewMap:
		return mode
	default:
		return ViewGrid
	}
}

// ShowsItems reports whether the mode renders listing entries.
func (m ViewMode) ShowsItems() bool {
	return m == ViewGrid || m == ViewList
}
