package detail

const (
	labelExpand   = "Show all amenities"
	labelCollapse = "Show fewer"
)

// AmenityPanel is the limited/expanded amenity list. Expanded is the only
// mutable state and belongs to the page that owns the panel.
type AmenityPanel struct {
	All      []string
	PageSize int
	Expanded bool
}

func NewAmenityPanel(all []string) AmenityPanel {
	return AmenityPanel{All: append([]string(nil), all...), PageSize: AmenityPageSize}
}

func (p AmenityPanel) pageSize() int {
	if p.PageSize <= 0 {
		return AmenityPageSize
	}
	return p.PageSize
}

// Visible returns the amenities currently listed.
func (p AmenityPanel) Visible() []string {
	if p.Expanded || len(p.All) <= p.pageSize() {
		return p.All
	}
	return p.All[:p.pageSize()]
}

// ToggleVisible reports whether the expand/collapse control is shown at all.
func (p AmenityPanel) ToggleVisible() bool {
	return len(p.All) > p.pageSize()
}

func (p AmenityPanel) ToggleLabel() string {
	if p.Expanded {
		return labelCollapse
	}
	return labelExpand
}

// Toggle flips between the first page and the full set.
func (p *AmenityPanel) Toggle() {
	p.Expanded = !p.Expanded
}
