package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"strings"

	"stays/internal/domain/detail"
	domainlistings "stays/internal/domain/listings"
	"stays/internal/domain/pricing"
	"stays/internal/domain/shared/money"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Region is the id of one of the three mutually exclusive listing regions.
type Region string

const (
	RegionGrid Region = "listingsGrid"
	RegionList Region = "listingsList"
	RegionMap  Region = "mapView"
)

// DefaultImage stands in for listings without photos.
const DefaultImage = detail.DefaultImage

// RegionFor maps a view mode to the region that shows it.
func RegionFor(mode domainlistings.ViewMode) Region {
	switch domainlistings.ParseViewMode(string(mode)) {
	case domainlistings.ViewList:
		return RegionList
	case domainlistings.ViewMap:
		return RegionMap
	default:
		return RegionGrid
	}
}

// Card is the presentation of one listing in the grid and list regions.
type Card struct {
	ID          string
	Href        string
	Image       string
	Title       string
	Description string
	Price       string
	ListMeta    string
}

func NewCard(l domainlistings.Listing) Card {
	img := DefaultImage
	if len(l.Images) > 0 && l.Images[0] != "" {
		img = l.Images[0]
	}
	amen := l.Amenities
	if len(amen) > 2 {
		amen = amen[:2]
	}
	price := money.FromMajor(l.Price, money.DefaultCurrency).Format()
	return Card{
		ID:          string(l.ID),
		Href:        PropertyHref(l.ID),
		Image:       img,
		Title:       l.Title,
		Description: fmt.Sprintf("%d beds · %d bath · %s", l.Beds, l.Baths, strings.Join(amen, " · ")),
		Price:       price,
		ListMeta:    fmt.Sprintf("%s · %d beds · %d bath · ★ %s", l.Location, l.Beds, l.Baths, strconv.FormatFloat(l.Rating, 'f', 1, 64)),
	}
}

// PropertyHref links to the property page of id.
func PropertyHref(id domainlistings.ListingID) string {
	return "/property?" + url.Values{"id": {string(id)}}.Encode()
}

// Listings is the data of the listings fragment.
type Listings struct {
	Region   Region
	View     domainlistings.ViewMode
	Cards    []Card
	Count    int
	ResetURL string
}

// Renderer draws pages and the listings fragment from embedded templates.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("stays").Funcs(template.FuncMap{
		"money":  func(v float64) string { return money.FromMajor(v, money.DefaultCurrency).Format() },
		"fixed1": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		"guests": pricing.GuestsLabel,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Templates exposes the template set for gin's HTML renderer.
func (r *Renderer) Templates() *template.Template {
	return r.tmpl
}

// Render writes the listings fragment for items in mode. Only the returned
// region is visible; the other two are emitted empty and hidden so each
// render fully replaces the previous one.
func (r *Renderer) Render(w io.Writer, items []domainlistings.Listing, mode domainlistings.ViewMode) (Region, error) {
	data := ListingsFor(items, mode)
	if err := r.tmpl.ExecuteTemplate(w, "listings", data); err != nil {
		return "", err
	}
	return data.Region, nil
}

// RenderString is Render into a string, for the live channel.
func (r *Renderer) RenderString(items []domainlistings.Listing, mode domainlistings.ViewMode) (string, Region, error) {
	var buf bytes.Buffer
	region, err := r.Render(&buf, items, mode)
	if err != nil {
		return "", "", err
	}
	return buf.String(), region, nil
}

// ListingsFor builds the fragment data. Cards are only built for the grid
// and list regions.
func ListingsFor(items []domainlistings.Listing, mode domainlistings.ViewMode) Listings {
	mode = domainlistings.ParseViewMode(string(mode))
	data := Listings{Region: RegionFor(mode), View: mode, Count: len(items), ResetURL: "/stays"}
	if mode != domainlistings.ViewGrid {
		data.ResetURL = "/stays?" + url.Values{"view": {string(mode)}}.Encode()
	}
	if mode.ShowsItems() {
		data.Cards = make([]Card, 0, len(items))
		for _, l := range items {
			data.Cards = append(data.Cards, NewCard(l))
		}
	}
	return data
}
