package view

import (
	"net/url"

	"stays/internal/app/session"
	"stays/internal/domain/booking"
	domainlistings "stays/internal/domain/listings"
	"stays/internal/infra/notify"
)

// Page names registered with the HTML renderer.
const (
	PageHome     = "home"
	PageStays    = "stays"
	PageProperty = "property"
	PageBooking  = "booking"
)

// Chrome is shared by every page.
type Chrome struct {
	Title  string
	Toasts []notify.Toast
}

type HomePage struct {
	Chrome
	Featured []Card
}

func NewHomePage(featured []domainlistings.Listing, toasts []notify.Toast) HomePage {
	cards := make([]Card, 0, len(featured))
	for _, l := range featured {
		cards = append(cards, NewCard(l))
	}
	return HomePage{Chrome: Chrome{Title: "Stays", Toasts: toasts}, Featured: cards}
}

// StaysPage is the filter panel plus the listings fragment.
type StaysPage struct {
	Chrome
	Form          url.Values
	View          domainlistings.ViewMode
	Listings      Listings
	AmenityFields []string
	Total         int
	Fallback      bool
}

func NewStaysPage(snap session.Snapshot, toasts []notify.Toast) StaysPage {
	return StaysPage{
		Chrome:        Chrome{Title: "Find your stay", Toasts: toasts},
		Form:          session.FacetFormValues(snap.Facets, snap.View),
		View:          snap.View,
		Listings:      ListingsFor(snap.Items, snap.View),
		AmenityFields: session.AmenityFields,
		Total:         snap.Total,
		Fallback:      snap.Fallback,
	}
}

// ViewHref links to the stays page in mode with the current facets.
func (p StaysPage) ViewHref(mode string) string {
	v := url.Values{}
	for k, vals := range p.Form {
		v[k] = append([]string(nil), vals...)
	}
	v.Del(session.FieldView)
	if m := domainlistings.ParseViewMode(mode); m != domainlistings.ViewGrid {
		v.Set(session.FieldView, string(m))
	}
	if len(v) == 0 {
		return "/stays"
	}
	return "/stays?" + v.Encode()
}

type PropertyPage struct {
	Chrome
	Page         *session.PropertyPage
	GuestOptions []int
}

func NewPropertyPage(p *session.PropertyPage, toasts []notify.Toast) PropertyPage {
	opts := make([]int, booking.MaxGuests)
	for i := range opts {
		opts[i] = i + 1
	}
	return PropertyPage{
		Chrome:       Chrome{Title: p.Detail.Header.Title, Toasts: toasts},
		Page:         p,
		GuestOptions: opts,
	}
}

// BookingPage carries an idempotency key so a resubmitted confirmation
// replays instead of acknowledging twice.
type BookingPage struct {
	Chrome
	Summary        booking.Summary
	Confirmed      bool
	IdempotencyKey string
}

func NewBookingPage(p *session.BookingPage, confirmed bool, idempotencyKey string, toasts []notify.Toast) BookingPage {
	return BookingPage{
		Chrome:         Chrome{Title: "Confirm booking", Toasts: toasts},
		Summary:        p.Summary,
		Confirmed:      confirmed,
		IdempotencyKey: idempotencyKey,
	}
}

// AmenityToggleHref flips the amenity panel on the next request.
func (p PropertyPage) AmenityToggleHref() string {
	href := PropertyHref(p.Page.Detail.Listing.ID)
	if p.Page.Detail.Amenities.Expanded {
		return href
	}
	return href + "&amenities=all"
}
