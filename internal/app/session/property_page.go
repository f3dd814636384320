package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"stays/internal/app/policies"
	"stays/internal/domain/booking"
	"stays/internal/domain/detail"
	domainlistings "stays/internal/domain/listings"
	"stays/internal/domain/pricing"
	"stays/internal/domain/shared/events"
)

// resolveListing loads the catalog and picks the listing for id, defaulting
// to the first entry when id is empty or unknown.
func resolveListing(ctx context.Context, loader CatalogLoader, id domainlistings.ListingID, logger *slog.Logger) (domainlistings.Listing, bool, error) {
	res := loader.Load(ctx)
	l, found, err := domainlistings.ResolveOrFirst(res.Listings, id)
	if err != nil {
		return domainlistings.Listing{}, false, fmt.Errorf("resolve listing %q: %w", id, err)
	}
	if !found {
		logger.Debug("listing id not matched, showing first entry", "requested", id, "shown", l.ID)
	}
	return l, found, nil
}

// PropertyPage is the detail page of one listing with its booking form.
type PropertyPage struct {
	Detail      detail.View
	Found       bool
	Form        booking.DateForm
	Constraints booking.Constraints
	Guests      int
	Quote       pricing.Quote
	CanSubmit   bool
	Error       string

	pricer   policies.PricingPort
	recorder events.EventRecorder
}

// OpenProperty builds the property page for id. It only fails when the
// catalog has no listings at all.
func OpenProperty(ctx context.Context, loader CatalogLoader, pricer policies.PricingPort, id domainlistings.ListingID, today time.Time, logger *slog.Logger) (*PropertyPage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l, found, err := resolveListing(ctx, loader, id, logger)
	if err != nil {
		return nil, err
	}
	p := &PropertyPage{
		Detail: detail.Compose(l),
		Found:  found,
		Guests: booking.DefaultGuests,
		pricer: pricer,
	}
	p.recorder.Record(domainlistings.ListingViewedEvent{ListingID: l.ID, Defaulted: !found, At: today.UTC()})
	p.SetDates("", "", today)
	return p, nil
}

// SetDates applies a date edit, re-syncs the form and reprices.
func (p *PropertyPage) SetDates(checkIn, checkOut string, today time.Time) {
	p.Form = booking.DateForm{CheckIn: checkIn, CheckOut: checkOut}
	p.Constraints = p.Form.Sync(today)
	p.CanSubmit = p.Form.CanSubmit(today)
	p.Error = ""
	p.reprice()
}

// SetGuests applies the guest selector.
func (p *PropertyPage) SetGuests(raw string) {
	p.Guests = booking.ParseGuests(raw)
	p.reprice()
}

// Submit validates the form and returns the booking page parameters. On
// failure the inline error is set and the submit stays disabled.
func (p *PropertyPage) Submit(today time.Time) (url.Values, error) {
	p.Constraints = p.Form.Sync(today)
	values, err := p.Form.Submit(p.Detail.Listing.ID, strconv.Itoa(p.Guests), today)
	if err != nil {
		p.Error = booking.ValidationMessage
		p.CanSubmit = false
		return nil, err
	}
	return values, nil
}

// ToggleAmenities expands or collapses the amenity panel.
func (p *PropertyPage) ToggleAmenities() {
	p.Detail.Amenities.Toggle()
}

func (p *PropertyPage) Events() []events.DomainEvent {
	return p.recorder.Drain()
}

func (p *PropertyPage) reprice() {
	nights := 1
	if p.Form.CheckIn != "" && p.Form.CheckOut != "" {
		nights = pricing.NightsBetween(p.Form.CheckIn, p.Form.CheckOut)
	}
	p.Quote = p.pricer.Quote(p.Detail.Listing.Price, nights, p.Guests)
}

// BookingPage is the booking summary reached from a property page.
type BookingPage struct {
	Summary booking.Summary
	Found   bool

	pricer   policies.PricingPort
	notifier policies.Notifier
	recorder events.EventRecorder
}

// OpenBooking builds the summary from the handoff parameters.
func OpenBooking(ctx context.Context, loader CatalogLoader, pricer policies.PricingPort, notifier policies.Notifier, params url.Values, logger *slog.Logger) (*BookingPage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	h := booking.HandoffFromValues(params)
	l, found, err := resolveListing(ctx, loader, h.ListingID, logger)
	if err != nil {
		return nil, err
	}
	return &BookingPage{
		Summary:  booking.Summarize(l, h, pricer),
		Found:    found,
		pricer:   pricer,
		notifier: notifier,
	}, nil
}

// SetGuests reprices for the guest selector value.
func (p *BookingPage) SetGuests(n int) {
	p.Summary = p.Summary.WithGuests(n, p.pricer)
}

// Confirm acknowledges the booking. Nothing is reserved or charged.
func (p *BookingPage) Confirm(ctx context.Context, now time.Time) booking.AcknowledgedEvent {
	ev := booking.Acknowledge(p.Summary, now)
	p.recorder.Record(ev)
	if p.notifier != nil {
		p.notifier.Notify(ctx, policies.SeveritySuccess, booking.ConfirmationMessage)
	}
	return ev
}

func (p *BookingPage) Events() []events.DomainEvent {
	return p.recorder.Drain()
}
