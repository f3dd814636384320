package booking

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"stays/internal/app/commands"
	"stays/internal/app/dto"
	"stays/internal/app/outbox"
	"stays/internal/app/policies"
	"stays/internal/app/session"
	domainbooking "stays/internal/domain/booking"
	domainlistings "stays/internal/domain/listings"
)

const acknowledgeBookingKey = "booking.acknowledge"

// AcknowledgeBookingCommand confirms a booking summary. It records an
// acknowledgement event and shows a toast; nothing is reserved or charged.
// Unlike the booking page, an unknown listing id is an error.
type AcknowledgeBookingCommand struct {
	ListingID       string
	CheckIn         string
	CheckOut        string
	Guests          int
	IdempotencyKeyV string
}

func (c AcknowledgeBookingCommand) Key() string { return acknowledgeBookingKey }

func (c AcknowledgeBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c AcknowledgeBookingCommand) ResultPrototype() any { return &dto.BookingAcknowledgement{} }

func (c AcknowledgeBookingCommand) params() url.Values {
	guests := c.Guests
	if guests < 1 {
		guests = domainbooking.DefaultGuests
	}
	return url.Values{
		"id":       {c.ListingID},
		"checkin":  {c.CheckIn},
		"checkout": {c.CheckOut},
		"guests":   {strconv.Itoa(guests)},
	}
}

type AcknowledgeBookingHandler struct {
	Loader   session.CatalogLoader
	Pricing  policies.PricingPort
	Notifier policies.Notifier
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Logger   *slog.Logger
	Now      func() time.Time
}

func (h *AcknowledgeBookingHandler) Handle(ctx context.Context, cmd AcknowledgeBookingCommand) (dto.BookingAcknowledgement, error) {
	page, err := session.OpenBooking(ctx, h.Loader, h.Pricing, h.Notifier, cmd.params(), h.Logger)
	if err != nil {
		return dto.BookingAcknowledgement{}, err
	}
	if !page.Found {
		return dto.BookingAcknowledgement{}, fmt.Errorf("%w: %s", domainlistings.ErrListingNotFound, cmd.ListingID)
	}
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	ev := page.Confirm(ctx, now)
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, page.Events()); err != nil {
		return dto.BookingAcknowledgement{}, err
	}
	return dto.MapAcknowledgement(ev, dto.MapMoney(page.Summary.Quote.Total)), nil
}

// Register wires the booking commands onto bus.
func Register(bus *commands.InMemoryBus, h *AcknowledgeBookingHandler) {
	commands.RegisterHandler[AcknowledgeBookingCommand, dto.BookingAcknowledgement](bus, acknowledgeBookingKey, h)
}

var (
	_ commands.Idempotent                                                     = AcknowledgeBookingCommand{}
	_ commands.Handler[AcknowledgeBookingCommand, dto.BookingAcknowledgement] = (*AcknowledgeBookingHandler)(nil)
)
