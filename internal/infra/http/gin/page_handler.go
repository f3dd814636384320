package ginserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stays/internal/app/commands"
	"stays/internal/app/dto"
	bookingapp "stays/internal/app/handlers/booking"
	listingapp "stays/internal/app/handlers/listings"
	"stays/internal/app/outbox"
	"stays/internal/app/policies"
	"stays/internal/app/session"
	"stays/internal/domain/booking"
	domainlistings "stays/internal/domain/listings"
	"stays/internal/domain/shared/events"
	"stays/internal/infra/notify"
	"stays/internal/infra/view"
)

const noListingsMessage = "No listings are available right now."

// PageHandler serves the server-rendered pages. Each request gets its own
// page controller and a toast collector.
type PageHandler struct {
	Loader   session.CatalogLoader
	Pricing  policies.PricingPort
	Commands commands.Bus
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Logger   *slog.Logger
	Now      func() time.Time
}

func (h PageHandler) Home(c *gin.Context) {
	ctx, toasts := h.requestContext(c)
	res := h.Loader.Load(ctx)
	featured := domainlistings.Featured(res.Listings, listingapp.DefaultFeatured)
	h.publish(ctx, []events.DomainEvent{res.Event()})
	c.HTML(http.StatusOK, view.PageHome, view.NewHomePage(featured, toasts.Drain()))
}

func (h PageHandler) Stays(c *gin.Context) {
	ctx, toasts := h.requestContext(c)
	page := session.NewListingsPage(h.Loader, nil, h.logger())
	page.Load(ctx)
	page.SetView(domainlistings.ParseViewMode(c.Query(session.FieldView)))
	snap := page.Apply(session.ParseFacetForm(c.Request.URL.Query()))
	h.publish(ctx, page.Events())
	c.HTML(http.StatusOK, view.PageStays, view.NewStaysPage(snap, toasts.Drain()))
}

// Property renders the detail page. Optional checkin, checkout and guests
// parameters prefill the booking form; amenities=all expands the panel.
func (h PageHandler) Property(c *gin.Context) {
	ctx, toasts := h.requestContext(c)
	today := h.today()
	page, err := session.OpenProperty(ctx, h.Loader, h.Pricing, domainlistings.ListingID(c.Query("id")), today, h.logger())
	if err != nil {
		h.unavailable(c, err)
		return
	}
	page.SetDates(c.Query("checkin"), c.Query("checkout"), today)
	if guests := c.Query("guests"); guests != "" {
		page.SetGuests(guests)
	}
	if c.Query("amenities") == "all" {
		page.ToggleAmenities()
	}
	h.publish(ctx, page.Events())
	c.HTML(http.StatusOK, view.PageProperty, view.NewPropertyPage(page, toasts.Drain()))
}

// Book validates the booking form. Invalid dates re-render the property page
// with the inline error; valid ones redirect to the booking summary.
func (h PageHandler) Book(c *gin.Context) {
	ctx, toasts := h.requestContext(c)
	today := h.today()
	page, err := session.OpenProperty(ctx, h.Loader, h.Pricing, domainlistings.ListingID(c.PostForm("id")), today, h.logger())
	if err != nil {
		h.unavailable(c, err)
		return
	}
	page.SetDates(c.PostForm("checkin"), c.PostForm("checkout"), today)
	page.SetGuests(c.PostForm("guests"))
	values, err := page.Submit(today)
	if err != nil {
		toasts.Notify(ctx, policies.SeverityError, booking.ValidationMessage)
		c.HTML(http.StatusUnprocessableEntity, view.PageProperty, view.NewPropertyPage(page, toasts.Drain()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/booking?"+values.Encode())
}

func (h PageHandler) Booking(c *gin.Context) {
	ctx, toasts := h.requestContext(c)
	page, err := session.OpenBooking(ctx, h.Loader, h.Pricing, nil, c.Request.URL.Query(), h.logger())
	if err != nil {
		h.unavailable(c, err)
		return
	}
	c.HTML(http.StatusOK, view.PageBooking, view.NewBookingPage(page, false, uuid.NewString(), toasts.Drain()))
}

// Confirm acknowledges the booking through the command bus so page and API
// confirmations share idempotency and event publishing.
func (h PageHandler) Confirm(c *gin.Context) {
	ctx, toasts := h.requestContext(c)
	guests, _ := strconv.Atoi(c.PostForm("guests"))
	cmd := bookingapp.AcknowledgeBookingCommand{
		ListingID:       c.PostForm("id"),
		CheckIn:         c.PostForm("checkin"),
		CheckOut:        c.PostForm("checkout"),
		Guests:          guests,
		IdempotencyKeyV: c.PostForm("idempotency_key"),
	}
	ack, err := commands.Dispatch[bookingapp.AcknowledgeBookingCommand, dto.BookingAcknowledgement](ctx, h.Commands, cmd)
	if err != nil {
		if errors.Is(err, domainlistings.ErrListingNotFound) {
			c.Redirect(http.StatusSeeOther, "/booking?"+c.Request.PostForm.Encode())
			return
		}
		h.unavailable(c, err)
		return
	}
	shown := toasts.Drain()
	if len(shown) == 0 {
		// replayed confirmation: the handler did not run again
		toasts.Notify(ctx, policies.SeveritySuccess, ack.Message)
		shown = toasts.Drain()
	}
	page, err := session.OpenBooking(ctx, h.Loader, h.Pricing, nil, booking.Handoff{
		ListingID: domainlistings.ListingID(cmd.ListingID),
		CheckIn:   cmd.CheckIn,
		CheckOut:  cmd.CheckOut,
		Guests:    guests,
	}.Values(), h.logger())
	if err != nil {
		h.unavailable(c, err)
		return
	}
	c.HTML(http.StatusOK, view.PageBooking, view.NewBookingPage(page, true, cmd.IdempotencyKeyV, append(shown, toasts.Drain()...)))
}

func (h PageHandler) requestContext(c *gin.Context) (context.Context, *notify.Collector) {
	toasts := &notify.Collector{}
	return notify.WithCollector(c.Request.Context(), toasts), toasts
}

func (h PageHandler) publish(ctx context.Context, evs []events.DomainEvent) {
	publishEvents(ctx, h.Outbox, h.Encoder, h.logger(), evs)
}

// publishEvents records page events and flushes them right away. Failures
// are logged; a page never fails because its events could not be sent.
func publishEvents(ctx context.Context, box outbox.Outbox, enc outbox.EventEncoder, logger *slog.Logger, evs []events.DomainEvent) {
	if box == nil || len(evs) == 0 {
		return
	}
	if err := outbox.RecordDomainEvents(ctx, box, enc, evs); err != nil {
		logger.Warn("record page events failed", "err", err)
		return
	}
	if err := box.Flush(ctx); err != nil {
		logger.Warn("flush page events failed", "err", err)
	}
}

func (h PageHandler) unavailable(c *gin.Context, err error) {
	_ = c.Error(err)
	h.logger().Error("page unavailable", "path", c.Request.URL.Path, "err", err)
	c.String(http.StatusServiceUnavailable, noListingsMessage)
}

func (h PageHandler) today() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h PageHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

var _ PageHTTP = PageHandler{}
