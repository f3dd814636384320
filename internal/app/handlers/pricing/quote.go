package pricing

import (
	"context"

	"stays/internal/app/dto"
	"stays/internal/app/policies"
	"stays/internal/app/queries"
	"stays/internal/app/session"
	"stays/internal/domain/booking"
	domainlistings "stays/internal/domain/listings"
	domainpricing "stays/internal/domain/pricing"
)

const quoteKey = "pricing.quote"

// QuoteQuery prices a stay the way the property and booking pages do:
// missing or invalid dates count as one night, guests default to two.
type QuoteQuery struct {
	ListingID string
	CheckIn   string
	CheckOut  string
	Guests    string
}

func (q QuoteQuery) Key() string { return quoteKey }

func (q QuoteQuery) Validate() error {
	if q.ListingID == "" {
		return domainlistings.ErrIDRequired
	}
	return nil
}

type QuoteHandler struct {
	Loader  session.CatalogLoader
	Pricing policies.PricingPort
}

func (h *QuoteHandler) Handle(ctx context.Context, q QuoteQuery) (dto.Quote, error) {
	res := h.Loader.Load(ctx)
	l, err := domainlistings.FindByID(res.Listings, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.Quote{}, err
	}
	nights := 1
	if q.CheckIn != "" && q.CheckOut != "" {
		nights = domainpricing.NightsBetween(q.CheckIn, q.CheckOut)
	}
	quote := h.Pricing.Quote(l.Price, nights, booking.ParseGuests(q.Guests))
	return dto.MapQuote(string(l.ID), quote), nil
}

// Register wires the pricing queries onto bus.
func Register(bus *queries.InMemoryBus, loader session.CatalogLoader, pricing policies.PricingPort) {
	queries.RegisterHandler[QuoteQuery, dto.Quote](bus, quoteKey, &QuoteHandler{Loader: loader, Pricing: pricing})
}

var _ queries.Handler[QuoteQuery, dto.Quote] = (*QuoteHandler)(nil)
