package booking

import (
	"net/url"
	"strconv"

	"stays/internal/domain/listings"
	"stays/internal/domain/pricing"
	"stays/internal/domain/shared/daterange"
)

const missingDate = "—"

// Handoff is what the property page passes to the booking summary page.
type Handoff struct {
	ListingID listings.ListingID
	CheckIn   string
	CheckOut  string
	Guests    int
}

func (h Handoff) Values() url.Values {
	guests := h.Guests
	if guests < 1 {
		guests = DefaultGuests
	}
	v := url.Values{}
	v.Set("id", string(h.ListingID))
	v.Set("checkin", h.CheckIn)
	v.Set("checkout", h.CheckOut)
	v.Set("guests", strconv.Itoa(guests))
	return v
}

// HandoffFromValues reads the summary page parameters. Missing values are
// kept empty; guests default to two.
func HandoffFromValues(v url.Values) Handoff {
	return Handoff{
		ListingID: listings.ListingID(v.Get("id")),
		CheckIn:   v.Get("checkin"),
		CheckOut:  v.Get("checkout"),
		Guests:    ParseGuests(v.Get("guests")),
	}
}

// Summary is the booking summary page model.
type Summary struct {
	Listing      listings.Listing
	CheckIn      string
	CheckOut     string
	CheckInText  string
	CheckOutText string
	Nights       int
	Guests       int
	GuestOptions []int
	Quote        pricing.Quote
	BackLink     string
}

// Summarize prices the stay for l with the given calculator.
func Summarize(l listings.Listing, h Handoff, calc pricing.Quoter) Summary {
	nights := 1
	if h.CheckIn != "" && h.CheckOut != "" {
		nights = pricing.NightsBetween(h.CheckIn, h.CheckOut)
	}
	guests := h.Guests
	if guests < 1 {
		guests = DefaultGuests
	}
	options := make([]int, MaxGuests)
	for i := range options {
		options[i] = i + 1
	}
	return Summary{
		Listing:      l,
		CheckIn:      h.CheckIn,
		CheckOut:     h.CheckOut,
		CheckInText:  longOrDash(h.CheckIn),
		CheckOutText: longOrDash(h.CheckOut),
		Nights:       nights,
		Guests:       guests,
		GuestOptions: options,
		Quote:        calc.Quote(l.Price, nights, guests),
		BackLink:     "/property?" + url.Values{"id": {string(l.ID)}}.Encode(),
	}
}

// WithGuests reprices the summary for a new guest count.
func (s Summary) WithGuests(guests int, calc pricing.Quoter) Summary {
	if guests < 1 {
		guests = 1
	}
	if guests > MaxGuests {
		guests = MaxGuests
	}
	s.Guests = guests
	s.Quote = calc.Quote(s.Listing.Price, s.Nights, guests)
	return s
}

func longOrDash(raw string) string {
	if raw == "" {
		return missingDate
	}
	if long := daterange.Long(raw); long != "" {
		return long
	}
	return missingDate
}
