package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stays/internal/domain/listings"
	"stays/internal/domain/pricing"
)

var today = time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

func TestSync_AutoCorrectsInvertedPair(t *testing.T) {
	f := DateForm{CheckIn: "2025-06-10", CheckOut: "2025-06-09"}
	c := f.Sync(today)

	assert.Equal(t, "2025-06-11", f.CheckOut)
	assert.Equal(t, StateValid, f.State(today))
	assert.Equal(t, Constraints{CheckInMin: "2025-06-01", CheckInMax: "2025-06-11", CheckOutMin: "2025-06-10"}, c)
}

func TestSync_EqualDatesAreCorrected(t *testing.T) {
	f := DateForm{CheckIn: "2025-06-30", CheckOut: "2025-06-30"}
	f.Sync(today)
	assert.Equal(t, "2025-07-01", f.CheckOut)
}

func TestSync_UnsetCheckIn(t *testing.T) {
	f := DateForm{CheckOut: "2025-06-09"}
	c := f.Sync(today)
	assert.Equal(t, "2025-06-01", c.CheckOutMin)
	assert.Equal(t, "2025-06-09", c.CheckInMax)
	assert.Equal(t, StateIncomplete, f.State(today))
}

func TestState(t *testing.T) {
	cases := []struct {
		name string
		form DateForm
		want FormState
	}{
		{"empty", DateForm{}, StateIncomplete},
		{"missing checkout", DateForm{CheckIn: "2025-06-10"}, StateIncomplete},
		{"garbage", DateForm{CheckIn: "soon", CheckOut: "2025-06-10"}, StateIncomplete},
		{"inverted", DateForm{CheckIn: "2025-06-10", CheckOut: "2025-06-09"}, StateInvalid},
		{"same day", DateForm{CheckIn: "2025-06-10", CheckOut: "2025-06-10"}, StateInvalid},
		{"past", DateForm{CheckIn: "2025-05-01", CheckOut: "2025-05-03"}, StateInvalid},
		{"today", DateForm{CheckIn: "2025-06-01", CheckOut: "2025-06-02"}, StateValid},
		{"future", DateForm{CheckIn: "2025-06-10", CheckOut: "2025-06-13"}, StateValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.form.State(today))
			assert.Equal(t, tc.want == StateValid, tc.form.CanSubmit(today))
		})
	}
}

func TestSubmit(t *testing.T) {
	_, err := DateForm{CheckIn: "2025-06-10"}.Submit("cairo-apartment", "3", today)
	assert.ErrorIs(t, err, ErrValidationFailed)

	v, err := DateForm{CheckIn: "2025-06-10", CheckOut: "2025-06-13"}.Submit("cairo-apartment", "", today)
	require.NoError(t, err)
	assert.Equal(t, "cairo-apartment", v.Get("id"))
	assert.Equal(t, "2025-06-10", v.Get("checkin"))
	assert.Equal(t, "2025-06-13", v.Get("checkout"))
	assert.Equal(t, "2", v.Get("guests"))

	v, err = DateForm{CheckIn: "2025-06-10", CheckOut: "2025-06-13"}.Submit("cairo-apartment", "3 guests", today)
	require.NoError(t, err)
	assert.Equal(t, "3", v.Get("guests"))
}

func TestParseGuests(t *testing.T) {
	assert.Equal(t, 2, ParseGuests(""))
	assert.Equal(t, 2, ParseGuests("0"))
	assert.Equal(t, 4, ParseGuests("4"))
	assert.Equal(t, 10, ParseGuests("25"))
}

func TestSummarize(t *testing.T) {
	l := listings.Listing{ID: "cairo-apartment", Title: "Cairo", Location: "Cairo, Egypt", Price: 189, Rating: 4.9}
	calc := pricing.NewCalculator(pricing.DefaultPolicy())
	h := HandoffFromValues(Handoff{ListingID: l.ID, CheckIn: "2025-06-10", CheckOut: "2025-06-13", Guests: 2}.Values())

	s := Summarize(l, h, calc)
	assert.Equal(t, 3, s.Nights)
	assert.Equal(t, "June 10, 2025", s.CheckInText)
	assert.Equal(t, "June 13, 2025", s.CheckOutText)
	assert.Equal(t, int64(151100), s.Quote.Total.Amount)
	assert.Len(t, s.GuestOptions, MaxGuests)
	assert.Equal(t, "/property?id=cairo-apartment", s.BackLink)

	more := s.WithGuests(3, calc)
	assert.Equal(t, int64(113400*3/2), more.Quote.Subtotal.Amount)
	assert.Equal(t, 2, s.Guests)

	empty := Summarize(l, Handoff{ListingID: l.ID}, calc)
	assert.Equal(t, 1, empty.Nights)
	assert.Equal(t, "—", empty.CheckInText)
	assert.Equal(t, DefaultGuests, empty.Guests)
}

func TestAcknowledge(t *testing.T) {
	l := listings.Listing{ID: "luxor-loft", Price: 275}
	s := Summarize(l, Handoff{ListingID: l.ID, Guests: 1}, pricing.NewCalculator(pricing.DefaultPolicy()))
	e := Acknowledge(s, today)
	assert.Equal(t, "booking.acknowledged", e.EventName())
	assert.NotEmpty(t, e.AggregateID())
	assert.Equal(t, s.Quote.Total.Amount, e.Total)
	assert.Equal(t, today, e.OccurredAt())
}
