package session

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stays/internal/app/catalog"
	"stays/internal/app/policies"
	"stays/internal/domain/booking"
	domainlistings "stays/internal/domain/listings"
	"stays/internal/domain/pricing"
)

var today = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type staticLoader struct {
	listings []domainlistings.Listing
}

func (s staticLoader) Load(context.Context) catalog.Result {
	return catalog.Result{Listings: s.listings, Source: "static"}
}

// gatedLoader blocks each Load until its gate is released.
type gatedLoader struct {
	mu    sync.Mutex
	gates []chan []domainlistings.Listing
}

func (g *gatedLoader) Load(context.Context) catalog.Result {
	gate := make(chan []domainlistings.Listing)
	g.mu.Lock()
	g.gates = append(g.gates, gate)
	g.mu.Unlock()
	return catalog.Result{Listings: <-gate, Source: "gated"}
}

func (g *gatedLoader) gate(i int) chan []domainlistings.Listing {
	for {
		g.mu.Lock()
		if len(g.gates) > i {
			ch := g.gates[i]
			g.mu.Unlock()
			return ch
		}
		g.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func fallbackLoader() staticLoader { return staticLoader{listings: catalog.Fallback()} }

func TestListingsPage_LoadApplyReset(t *testing.T) {
	var renders []Snapshot
	page := NewListingsPage(fallbackLoader(), func(s Snapshot) { renders = append(renders, s) }, quiet())

	snap, stale := page.Load(context.Background())
	require.False(t, stale)
	assert.Len(t, snap.Items, 6)
	assert.Equal(t, domainlistings.ViewGrid, snap.View)

	f := domainlistings.DefaultFacets()
	f.Where = "Cairo"
	f.RatingMin = 4.5
	snap = page.Apply(f)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, domainlistings.ListingID("cairo-apartment"), snap.Items[0].ID)

	snap = page.SetView(domainlistings.ViewList)
	assert.Equal(t, domainlistings.ViewList, snap.View)
	assert.Len(t, snap.Items, 1)

	f.Where = "nowhere"
	assert.True(t, page.Apply(f).Empty())

	snap = page.Reset()
	assert.Len(t, snap.Items, 6)
	assert.True(t, snap.Facets.IsDefault())
	assert.Equal(t, domainlistings.ViewList, snap.View)

	assert.Len(t, renders, 5)
	evs := page.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, "catalog.loaded", evs[0].EventName())
}

func TestListingsPage_StaleLoadIsDropped(t *testing.T) {
	loader := &gatedLoader{}
	page := NewListingsPage(loader, nil, quiet())

	slowDone := make(chan bool)
	go func() {
		_, stale := page.Load(context.Background())
		slowDone <- stale
	}()
	slow := loader.gate(0)

	fastDone := make(chan Snapshot)
	go func() {
		snap, _ := page.Load(context.Background())
		fastDone <- snap
	}()
	fast := loader.gate(1)

	fresh := catalog.Fallback()[:2]
	fast <- fresh
	snap := <-fastDone
	assert.Len(t, snap.Items, 2)

	slow <- catalog.Fallback()
	assert.True(t, <-slowDone)
	assert.Len(t, page.Current().Items, 2)
}

func TestDebouncer_LastCallWins(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32
	var last int32
	for i := 1; i <= 5; i++ {
		i := int32(i)
		d.Call(func() {
			atomic.AddInt32(&calls, 1)
			atomic.StoreInt32(&last, i)
		})
	}
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(5), atomic.LoadInt32(&last))
}

func TestDebouncer_FlushAndStop(t *testing.T) {
	d := NewDebouncer(time.Hour)
	ran := false
	d.Call(func() { ran = true })
	assert.True(t, d.Flush())
	assert.True(t, ran)
	assert.False(t, d.Flush())

	d.Call(func() { t.Fatal("called after cancel") })
	d.Cancel()
	assert.False(t, d.Flush())
	d.Call(func() { ran = false })
	assert.True(t, d.Flush())
	assert.False(t, ran)

	d.Stop()
	d.Call(func() { t.Fatal("called after stop") })
	assert.False(t, d.Flush())
}

func TestParseFacetForm(t *testing.T) {
	v := url.Values{}
	v.Set(FieldWhere, "  Cairo ")
	v.Set(FieldPriceMin, "$100")
	v.Set(FieldPriceMax, "1,000")
	v.Set(FieldPriceRange, "300")
	v.Set(FieldEntire, "on")
	v.Set("wifi", "on")
	v.Set("ac", "true")
	v.Set(FieldRating, RatingFourFive)
	v.Set(FieldSort, "price-desc")

	f := ParseFacetForm(v)
	assert.Equal(t, "cairo", f.Where)
	assert.Equal(t, 100.0, f.PriceMin)
	assert.Equal(t, 1000.0, f.PriceMax)
	assert.Equal(t, 300.0, f.EffectivePriceMax())
	assert.Equal(t, []domainlistings.PropertyType{domainlistings.TypeEntire}, f.Types)
	assert.Equal(t, []string{"wifi", "ac"}, f.Amenities)
	assert.Equal(t, 4.5, f.RatingMin)
	assert.Equal(t, domainlistings.SortPriceDesc, f.Sort)

	round := ParseFacetForm(FacetFormValues(f, domainlistings.ViewMap))
	assert.Equal(t, f, round)

	assert.True(t, ParseFacetForm(url.Values{}).IsDefault())
	assert.Equal(t, 4.0, ParseFacetForm(url.Values{RatingFour: {""}}).RatingMin)
}

type toastLog struct{ messages []string }

func (l *toastLog) Notify(_ context.Context, _ policies.Severity, message string) {
	l.messages = append(l.messages, message)
}

func TestPropertyPage(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultPolicy())
	page, err := OpenProperty(context.Background(), fallbackLoader(), calc, "missing", today, quiet())
	require.NoError(t, err)
	assert.False(t, page.Found)
	assert.Equal(t, domainlistings.ListingID("cairo-apartment"), page.Detail.Listing.ID)
	assert.False(t, page.CanSubmit)
	assert.Equal(t, 1, page.Quote.Nights)
	assert.Equal(t, 2, page.Quote.Guests)

	_, err = page.Submit(today)
	assert.ErrorIs(t, err, booking.ErrValidationFailed)
	assert.Equal(t, booking.ValidationMessage, page.Error)

	page.SetDates("2025-06-10", "2025-06-09", today)
	assert.Equal(t, "2025-06-11", page.Form.CheckOut)
	assert.True(t, page.CanSubmit)
	assert.Empty(t, page.Error)

	page.SetDates("2025-06-10", "2025-06-13", today)
	page.SetGuests("2")
	assert.Equal(t, int64(151100), page.Quote.Total.Amount)

	values, err := page.Submit(today)
	require.NoError(t, err)
	assert.Equal(t, "cairo-apartment", values.Get("id"))
	assert.Equal(t, "2", values.Get("guests"))

	evs := page.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, "listing.viewed", evs[0].EventName())
}

func TestBookingPage(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultPolicy())
	toasts := &toastLog{}
	params := url.Values{"id": {"luxor-loft"}, "checkin": {"2025-06-10"}, "checkout": {"2025-06-12"}, "guests": {"3"}}

	page, err := OpenBooking(context.Background(), fallbackLoader(), calc, toasts, params, quiet())
	require.NoError(t, err)
	assert.True(t, page.Found)
	assert.Equal(t, 2, page.Summary.Nights)
	assert.Equal(t, 3, page.Summary.Guests)
	assert.Equal(t, "/property?id=luxor-loft", page.Summary.BackLink)

	page.SetGuests(1)
	assert.Equal(t, int64(55000), page.Summary.Quote.Subtotal.Amount)

	ev := page.Confirm(context.Background(), today)
	assert.Equal(t, domainlistings.ListingID("luxor-loft"), ev.ListingID)
	assert.Equal(t, []string{booking.ConfirmationMessage}, toasts.messages)
	assert.Len(t, page.Events(), 1)
}

func TestOpenProperty_EmptyCatalog(t *testing.T) {
	_, err := OpenProperty(context.Background(), staticLoader{}, pricing.Calculator{}, "x", today, quiet())
	assert.ErrorIs(t, err, domainlistings.ErrListingNotFound)
}
