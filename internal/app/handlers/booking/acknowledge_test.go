package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stays/internal/app/catalog"
	"stays/internal/app/commands"
	"stays/internal/app/dto"
	"stays/internal/app/middleware"
	"stays/internal/app/outbox"
	"stays/internal/app/policies"
	domainlistings "stays/internal/domain/listings"
	domainpricing "stays/internal/domain/pricing"
)

type fallbackLoader struct{}

func (fallbackLoader) Load(context.Context) catalog.Result {
	return catalog.Result{Listings: catalog.Fallback(), Source: "offline", Fallback: true}
}

type bufferOutbox struct {
	mu        sync.Mutex
	pending   []outbox.EventRecord
	published []outbox.EventRecord
}

func (b *bufferOutbox) Add(_ context.Context, rec outbox.EventRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, rec)
	return nil
}

func (b *bufferOutbox) Flush(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, b.pending...)
	b.pending = nil
	return nil
}

type mapStore struct {
	mu    sync.Mutex
	items map[string]middleware.IdempotencyRecord
}

func (s *mapStore) Get(_ context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.items[key]
	return rec, ok, nil
}

func (s *mapStore) Save(_ context.Context, rec middleware.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[rec.Key] = rec
	return nil
}

func TestAcknowledgeBooking(t *testing.T) {
	box := &bufferOutbox{}
	var toasts []string
	notifier := policies.NotifierFunc(func(_ context.Context, sev policies.Severity, msg string) {
		assert.Equal(t, policies.SeveritySuccess, sev)
		toasts = append(toasts, msg)
	})
	base := commands.NewInMemoryBus()
	Register(base, &AcknowledgeBookingHandler{
		Loader:   fallbackLoader{},
		Pricing:  domainpricing.NewCalculator(domainpricing.DefaultPolicy()),
		Notifier: notifier,
		Outbox:   box,
		Now:      func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	})
	bus := middleware.ChainCommands(base,
		middleware.Idempotency(&mapStore{items: map[string]middleware.IdempotencyRecord{}}, nil),
		middleware.OutboxFlush(box, nil),
	)

	cmd := AcknowledgeBookingCommand{ListingID: "cairo-apartment", CheckIn: "2025-06-10", CheckOut: "2025-06-13", Guests: 2, IdempotencyKeyV: "k1"}
	first, err := commands.Dispatch[AcknowledgeBookingCommand, dto.BookingAcknowledgement](context.Background(), bus, cmd)
	require.NoError(t, err)
	assert.Equal(t, "cairo-apartment", first.ListingID)
	assert.Equal(t, int64(151100), first.Total.Amount)
	assert.Equal(t, "Your booking has been confirmed!", first.Message)

	require.Len(t, box.published, 1)
	assert.Equal(t, "booking.acknowledged", box.published[0].Name)
	assert.Equal(t, first.ID, box.published[0].Aggregate)

	replayed, err := commands.Dispatch[AcknowledgeBookingCommand, dto.BookingAcknowledgement](context.Background(), bus, cmd)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replayed.ID)
	assert.Len(t, box.published, 1)
	assert.Len(t, toasts, 1)

	cmd.IdempotencyKeyV = ""
	other, err := commands.Dispatch[AcknowledgeBookingCommand, dto.BookingAcknowledgement](context.Background(), bus, cmd)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Len(t, box.published, 2)

	cmd.ListingID = "nowhere"
	_, err = commands.Dispatch[AcknowledgeBookingCommand, dto.BookingAcknowledgement](context.Background(), bus, cmd)
	assert.ErrorIs(t, err, domainlistings.ErrListingNotFound)
	assert.Len(t, box.published, 2)
}
