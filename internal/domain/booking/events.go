package booking

import (
	"time"

	"github.com/google/uuid"

	"stays/internal/domain/listings"
)

// ConfirmationMessage is the toast shown after a booking is acknowledged.
const ConfirmationMessage = "Your booking has been confirmed!"

type AcknowledgementID string

func NewAcknowledgementID() AcknowledgementID {
	return AcknowledgementID(uuid.NewString())
}

// AcknowledgedEvent is raised when a guest confirms the booking summary.
// Nothing is reserved or charged.
type AcknowledgedEvent struct {
	ID        AcknowledgementID
	ListingID listings.ListingID
	CheckIn   string
	CheckOut  string
	Guests    int
	Total     int64
	Currency  string
	At        time.Time
}

func (e AcknowledgedEvent) EventName() string     { return "booking.acknowledged" }
func (e AcknowledgedEvent) AggregateID() string   { return string(e.ID) }
func (e AcknowledgedEvent) OccurredAt() time.Time { return e.At }

// Acknowledge produces the event for a summary.
func Acknowledge(s Summary, at time.Time) AcknowledgedEvent {
	return AcknowledgedEvent{
		ID:        NewAcknowledgementID(),
		ListingID: s.Listing.ID,
		CheckIn:   s.CheckIn,
		CheckOut:  s.CheckOut,
		Guests:    s.Guests,
		Total:     s.Quote.Total.Amount,
		Currency:  s.Quote.Total.Currency,
		At:        at.UTC(),
	}
}
