package dto

import (
	"time"

	"stays/internal/domain/booking"
)

// BookingAcknowledgement is returned when a guest confirms a booking summary.
type BookingAcknowledgement struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Guests    int       `json:"guests"`
	Total     MoneyDTO  `json:"total"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

func MapAcknowledgement(ev booking.AcknowledgedEvent, total MoneyDTO) BookingAcknowledgement {
	return BookingAcknowledgement{
		ID:        string(ev.ID),
		ListingID: string(ev.ListingID),
		CheckIn:   ev.CheckIn,
		CheckOut:  ev.CheckOut,
		Guests:    ev.Guests,
		Total:     total,
		Message:   booking.ConfirmationMessage,
		At:        ev.At,
	}
}
