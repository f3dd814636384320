package dto

import "stays/internal/domain/pricing"

type Quote struct {
	ListingID   string   `json:"listing_id"`
	Nights      int      `json:"nights"`
	Guests      int      `json:"guests"`
	NightlyRate MoneyDTO `json:"nightly_rate"`
	Subtotal    MoneyDTO `json:"subtotal"`
	Fees        []Fee    `json:"fees"`
	Total       MoneyDTO `json:"total"`
	Line        string   `json:"line"`
}

type Fee struct {
	Name   string   `json:"name"`
	Amount MoneyDTO `json:"amount"`
}

func MapQuote(listingID string, q pricing.Quote) Quote {
	fees := make([]Fee, 0, 2)
	for _, f := range q.Fees() {
		fees = append(fees, Fee{Name: f.Name, Amount: MapMoney(f.Amount)})
	}
	return Quote{
		ListingID:   listingID,
		Nights:      q.Nights,
		Guests:      q.Guests,
		NightlyRate: MapMoney(q.NightlyRate),
		Subtotal:    MapMoney(q.Subtotal),
		Fees:        fees,
		Total:       MapMoney(q.Total),
		Line:        q.Line(),
	}
}
