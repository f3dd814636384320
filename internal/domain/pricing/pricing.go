package pricing

import (
	"fmt"

	"stays/internal/domain/shared/daterange"
	"stays/internal/domain/shared/money"
)

const (
	DefaultCleaningFeeMajor = 150
	DefaultServicePercent   = 20
)

type Fee struct {
	Name   string
	Amount money.Money
}

// Policy holds the fee constants applied on top of the nightly subtotal.
type Policy struct {
	Currency       string
	CleaningFee    money.Money
	ServicePercent int64
}

// DefaultPolicy is a fixed 150.00 cleaning fee and a 20% service fee.
func DefaultPolicy() Policy {
	return Policy{
		Currency:       money.DefaultCurrency,
		CleaningFee:    money.Must(DefaultCleaningFeeMajor*100, money.DefaultCurrency),
		ServicePercent: DefaultServicePercent,
	}
}

// Quote is a computed price breakdown. It is never stored.
type Quote struct {
	Nights      int
	Guests      int
	NightlyRate money.Money
	Subtotal    money.Money
	Cleaning    money.Money
	Service     money.Money
	Total       money.Money
}

// Quoter prices a stay.
type Quoter interface {
	Quote(nightlyRate float64, nights, guests int) Quote
}

// Calculator derives quotes deterministically from its policy.
type Calculator struct {
	Policy Policy
}

func NewCalculator(p Policy) Calculator {
	if p.Currency == "" {
		p.Currency = money.DefaultCurrency
	}
	if p.CleaningFee.Currency == "" {
		p.CleaningFee.Currency = p.Currency
	}
	return Calculator{Policy: p}
}

// Quote computes subtotal = rate × nights × guests, the service fee as a
// rounded percentage of the subtotal and the total. Nights and guests below
// one are treated as one.
func (c Calculator) Quote(nightlyRate float64, nights, guests int) Quote {
	if nights < 1 {
		nights = 1
	}
	if guests < 1 {
		guests = 1
	}
	currency := c.Policy.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}
	nightly := money.FromMajor(nightlyRate, currency)
	subtotal := nightly.Multiply(int64(nights) * int64(guests))
	cleaning := money.Money{Amount: c.Policy.CleaningFee.Amount, Currency: currency}
	service := subtotal.PercentRounded(c.Policy.ServicePercent)
	total := money.Money{Amount: subtotal.Amount + cleaning.Amount + service.Amount, Currency: currency}
	return Quote{
		Nights:      nights,
		Guests:      guests,
		NightlyRate: nightly,
		Subtotal:    subtotal,
		Cleaning:    cleaning,
		Service:     service,
		Total:       total,
	}
}

// Calculate quotes with the default policy.
func Calculate(nightlyRate float64, nights, guests int) Quote {
	return NewCalculator(DefaultPolicy()).Quote(nightlyRate, nights, guests)
}

// NightsBetween derives the night count from two calendar-day strings,
// rounding partial days up. Missing, unparseable or inverted dates yield 1.
func NightsBetween(checkIn, checkOut string) int {
	in, err := daterange.ParseDay(checkIn)
	if err != nil {
		return 1
	}
	out, err := daterange.ParseDay(checkOut)
	if err != nil {
		return 1
	}
	nights := daterange.DateRange{CheckIn: in, CheckOut: out}.Nights()
	if nights < 1 {
		return 1
	}
	return nights
}

// Fees lists the components added on top of the subtotal.
func (q Quote) Fees() []Fee {
	return []Fee{
		{Name: "cleaning_fee", Amount: q.Cleaning},
		{Name: "service_fee", Amount: q.Service},
	}
}

// Line renders "$189.00 × 3 nights × 2 guests".
func (q Quote) Line() string {
	return fmt.Sprintf("%s × %d %s × %d %s",
		q.NightlyRate.Format(), q.Nights, plural(q.Nights, "night"), q.Guests, plural(q.Guests, "guest"))
}

// GuestsLabel renders "1 guest" / "3 guests".
func GuestsLabel(n int) string {
	return fmt.Sprintf("%d %s", n, plural(n, "guest"))
}

func plural(n int, word string) string {
	if n > 1 {
		return word + "s"
	}
	return word
}
