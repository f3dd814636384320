package money

import (
	"errors"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	ErrInvalidCurrency  = errors.New("money: invalid currency code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
)

// DefaultCurrency is the single currency the catalog is priced in.
const DefaultCurrency = "USD"

const minorPerMajor = 100

// Money keeps amounts in integer minor units (cents) to avoid floating point drift.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// New constructs a Money value validating minimal invariants.
func New(amount int64, currency string) (Money, error) {
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	currency = strings.ToUpper(currency)
	return Money{Amount: amount, Currency: currency}, nil
}

// Must creates Money and panics if validation fails; useful in tests and fixtures.
func Must(amount int64, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// FromMajor converts a major-unit amount (e.g. 189.5 dollars) to Money.
func FromMajor(amount float64, currency string) Money {
	return Must(int64(math.Round(amount*minorPerMajor)), currency)
}

// Add adds two money values ensuring currencies match.
func (m Money) Add(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Multiply multiplies the amount by the provided factor.
func (m Money) Multiply(times int64) Money {
	return Money{Amount: m.Amount * times, Currency: m.Currency}
}

// PercentRounded returns pct percent of m rounded half-up to a whole major unit.
func (m Money) PercentRounded(pct int64) Money {
	const unit = minorPerMajor * 100
	scaled := m.Amount * pct
	var whole int64
	if scaled >= 0 {
		whole = (scaled + unit/2) / unit
	} else {
		whole = -((-scaled + unit/2) / unit)
	}
	return Money{Amount: whole * minorPerMajor, Currency: m.Currency}
}

// Major returns the amount in major units.
func (m Money) Major() float64 {
	return float64(m.Amount) / minorPerMajor
}

// IsZero returns true if the amount equals zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Format renders the amount as en-US currency, e.g. "$1,511.00".
func (m Money) Format() string {
	p := message.NewPrinter(language.AmericanEnglish)
	digits := p.Sprint(number.Decimal(math.Abs(m.Major()), number.Scale(2)))
	sign := ""
	if m.Amount < 0 {
		sign = "-"
	}
	return sign + symbol(m.Currency) + digits
}

func (m Money) String() string {
	return m.Format()
}

func symbol(currency string) string {
	switch strings.ToUpper(currency) {
	case "", "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "EGP":
		return "E£"
	default:
		return strings.ToUpper(currency) + " "
	}
}

func (m Money) ensureSameCurrency(other Money) error {
	if m.Currency == "" || other.Currency == "" {
		return ErrInvalidCurrency
	}
	if m.Currency != other.Currency {
		return ErrCurrencyMismatch
	}
	return nil
}
