package booking

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stays/internal/domain/listings"
	"stays/internal/domain/shared/daterange"
)

var ErrValidationFailed = errors.New("booking: check-in and checkout do not form a valid stay")

// ValidationMessage is shown inline when a submit is rejected.
const ValidationMessage = "Please select valid Check-in and Checkout dates."

const (
	DefaultGuests = 2
	MaxGuests     = 10
)

type FormState string

const (
	StateIncomplete FormState = "incomplete"
	StateInvalid    FormState = "invalid"
	StateValid      FormState = "valid"
)

// Constraints are the min/max bounds the date inputs carry after a sync.
// Empty strings mean unbounded.
type Constraints struct {
	CheckInMin  string
	CheckInMax  string
	CheckOutMin string
}

// DateForm is the check-in/checkout pair of the property page booking form.
type DateForm struct {
	CheckIn  string
	CheckOut string
}

// Sync recomputes the input bounds relative to today and moves an inverted
// checkout to the day after check-in. It returns the bounds to render.
func (f *DateForm) Sync(today time.Time) Constraints {
	f.CheckIn = strings.TrimSpace(f.CheckIn)
	f.CheckOut = strings.TrimSpace(f.CheckOut)
	todayStr := daterange.FormatDay(daterange.Truncate(today))

	if in, err := daterange.ParseDay(f.CheckIn); err == nil {
		if out, err := daterange.ParseDay(f.CheckOut); err == nil && !out.After(in) {
			f.CheckOut = daterange.FormatDay(daterange.AddDays(in, 1))
		}
	}

	c := Constraints{CheckInMin: todayStr, CheckOutMin: todayStr, CheckInMax: f.CheckOut}
	if f.CheckIn != "" {
		c.CheckOutMin = f.CheckIn
	}
	return c
}

// State classifies the pair without modifying it.
func (f DateForm) State(today time.Time) FormState {
	in, errIn := daterange.ParseDay(f.CheckIn)
	out, errOut := daterange.ParseDay(f.CheckOut)
	if errIn != nil || errOut != nil {
		return StateIncomplete
	}
	if !out.After(in) || in.Before(daterange.Truncate(today)) {
		return StateInvalid
	}
	return StateValid
}

// CanSubmit reports whether the submit control is enabled.
func (f DateForm) CanSubmit(today time.Time) bool {
	return f.State(today) == StateValid
}

// Submit builds the booking summary parameters. Outside the valid state it
// returns ErrValidationFailed and nothing to navigate to.
func (f DateForm) Submit(id listings.ListingID, guests string, today time.Time) (url.Values, error) {
	if f.State(today) != StateValid {
		return nil, ErrValidationFailed
	}
	return Handoff{
		ListingID: id,
		CheckIn:   f.CheckIn,
		CheckOut:  f.CheckOut,
		Guests:    ParseGuests(guests),
	}.Values(), nil
}

// ParseGuests strips non-digits and defaults to two guests, clamped to the
// selectable range.
func ParseGuests(raw string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return DefaultGuests
	}
	if n > MaxGuests {
		return MaxGuests
	}
	return n
}
