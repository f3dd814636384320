package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stays/internal/domain/shared/money"
)

func TestCalculate_Scenario(t *testing.T) {
	q := Calculate(189, 3, 2)
	assert.Equal(t, int64(113400), q.Subtotal.Amount)
	assert.Equal(t, int64(15000), q.Cleaning.Amount)
	assert.Equal(t, int64(22700), q.Service.Amount)
	assert.Equal(t, int64(151100), q.Total.Amount)
	assert.Equal(t, "USD", q.Total.Currency)
}

func TestCalculate_IsIdempotent(t *testing.T) {
	first := Calculate(137.35, 4, 3)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Calculate(137.35, 4, 3))
	}
}

func TestCalculate_MonotonicInNightsAndGuests(t *testing.T) {
	for _, rate := range []float64{1, 49, 125, 189.99, 450} {
		prev := Calculate(rate, 1, 1).Total.Amount
		for nights := 2; nights <= 30; nights++ {
			total := Calculate(rate, nights, 1).Total.Amount
			assert.GreaterOrEqual(t, total, prev)
			prev = total
		}
		prev = Calculate(rate, 3, 1).Total.Amount
		for guests := 2; guests <= 10; guests++ {
			total := Calculate(rate, 3, guests).Total.Amount
			assert.GreaterOrEqual(t, total, prev)
			prev = total
		}
	}
}

func TestCalculate_FloorsNightsAndGuests(t *testing.T) {
	assert.Equal(t, Calculate(100, 1, 1), Calculate(100, 0, -2))
}

func TestCustomPolicy(t *testing.T) {
	calc := NewCalculator(Policy{CleaningFee: money.Must(0, "USD"), ServicePercent: 10})
	q := calc.Quote(100, 2, 1)
	assert.Equal(t, int64(20000), q.Subtotal.Amount)
	assert.Equal(t, int64(2000), q.Service.Amount)
	assert.Equal(t, int64(22000), q.Total.Amount)
}

func TestNightsBetween(t *testing.T) {
	assert.Equal(t, 3, NightsBetween("2025-06-10", "2025-06-13"))
	assert.Equal(t, 1, NightsBetween("", "2025-06-13"))
	assert.Equal(t, 1, NightsBetween("2025-06-10", "garbage"))
	assert.Equal(t, 1, NightsBetween("2025-06-13", "2025-06-10"))
	assert.Equal(t, 1, NightsBetween("2025-06-10", "2025-06-10"))
}

func TestLineAndLabels(t *testing.T) {
	assert.Contains(t, Calculate(189, 3, 2).Line(), "× 3 nights × 2 guests")
	assert.Contains(t, Calculate(189, 1, 1).Line(), "× 1 night × 1 guest")
	assert.Equal(t, "1 guest", GuestsLabel(1))
	assert.Equal(t, "4 guests", GuestsLabel(4))
	assert.Len(t, Calculate(189, 3, 2).Fees(), 2)
}
