package detail

import (
	"fmt"
	"math"
	"strings"
)

// Metric is one synthetic rating sub-score.
type Metric struct {
	Key   string
	Label string
	Value float64
}

// Percent is the bar width, value/5 × 100 clamped to [0,100].
func (m Metric) Percent() float64 {
	return clamp(m.Value/5*100, 0, 100)
}

func (m Metric) Display() string {
	return fmt.Sprintf("%.1f", m.Value)
}

var metricOffsets = []struct {
	key, label string
	offset     float64
}{
	{"clean", "Cleanliness", -0.1},
	{"comm", "Communication", 0.1},
	{"checkin", "Check-in", 0},
	{"acc", "Accuracy", -0.2},
	{"loc", "Location", -0.1},
	{"val", "Value", -0.3},
}

// Metrics derives the six sub-scores from score, each rounded to one decimal
// and clamped to [0,5].
func Metrics(score float64) []Metric {
	out := make([]Metric, 0, len(metricOffsets))
	for _, m := range metricOffsets {
		v := math.Round((score+m.offset)*10) / 10
		out = append(out, Metric{Key: m.key, Label: m.label, Value: clamp(v, 0, 5)})
	}
	return out
}

type Review struct {
	Name   string
	When   string
	Text   string
	Avatar string
}

// SampleReviews returns the fixed reviewer set with the location interpolated.
func SampleReviews(location string) []Review {
	city := strings.TrimSpace(strings.SplitN(location, ",", 2)[0])
	reviews := []Review{
		{Name: "Michael Chen", When: "March 2024", Text: fmt.Sprintf("Fantastic stay near %s. Views were even better than the photos.", location)},
		{Name: "Emma Rodriguez", When: "February 2024", Text: "Perfect for our vacation. Clean, bright, and close to everything."},
		{Name: "David Park", When: "January 2024", Text: "Loved the design and location. Great amenities and super responsive host."},
		{Name: "Sophie Williams", When: "December 2023", Text: fmt.Sprintf("A dream spot! We’ll definitely return to %s.", city)},
	}
	for i := range reviews {
		reviews[i].Avatar = fmt.Sprintf("https://i.pravatar.cc/80?img=%d", 5+i)
	}
	return reviews
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
