package detail

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stays/internal/domain/listings"
)

func cairo() listings.Listing {
	return listings.Listing{
		ID:        "cairo-apartment",
		Title:     "Modern Apartment in Downtown Cairo",
		Location:  "Cairo, Egypt",
		Beds:      2,
		Baths:     1,
		Guests:    4,
		Price:     189,
		Rating:    4.9,
		Images:    []string{"assets/photos/cairo.png", "assets/photos/luxor.png", "assets/photos/aswan.png"},
		Amenities: []string{"WiFi", "Kitchen", "Air conditioning", "Parking"},
	}
}

func titles(hs []Highlight) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.Title)
	}
	return out
}

func TestHighlights_FirstThreeInRuleOrder(t *testing.T) {
	got := DefaultRules().Select([]string{"WiFi", "Kitchen", "Air conditioning", "Parking"})
	assert.Equal(t, []string{"Full kitchen", "Fast Wi‑Fi", "Free parking"}, titles(got))
}

func TestHighlights_PadsWithDedicatedHost(t *testing.T) {
	got := DefaultRules().Select([]string{"WiFi"})
	require.Len(t, got, MaxHighlights)
	assert.Equal(t, []string{"Fast Wi‑Fi", "Dedicated host", "Dedicated host"}, titles(got))

	got = DefaultRules().Select(nil)
	assert.Equal(t, []string{"Dedicated host", "Dedicated host", "Dedicated host"}, titles(got))
}

func TestHighlights_CoolingRulesDoNotDuplicate(t *testing.T) {
	got := DefaultRules().Select([]string{"Air conditioning", "AC unit"})
	assert.Equal(t, []string{"Air conditioning", "Dedicated host", "Dedicated host"}, titles(got))

	got = DefaultRules().Select([]string{"AC", "Air conditioning"})
	assert.Equal(t, []string{"Air conditioning", "Dedicated host", "Dedicated host"}, titles(got))
}

func TestHighlights_CaseInsensitiveSubstring(t *testing.T) {
	got := DefaultRules().Select([]string{"INFINITY POOL"})
	assert.Equal(t, "Private pool", got[0].Title)
}

func TestHighlights_CustomRule(t *testing.T) {
	rules := Rules{KeywordRule("sauna", Highlight{Title: "Sauna"})}
	assert.Equal(t, "Sauna", rules.Select([]string{"Finnish Sauna"})[0].Title)
}

func TestAmenityPanel_SixHidesToggle(t *testing.T) {
	p := NewAmenityPanel([]string{"a", "b", "c", "d", "e", "f"})
	assert.False(t, p.ToggleVisible())
	assert.Len(t, p.Visible(), 6)
}

func TestAmenityPanel_TenToggles(t *testing.T) {
	all := make([]string, 10)
	for i := range all {
		all[i] = fmt.Sprintf("amenity-%d", i)
	}
	p := NewAmenityPanel(all)
	assert.True(t, p.ToggleVisible())
	assert.Len(t, p.Visible(), 8)
	assert.Equal(t, "Show all amenities", p.ToggleLabel())

	p.Toggle()
	assert.Len(t, p.Visible(), 10)
	assert.Equal(t, "Show fewer", p.ToggleLabel())

	p.Toggle()
	assert.Len(t, p.Visible(), 8)
}

func TestMetrics(t *testing.T) {
	ms := Metrics(4.9)
	require.Len(t, ms, 6)
	want := map[string]float64{"clean": 4.8, "comm": 5.0, "checkin": 4.9, "acc": 4.7, "loc": 4.8, "val": 4.6}
	for _, m := range ms {
		assert.InDelta(t, want[m.Key], m.Value, 1e-9, m.Key)
		assert.GreaterOrEqual(t, m.Percent(), 0.0)
		assert.LessOrEqual(t, m.Percent(), 100.0)
	}

	for _, m := range Metrics(5) {
		assert.LessOrEqual(t, m.Value, 5.0)
	}
	for _, m := range Metrics(0.1) {
		assert.GreaterOrEqual(t, m.Value, 0.0)
	}
	assert.Equal(t, "5.0", Metrics(4.95)[1].Display())
}

func TestScoreAndReviewCount(t *testing.T) {
	assert.Equal(t, "4.9", ScoreLabel(4.9))
	assert.Equal(t, "5.0", ScoreLabel(5))
	assert.Equal(t, "4.85", ScoreLabel(4.85))

	assert.Equal(t, 149, ReviewCount(189))
	assert.Equal(t, 120, ReviewCount(120))
	assert.Equal(t, 125, ReviewCount(125.99))
}

func TestSampleReviews(t *testing.T) {
	rs := SampleReviews("Cairo, Egypt")
	require.Len(t, rs, 4)
	assert.Equal(t, []string{"Michael Chen", "Emma Rodriguez", "David Park", "Sophie Williams"},
		[]string{rs[0].Name, rs[1].Name, rs[2].Name, rs[3].Name})
	assert.Contains(t, rs[0].Text, "near Cairo, Egypt.")
	assert.Contains(t, rs[3].Text, "return to Cairo.")
	assert.Equal(t, "https://i.pravatar.cc/80?img=5", rs[0].Avatar)
}

func TestCompose(t *testing.T) {
	l := cairo()
	v := Compose(l)

	assert.Equal(t, "4.9", v.Header.Rating)
	assert.Equal(t, "4 guests • 2 bedrooms • 1 baths", v.Header.Meta)
	assert.Equal(t, HostedBy, v.Header.HostedBy)
	assert.Equal(t, 149, v.ReviewCount)
	assert.Equal(t, "4.9", v.ScoreLabel)

	assert.Equal(t, "assets/photos/cairo.png", v.Gallery.Main)
	assert.Equal(t, [4]string{"assets/photos/luxor.png", "assets/photos/aswan.png", "assets/photos/cairo.png", "assets/photos/cairo.png"}, v.Gallery.Thumbnails)
	assert.Equal(t, "Located in the heart of Cairo, with easy access to local cafes, markets, and landmarks.", v.Place.About)

	v.Listing.Amenities[0] = "changed"
	assert.Equal(t, "WiFi", l.Amenities[0])
}

func TestCompose_UnratedAndImageless(t *testing.T) {
	l := cairo()
	l.Rating = 0
	l.Images = nil
	l.Summary = "Quiet flat."
	v := Compose(l)

	assert.Equal(t, DefaultScore, v.Score)
	assert.Equal(t, DefaultImage, v.Gallery.Main)
	assert.Equal(t, DefaultImage, v.Place.MapImage)
	assert.Equal(t, "Quiet flat.", v.Place.About)
}
