package detail

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"stays/internal/domain/listings"
)

const (
	// AmenityPageSize is how many amenities are listed before the panel is expanded.
	AmenityPageSize = 8
	// DefaultScore stands in for an unrated listing.
	DefaultScore = 4.8
	// DefaultImage is shown when a listing carries no images.
	DefaultImage = "assets/photos/cairo.png"

	HostedBy = "Entire place hosted by Local Superhost"
)

// View is everything the property page shows for one listing.
type View struct {
	Listing     listings.Listing
	Header      Header
	Highlights  []Highlight
	Amenities   AmenityPanel
	Score       float64
	ScoreLabel  string
	ReviewCount int
	Metrics     []Metric
	Reviews     []Review
	Gallery     Gallery
	Place       Place
}

type Header struct {
	Title    string
	Rating   string
	Location string
	HostedBy string
	Meta     string
	Summary  string
}

type Gallery struct {
	Main       string
	Thumbnails [4]string
}

type Place struct {
	Location string
	MapImage string
	About    string
}

// Compose derives the detail view of l. It never mutates l.
func Compose(l listings.Listing) View {
	l = l.Clone()
	score := l.Rating
	if score == 0 {
		score = DefaultScore
	}
	return View{
		Listing:     l,
		Header:      headerOf(l),
		Highlights:  DefaultRules().Select(l.Amenities),
		Amenities:   NewAmenityPanel(l.Amenities),
		Score:       score,
		ScoreLabel:  ScoreLabel(score),
		ReviewCount: ReviewCount(l.Price),
		Metrics:     Metrics(score),
		Reviews:     SampleReviews(l.Location),
		Gallery:     galleryOf(l.Images),
		Place:       placeOf(l),
	}
}

func headerOf(l listings.Listing) Header {
	return Header{
		Title:    l.Title,
		Rating:   strconv.FormatFloat(l.Rating, 'f', 1, 64),
		Location: l.Location,
		HostedBy: HostedBy,
		Meta:     fmt.Sprintf("%d guests • %d bedrooms • %d baths", l.Guests, l.Beds, l.Baths),
		Summary:  l.Summary,
	}
}

func galleryOf(images []string) Gallery {
	g := Gallery{Main: DefaultImage}
	if len(images) > 0 {
		g.Main = images[0]
	}
	for i := range g.Thumbnails {
		if i+1 < len(images) {
			g.Thumbnails[i] = images[i+1]
		} else {
			g.Thumbnails[i] = g.Main
		}
	}
	return g
}

func placeOf(l listings.Listing) Place {
	p := Place{Location: l.Location, MapImage: DefaultImage, About: l.Summary}
	if len(l.Images) > 0 {
		p.MapImage = l.Images[0]
	}
	if strings.TrimSpace(p.About) == "" {
		city := l.City()
		if city == "" {
			city = "this area"
		}
		p.About = fmt.Sprintf("Located in the heart of %s, with easy access to local cafes, markets, and landmarks.", city)
	}
	return p
}

// ReviewCount is 120 + floor(price) mod 40.
func ReviewCount(price float64) int {
	return 120 + int(math.Mod(math.Floor(price), 40))
}

// ScoreLabel renders the score with two decimals minus one trailing zero: 4.9, 5.0, 4.85.
func ScoreLabel(score float64) string {
	s := strconv.FormatFloat(score, 'f', 2, 64)
	return strings.TrimSuffix(s, "0")
}
