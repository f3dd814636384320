package dto

import "stays/internal/domain/detail"

// ListingDetail is the property page content as JSON.
type ListingDetail struct {
	Listing     ListingCard    `json:"listing"`
	Meta        string         `json:"meta"`
	HostedBy    string         `json:"hosted_by"`
	Highlights  []Highlight    `json:"highlights"`
	Amenities   AmenityPanel   `json:"amenities"`
	Score       string         `json:"score"`
	ReviewCount int            `json:"review_count"`
	Metrics     []RatingMetric `json:"metrics"`
	Reviews     []Review       `json:"reviews"`
	Gallery     Gallery        `json:"gallery"`
	Place       Place          `json:"place"`
}

type Highlight struct {
	Key   string `json:"key"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type AmenityPanel struct {
	Visible       []string `json:"visible"`
	All           []string `json:"all"`
	ToggleVisible bool     `json:"toggle_visible"`
	ToggleLabel   string   `json:"toggle_label"`
}

type RatingMetric struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

type Review struct {
	Name   string `json:"name"`
	When   string `json:"when"`
	Text   string `json:"text"`
	Avatar string `json:"avatar"`
}

type Gallery struct {
	Main       string   `json:"main"`
	Thumbnails []string `json:"thumbnails"`
}

type Place struct {
	Location string `json:"location"`
	MapImage string `json:"map_image"`
	About    string `json:"about"`
}

func MapDetail(v detail.View) ListingDetail {
	out := ListingDetail{
		Listing:     MapListingCard(v.Listing),
		Meta:        v.Header.Meta,
		HostedBy:    v.Header.HostedBy,
		Score:       v.ScoreLabel,
		ReviewCount: v.ReviewCount,
		Amenities: AmenityPanel{
			Visible:       append([]string{}, v.Amenities.Visible()...),
			All:           append([]string{}, v.Amenities.All...),
			ToggleVisible: v.Amenities.ToggleVisible(),
			ToggleLabel:   v.Amenities.ToggleLabel(),
		},
		Gallery: Gallery{Main: v.Gallery.Main, Thumbnails: v.Gallery.Thumbnails[:]},
		Place:   Place{Location: v.Place.Location, MapImage: v.Place.MapImage, About: v.Place.About},
	}
	for _, h := range v.Highlights {
		out.Highlights = append(out.Highlights, Highlight{Key: h.Key, Icon: h.Icon, Title: h.Title, Text: h.Text})
	}
	for _, m := range v.Metrics {
		out.Metrics = append(out.Metrics, RatingMetric{Key: m.Key, Label: m.Label, Value: m.Value, Percent: m.Percent()})
	}
	for _, r := range v.Reviews {
		out.Reviews = append(out.Reviews, Review{Name: r.Name, When: r.When, Text: r.Text, Avatar: r.Avatar})
	}
	return out
}
