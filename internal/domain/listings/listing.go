package listings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrListingNotFound = errors.New("listings: listing not found")
	ErrIDRequired      = errors.New("listings: id is required")
	ErrTitleRequired   = errors.New("listings: title is required")
	ErrNightlyRate     = errors.New("listings: nightly rate must be positive")
	ErrRatingRange     = errors.New("listings: rating must be between 0 and 5")
	ErrCapacity        = errors.New("listings: beds, baths and guests must not be negative")
)

type ListingID string

// Listing is one rentable property of the catalog. Values are treated as
// immutable once loaded; callers copy slices before changing them.
type Listing struct {
	ID        ListingID `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Location  string    `json:"location" bson:"location"`
	Beds      int       `json:"beds" bson:"beds"`
	Baths     int       `json:"baths" bson:"baths"`
	Guests    int       `json:"guests" bson:"guests"`
	Price     float64   `json:"price" bson:"price"`
	Rating    float64   `json:"rating" bson:"rating"`
	Images    []string  `json:"images" bson:"images"`
	Amenities []string  `json:"amenities" bson:"amenities"`
	Summary   string    `json:"summary,omitempty" bson:"summary,omitempty"`
}

// Validate checks the minimal invariants a catalog entry must hold.
func (l Listing) Validate() error {
	if strings.TrimSpace(string(l.ID)) == "" {
		return ErrIDRequired
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w: %s", ErrTitleRequired, l.ID)
	}
	if l.Price <= 0 {
		return fmt.Errorf("%w: %s", ErrNightlyRate, l.ID)
	}
	if l.Rating < 0 || l.Rating > 5 {
		return fmt.Errorf("%w: %s", ErrRatingRange, l.ID)
	}
	if l.Beds < 0 || l.Baths < 0 || l.Guests < 0 {
		return fmt.Errorf("%w: %s", ErrCapacity, l.ID)
	}
	return nil
}

// City returns the part of the location before the first comma.
func (l Listing) City() string {
	city, _, _ := strings.Cut(l.Location, ",")
	return strings.TrimSpace(city)
}

// Clone returns a deep copy so callers can never alias catalog slices.
func (l Listing) Clone() Listing {
	clone := l
	clone.Images = append([]string(nil), l.Images...)
	clone.Amenities = append([]string(nil), l.Amenities...)
	return clone
}

// PropertyType is derived from the bed count and never stored.
type PropertyType string

const (
	TypeEntire  PropertyType = "entire"
	TypePrivate PropertyType = "private"
	TypeShared  PropertyType = "shared"
)

// InferPropertyType classifies a listing: two or more beds is an entire
// place, exactly one is a private room, anything else is shared.
func InferPropertyType(l Listing) PropertyType {
	switch {
	case l.Beds >= 2:
		return TypeEntire
	case l.Beds == 1:
		return TypePrivate
	default:
		return TypeShared
	}
}

// FindByID returns the listing with the given id.
func FindByID(all []Listing, id ListingID) (Listing, error) {
	for _, l := range all {
		if l.ID == id {
			return l, nil
		}
	}
	return Listing{}, ErrListingNotFound
}

// ResolveOrFirst returns the listing matching id, or the first catalog entry
// when the id is empty or unknown. found reports whether the id matched.
func ResolveOrFirst(all []Listing, id ListingID) (listing Listing, found bool, err error) {
	if len(all) == 0 {
		return Listing{}, false, ErrListingNotFound
	}
	if id != "" {
		if l, err := FindByID(all, id); err == nil {
			return l, true, nil
		}
	}
	return all[0], false, nil
}
