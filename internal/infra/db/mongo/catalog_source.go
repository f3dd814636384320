package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appcatalog "stays/internal/app/catalog"
	domainlistings "stays/internal/domain/listings"
)

const listingsCollection = "listings"

// CatalogSource reads the catalog from the listings collection. Documents
// carry an optional position field that fixes the catalog order.
type CatalogSource struct {
	col *mongo.Collection
}

func NewCatalogSource(db *mongo.Database) *CatalogSource {
	return &CatalogSource{col: db.Collection(listingsCollection)}
}

func (s *CatalogSource) Name() string { return "mongo:" + s.col.Name() }

func (s *CatalogSource) Fetch(ctx context.Context) ([]domainlistings.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]domainlistings.Listing, 0)
	for cur.Next(ctx) {
		var doc listingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode listing: %w", err)
		}
		items = append(items, doc.Listing)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// SeedIfEmpty seeds the collection with items when it holds no listings and
// reports whether it did.
func (s *CatalogSource) SeedIfEmpty(ctx context.Context, items []domainlistings.Listing) (bool, error) {
	err := s.col.FindOne(ctx, bson.M{}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, mongo.ErrNoDocuments):
		return false, fmt.Errorf("check listings: %w", err)
	}
	if err := s.Seed(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}

// Seed replaces the collection with items, preserving their order.
func (s *CatalogSource) Seed(ctx context.Context, items []domainlistings.Listing) error {
	if _, err := s.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}
	if len(items) == 0 {
		return nil
	}
	docs := make([]any, 0, len(items))
	for i, l := range items {
		docs = append(docs, listingDocument{Listing: l, Position: i})
	}
	if _, err := s.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert listings: %w", err)
	}
	return nil
}

type listingDocument struct {
	domainlistings.Listing `bson:",inline"`
	Position               int `bson:"position"`
}

var _ appcatalog.Source = (*CatalogSource)(nil)
