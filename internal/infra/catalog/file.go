package catalog

import (
	"context"
	"fmt"
	"os"

	appcatalog "stays/internal/app/catalog"
	domainlistings "stays/internal/domain/listings"
)

// FileSource reads the catalog document from disk on every fetch.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Fetch(ctx context.Context) ([]domainlistings.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	items, err := appcatalog.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return items, nil
}

var _ appcatalog.Source = FileSource{}
