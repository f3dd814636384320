package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	appcatalog "stays/internal/app/catalog"
	domainlistings "stays/internal/domain/listings"
)

const maxCatalogBytes = 8 << 20

// HTTPSource fetches the catalog document with caching disabled.
type HTTPSource struct {
	Client  *http.Client
	URL     string
	Timeout time.Duration
}

func (s *HTTPSource) Name() string { return "http:" + s.URL }

func (s *HTTPSource) Fetch(ctx context.Context) ([]domainlistings.Listing, error) {
	if s == nil || s.URL == "" {
		return nil, errors.New("catalog: http source url not configured")
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog: %s returned status %d: %s", s.URL, resp.StatusCode, string(snippet))
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, err
	}
	return appcatalog.Decode(data)
}

var _ appcatalog.Source = (*HTTPSource)(nil)
