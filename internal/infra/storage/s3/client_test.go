package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainlistings "stays/internal/domain/listings"
)

func TestParseEndpoint(t *testing.T) {
	assert.Equal(t, "localhost:9000", parseEndpoint("http://localhost:9000"))
	assert.Equal(t, "minio:9000", parseEndpoint("minio:9000"))
	assert.Equal(t, "s3.example.com", parseEndpoint("https://s3.example.com/"))
}

func TestNewClient_Validates(t *testing.T) {
	_, err := NewClient("", false, "a", "b", "bucket", nil)
	assert.Error(t, err)
	_, err = NewClient("localhost:9000", false, "a", "b", " ", nil)
	assert.Error(t, err)
}

func TestCatalogSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["location"]; ok {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`))
			return
		}
		if r.Method != http.MethodGet || !strings.HasSuffix(r.URL.Path, "/stays-catalog/data/listings.json") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Last-Modified", "Mon, 02 Jun 2025 10:00:00 GMT")
		_, _ = w.Write([]byte(`[{"id":"x","title":"X","location":"Aswan, Egypt","beds":1,"baths":1,"guests":2,"price":80,"rating":4,"images":[],"amenities":[]}]`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, false, "key", "secret", "stays-catalog", nil)
	require.NoError(t, err)
	src := client.Source("/data/listings.json")
	assert.Equal(t, "s3:stays-catalog/data/listings.json", src.Name())

	items, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Aswan, Egypt", items[0].Location)
}

func TestCatalogSource_MissingObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, false, "key", "secret", "stays-catalog", nil)
	require.NoError(t, err)
	_, err = client.Source("data/listings.json").Fetch(context.Background())
	assert.Error(t, err)
}

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.URL.Query()["location"]; ok {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`))
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	path := strings.Trim(r.URL.Path, "/")
	switch r.Method {
	case http.MethodHead:
		if path == "stays-catalog" {
			w.WriteHeader(http.StatusOK)
			return
		}
		data, ok := b.objects[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("ETag", `"etag"`)
		w.Header().Set("Last-Modified", "Mon, 02 Jun 2025 10:00:00 GMT")
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		b.objects[path] = data
		b.puts++
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestClient_PublishIfMissing(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{}}
	srv := httptest.NewServer(bucket)
	defer srv.Close()

	client, err := NewClient(srv.URL, false, "key", "secret", "stays-catalog", nil)
	require.NoError(t, err)
	items := []domainlistings.Listing{{ID: "aswan-house", Title: "Aswan House", Location: "Aswan, Egypt", Price: 80}}

	published, err := client.PublishIfMissing(context.Background(), "data/listings.json", items)
	require.NoError(t, err)
	assert.True(t, published)
	assert.Contains(t, string(bucket.objects["stays-catalog/data/listings.json"]), `"Aswan House"`)

	published, err = client.PublishIfMissing(context.Background(), "data/listings.json", items)
	require.NoError(t, err)
	assert.False(t, published)
	assert.Equal(t, 1, bucket.puts)
}
