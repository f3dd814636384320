package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	appcatalog "stays/internal/app/catalog"
	domainlistings "stays/internal/domain/listings"
)

const maxObjectBytes = 8 << 20

// Client reads and publishes the catalog document in an S3-compatible bucket.
type Client struct {
	bucket         string
	client         *minio.Client
	logger         *slog.Logger
	bucketInitOnce sync.Once
	bucketInitErr  error
}

// NewClient configures a MinIO client for the endpoint. The scheme of
// endpoint is ignored; useSSL decides transport security.
func NewClient(endpoint string, useSSL bool, accessKey, secretKey, bucket string, logger *slog.Logger) (*Client, error) {
	cleanEndpoint := strings.TrimSpace(endpoint)
	if cleanEndpoint == "" {
		return nil, errors.New("s3: endpoint is required")
	}
	if bucket = strings.TrimSpace(bucket); bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(accessKey), strings.TrimSpace(secretKey), ""),
		Secure: useSSL,
	}
	minioClient, err := minio.New(parseEndpoint(cleanEndpoint), opts)
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{bucket: bucket, client: minioClient, logger: logger}, nil
}

// Source returns a catalog source reading key on every fetch.
func (c *Client) Source(key string) *CatalogSource {
	return &CatalogSource{client: c, key: strings.Trim(strings.TrimSpace(key), "/")}
}

// Publish writes the catalog document to key, creating the bucket on first use.
func (c *Client) Publish(ctx context.Context, key string, items []domainlistings.Listing) error {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return errors.New("s3: object key is required")
	}
	if items == nil {
		items = []domainlistings.Listing{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := c.ensureBucket(ctx); err != nil {
		return err
	}
	_, err = c.client.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  "application/json",
		CacheControl: "no-cache",
	})
	if err != nil {
		return fmt.Errorf("s3: put object: %w", err)
	}
	c.logger.Info("catalog published", "bucket", c.bucket, "key", key, "count", len(items))
	return nil
}

// PublishIfMissing publishes items to key unless the object already exists
// and reports whether it wrote.
func (c *Client) PublishIfMissing(ctx context.Context, key string, items []domainlistings.Listing) (bool, error) {
	key = strings.Trim(strings.TrimSpace(key), "/")
	_, err := c.client.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return false, nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
	default:
		return false, fmt.Errorf("s3: stat object: %w", err)
	}
	if err := c.Publish(ctx, key, items); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) read(ctx context.Context, key string) ([]byte, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("s3: get object: %w", err)
	}
	defer obj.Close()
	data, err := io.ReadAll(io.LimitReader(obj, maxObjectBytes))
	if err != nil {
		return nil, fmt.Errorf("s3: read %s/%s: %w", c.bucket, key, err)
	}
	return data, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	c.bucketInitOnce.Do(func() {
		exists, err := c.client.BucketExists(ctx, c.bucket)
		if err != nil {
			c.bucketInitErr = fmt.Errorf("s3: check bucket: %w", err)
			return
		}
		if exists {
			return
		}
		if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			c.bucketInitErr = fmt.Errorf("s3: create bucket: %w", err)
		}
	})
	return c.bucketInitErr
}

func parseEndpoint(endpoint string) string {
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return endpoint
}

// CatalogSource is the catalog document stored under one object key.
type CatalogSource struct {
	client *Client
	key    string
}

func (s *CatalogSource) Name() string { return "s3:" + s.client.bucket + "/" + s.key }

func (s *CatalogSource) Fetch(ctx context.Context) ([]domainlistings.Listing, error) {
	data, err := s.client.read(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return appcatalog.Decode(data)
}

var _ appcatalog.Source = (*CatalogSource)(nil)
