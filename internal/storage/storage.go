// Package storage puts uploaded marketing assets (teaser audio, mood
// clips, imagery) in an S3-compatible bucket, with a local-filesystem
// fallback for development.
package storage

import (
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/turtlemeow87-design/tradscendence-site/internal/config"
)

// Uploaded assets are immutable; a changed asset gets a new key.
const assetCacheControl = "public, max-age=31536000, immutable"

type Client struct {
	backend       Provider
	bucket        string
	publicBaseURL string
}

func New(cfg *config.Config) *Client {
	var backend Provider

	if cfg.Storage.Provider == config.StorageLocal {
		backend = NewLocalProvider(cfg.Storage.LocalPath)
	} else {
		s3Config := &aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.Storage.KeyID, cfg.Storage.AppKey, ""),
			Endpoint:         aws.String(cfg.Storage.Endpoint),
			Region:           aws.String(cfg.Storage.Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		sess := session.Must(session.NewSession(s3Config))
		backend = NewS3Provider(sess)
	}

	return &Client{
		backend:       backend,
		bucket:        cfg.Storage.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/"),
	}
}

// NewWithProvider wires a specific backend; used by tests.
func NewWithProvider(backend Provider, bucket, publicBaseURL string) *Client {
	return &Client{
		backend:       backend,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (c *Client) UploadAsset(key string, body io.ReadSeeker, contentType string) error {
	return c.backend.Put(c.bucket, key, body, contentType, assetCacheControl)
}

func (c *Client) ListAssets(prefix string) ([]string, error) {
	return c.backend.List(c.bucket, prefix)
}

func (c *Client) DeleteAsset(key string) error {
	return c.backend.Delete(c.bucket, key)
}

// PublicURL is the browser-facing URL for a stored key.
func (c *Client) PublicURL(key string) string {
	if c.publicBaseURL == "" {
		return "/" + key
	}
	return c.publicBaseURL + "/" + key
}
