package storage

import "io"

// Provider defines the behavior for any asset storage backend.
type Provider interface {
	List(bucket, prefix string) ([]string, error)
	Put(bucket, key string, body io.ReadSeeker, contentType, cacheControl string) error
	Delete(bucket, key string) error
}
