// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider, the local
// implementation keeps objects on disk and authorizes uploads itself.
package storage

import (
	"context"
	"io"
	"time"
)

// UploadGrant is a short-lived authorization to write a single object.
// Exactly one of Token or SignedURL is set, depending on the backend:
// the local backend issues a token redeemed against the service's own
// upload endpoint, the S3 backend issues a presigned PUT URL.
type UploadGrant struct {
	Path      string `json:"path"`
	Token     string `json:"token,omitempty"`
	SignedURL string `json:"signedUrl,omitempty"`
}

// ObjectInfo describes one stored object in a listing.
type ObjectInfo struct {
	Path      string
	UpdatedAt time.Time
}

// Storage is the interface for authorizing, storing, and retrieving objects.
type Storage interface {
	// SignUpload issues a short-lived authorization to write exactly one
	// object. With overwrite set, repeated grants for the same path land at
	// the same location; without it the backend may uniquify the path, so
	// callers must commit the path returned in the grant, not the one they
	// asked for.
	SignUpload(ctx context.Context, path string, overwrite bool) (*UploadGrant, error)

	// Upload streams data to the store under the given key. Used by the
	// server itself for multipart batch uploads; direct client uploads go
	// through the grant instead.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// List enumerates objects under prefix in backend key order, at most
	// limit entries; limit <= 0 lists everything. Callers needing a
	// recency cap must list unbounded and truncate after sorting, since
	// key order says nothing about age.
	List(ctx context.Context, prefix string, limit int) ([]ObjectInfo, error)

	// Remove deletes an object identified by key. Removing a key that does
	// not exist is not an error.
	Remove(ctx context.Context, key string) error

	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
