// internal/storage/storage.go
package storage

import (
	"context"
	"errors"

	"github.com/radityabagas/bucketadmin/internal/domain"
)

// ErrObjectNotFound is returned by GetObject when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// DefaultContentType is used when the source object does not report one.
const DefaultContentType = "application/octet-stream"

// ObjectStore captures the remote object-store operations the transfer engine
// needs. The store is flat; folders exist only as key prefixes.
type ObjectStore interface {
	// ListPage returns a single page of objects under prefix. cursor is an
	// opaque continuation token from a previous page ("" for the first page).
	ListPage(ctx context.Context, bucket, prefix string, pageSize int, cursor string) (domain.ListingPage, error)

	// GetObject returns the object's bytes and content type.
	GetObject(ctx context.Context, bucket, key string) ([]byte, string, error)

	// PutObject stores data under key, overwriting any existing object.
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error

	// DeleteObject removes key. Deleting a missing key is not an error.
	DeleteObject(ctx context.Context, bucket, key string) error
}
