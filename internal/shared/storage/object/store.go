package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates the requested key has no stored object.
var ErrNotFound = errors.New("object not found")

// ErrNoCredentials indicates the store was configured without usable credentials.
var ErrNoCredentials = errors.New("credentials not available")

// ObjectStore defines the contract for saving, retrieving and removing binary
// objects by key. Implementations must be safe for concurrent use.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader) (sizeBytes int64, err error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
