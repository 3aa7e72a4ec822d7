package storage

import (
	"context"
	"io"
)

// Store persists uploaded document bytes under server-generated names. The
// inline strategy bypasses it entirely; records then carry the bytes
// themselves.
type Store interface {
	// Save writes the object and returns the path/key recorded on the CV.
	// name is always generated by the caller, never a user-supplied filename.
	Save(ctx context.Context, name string, contentType string, r io.Reader) (storedPath string, err error)
	// Open returns the object stream and its size, or -1 when the size is
	// not known up front.
	Open(ctx context.Context, storedPath string) (io.ReadCloser, int64, error)
	// Remove tolerates an already-missing object.
	Remove(ctx context.Context, storedPath string) error
}
