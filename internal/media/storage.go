// Package media abstracts the third-party object store that holds uploaded
// video files, thumbnails and profile images. Handlers treat an upload
// failure as fatal to the enclosing write: no database row is created until
// the store has accepted the bytes.
package media

import (
	"context"
	"io"
)

type Storage interface {
	// Upload stores the content under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	// Delete removes a previously uploaded object, addressed by key or by
	// the public URL Upload returned. Best effort; callers treat failures
	// as non-fatal.
	Delete(ctx context.Context, location string) error
}
