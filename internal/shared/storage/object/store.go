package object

import (
	"context"
	"io"
)

// ObjectStore persists uploaded source files and their derived text
// objects. Save places a new object under the user's namespace and
// reports the sniffed mime type; SaveWithKey overwrites a known key
// (used for the ".extracted.txt" companions).
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
