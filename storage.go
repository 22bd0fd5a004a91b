package researchhub

import (
	"io"
)

// FileStore is the blob storage collaborator. Store returns a stable
// key for the written bytes; Delete is best-effort, a failure to remove
// the physical artifact must not block deleting the metadata row.
type FileStore interface {
	Store(r io.Reader, ext string) (string, error)
	Delete(key string) error
}
