package storage

import (
	"io"
	"path"

	"github.com/google/uuid"
)

// Backend abstracts where rendered and uploaded document files live. The
// local implementation covers single-node deployments; an object store can
// slot in behind the same interface.
type Backend interface {
	Save(key string, r io.Reader) error
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
	// URL returns the externally visible reference for a stored file.
	URL(key string) string
}

// NewKey builds a collision-free storage key preserving the file extension.
func NewKey(fileName string) string {
	return uuid.NewString() + path.Ext(fileName)
}
