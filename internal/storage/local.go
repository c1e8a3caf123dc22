package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalBackend stores document files on the local filesystem under a single
// directory, serving them back through the API's download endpoint.
type LocalBackend struct {
	dir     string
	baseURL string
}

func NewLocalBackend(dir, baseURL string) (*LocalBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}
	return &LocalBackend{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// safePath rejects keys that would escape the storage directory.
func (b *LocalBackend) safePath(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(b.dir, clean), nil
}

func (b *LocalBackend) Save(key string, r io.Reader) error {
	p, err := b.safePath(key)
	if err != nil {
		return err
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create document file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write document file: %w", err)
	}
	return nil
}

func (b *LocalBackend) Open(key string) (io.ReadCloser, error) {
	p, err := b.safePath(key)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (b *LocalBackend) Delete(key string) error {
	p, err := b.safePath(key)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (b *LocalBackend) URL(key string) string {
	return b.baseURL + "/api/v1/files/" + key
}
