package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lithammer/shortuuid/v4"

	"github.com/basit/filestash-backend/apperrors"
)

// BlobStore writes raw file content under a single local root
// directory, addressed by random names. The root is created on first
// use.
type BlobStore struct {
	root string
}

func NewBlobStore(root string) *BlobStore {
	return &BlobStore{root: root}
}

// Write stores data under a freshly allocated random name and returns
// the absolute path.
func (b *BlobStore) Write(data []byte) (string, error) {
	if err := os.MkdirAll(b.root, 0o755); err != nil {
		return "", apperrors.Internal("blob mkdir", err)
	}
	path := filepath.Join(b.root, shortuuid.New())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.Internal("blob write", err)
	}
	return path, nil
}

// WriteAt stores data at an exact path, overwriting any previous
// content. Thumbnail derivatives use it to land beside their original.
func (b *BlobStore) WriteAt(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.Internal("blob write", err)
	}
	return nil
}

// Read returns the content at path, or ErrNotFound if the blob is gone.
func (b *BlobStore) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("blob read: %w", err)
	}
	return data, nil
}
