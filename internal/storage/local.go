package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okamel/cvbank/internal/utils"
)

// LocalStore keeps uploads as plain files under a single root directory.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	// name comes from the service layer (uuid + extension); joining it with
	// Base strips any path separators that could escape the root.
	path := filepath.Join(s.root, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

func (s *LocalStore) Open(ctx context.Context, storedPath string) (io.ReadCloser, int64, error) {
	f, err := os.Open(storedPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, utils.ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

func (s *LocalStore) Remove(ctx context.Context, storedPath string) error {
	err := os.Remove(storedPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
