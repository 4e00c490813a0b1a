package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalClient stores objects as plain files under a directory. It is the
// default backend and what the reference deployment uses.
type LocalClient struct {
	dir string
}

// NewLocalClient constructs a local-disk backend rooted at dir.
func NewLocalClient(dir string) (*LocalClient, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage directory is required")
	}
	return &LocalClient{dir: dir}, nil
}

// EnsureBucket creates the root directory if it is missing.
func (l *LocalClient) EnsureBucket(ctx context.Context) error {
	return os.MkdirAll(l.dir, 0o755)
}

// Put writes the object to a temporary file and renames it into place, so a
// crash mid-write never leaves a truncated collection behind.
func (l *LocalClient) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path := filepath.Join(l.dir, key)
	tmp, err := os.CreateTemp(l.dir, "."+filepath.Base(key)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Get reads the whole object from disk.
func (l *LocalClient) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	return data, nil
}

// Bucket returns the root directory.
func (l *LocalClient) Bucket() string {
	return l.dir
}
