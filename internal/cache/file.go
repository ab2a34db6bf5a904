package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// FileBackend stores the entry as a JSON file guarded by a lock file
type FileBackend struct {
	path string
	lock *flock.Flock
}

// NewFileBackend creates a file backend at dir/key.json
func NewFileBackend(dir, key string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	path := filepath.Join(dir, key+".json")
	return &FileBackend{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

func (b *FileBackend) Get(ctx context.Context) ([]byte, error) {
	locked, err := b.lock.TryRLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("lock cache file: %w", err)
	}
	if locked {
		defer b.lock.Unlock()
	}

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	return data, nil
}

// Put writes to a temp file and renames it over the entry
func (b *FileBackend) Put(ctx context.Context, data []byte, _ time.Duration) error {
	locked, err := b.lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("lock cache file: %w", err)
	}
	if locked {
		defer b.lock.Unlock()
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}

func (b *FileBackend) Close() error {
	return b.lock.Close()
}
