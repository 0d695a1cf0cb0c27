package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lumigen/lumigen/application/port/outbound"
)

// DiskStore keeps assets as flat files in a single directory. Identifiers
// come from the caller; a colliding identifier silently overwrites.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Store(ctx context.Context, id string, data []byte) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	// Write-then-rename keeps the single-object write atomic.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write asset: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize asset: %w", err)
	}
	return nil
}

func (s *DiskStore) Resolve(ctx context.Context, id string) ([]byte, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, outbound.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}
	return data, nil
}

func (s *DiskStore) path(id string) (string, error) {
	if id == "" || filepath.Base(id) != id {
		return "", fmt.Errorf("invalid asset identifier: %q", id)
	}
	return filepath.Join(s.dir, id), nil
}
