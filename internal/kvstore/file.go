package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File stores each key as a file under dir. Writes go through a temp file
// and rename so a crash mid-write never leaves a truncated value behind.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	// Keys are fixed, namespaced identifiers; path separators are the only
	// characters that must not leak into the filename.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")

	return filepath.Join(f.dir, safe)
}

func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return data, true, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	target := f.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to commit key %s: %w", key, err)
	}

	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}

func (f *File) Close() error {
	return nil
}
