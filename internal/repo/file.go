package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkordes/eventboard/internal/domain"
)

// FileKV stores each key as a JSON file inside a data directory.
// Writes go to a temporary file that is renamed over the target, so a crash
// mid-write never leaves a truncated collection behind.
type FileKV struct {
	dir string
}

// NewFileKV returns a FileKV rooted at dir, creating it if necessary.
// A leading "~/" is expanded to the user's home directory.
func NewFileKV(dir string) (*FileKV, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("repo.NewFileKV: home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("repo.NewFileKV: create data directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// Dir returns the data directory.
func (f *FileKV) Dir() string { return f.dir }

func (f *FileKV) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// Get reads the file for key.
func (f *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := f.path(key)
	if err != nil {
		return nil, fmt.Errorf("repo.FileKV.Get: %w", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("repo.FileKV.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.FileKV.Get: %w", err)
	}
	return data, nil
}

// Put atomically replaces the file for key.
func (f *FileKV) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := f.path(key)
	if err != nil {
		return fmt.Errorf("repo.FileKV.Put: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("repo.FileKV.Put: create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.FileKV.Put: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repo.FileKV.Put: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("repo.FileKV.Put: rename: %w", err)
	}
	return nil
}
