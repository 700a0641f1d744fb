package persistence

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the snapshot in a single JSON file. This is the default
// backend: no external services required.
type FileStore struct {
	Path string
}

// NewFileStore returns a store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load(ctx context.Context) ([]byte, error) {
	doc, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Save writes to a temp file in the same directory and renames it over the
// snapshot, so a crash mid-write never leaves a truncated document behind.
func (f *FileStore) Save(ctx context.Context, doc []byte) error {
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}
