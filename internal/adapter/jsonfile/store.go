// Package jsonfile provides the flat-file persistence backend. Each
// collection lives in its own JSON file under the store directory and is
// rewritten whole on every mutation, with an atomic temp-file rename.
// It exists for small single-user installations; the SQLite backend is
// the default.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store is the shared root for the per-entity repositories. A single
// RWMutex serializes access to all collection files: the whole-file
// rewrite model cannot tolerate interleaved writers.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// Open prepares the store directory, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// readAll loads every record of a collection. A missing file is an empty
// collection, not an error. Callers must hold s.mu (read or write).
func readAll[T any](s *Store, collection string) ([]T, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}

	if len(data) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}

	return records, nil
}

// writeAll rewrites a collection file atomically: marshal, write to a
// temp file in the same directory, fsync, rename over the original.
// Callers must hold s.mu for writing.
func writeAll[T any](s *Store, collection string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}

	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", collection, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp for %s: %w", collection, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp for %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp for %s: %w", collection, err)
	}

	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", collection, err)
	}

	return nil
}
