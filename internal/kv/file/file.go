// Package file implements kv.Store as one JSON file per key.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/calahan-dev/dailyctl/internal/kv"
)

// Store implements kv.Store using flat files under a state directory.
type Store struct {
	baseDir string // e.g. ~/.dailyctl/state/
}

// New creates a new file-backed key-value store under dataDir.
func New(dataDir string) (*Store, error) {
	stateDir := filepath.Join(dataDir, "state")
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating state directory: %v", kv.ErrUnavailable, err)
	}
	return &Store{baseDir: stateDir}, nil
}

// Close is a no-op for the file backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) keyPath(key string) string {
	return filepath.Join(s.baseDir, key+".json")
}

// Get returns the value stored under key.
func (s *Store) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: reading key %q: %v", kv.ErrStorage, key, err)
	}
	return data, true, nil
}

// Set writes every key in kvs. Each key is written atomically; multi-key
// writes are best-effort ordered, not transactional.
func (s *Store) Set(kvs map[string][]byte) error {
	for key, value := range kvs {
		if err := s.atomicWrite(s.keyPath(key), value); err != nil {
			return err
		}
	}
	return nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", kv.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", kv.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", kv.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", kv.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", kv.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", kv.ErrStorage, err)
	}

	return nil
}
