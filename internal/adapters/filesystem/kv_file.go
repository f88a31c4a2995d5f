// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/fieldkit/internal/ports/secondary"
)

// FileKVStore implements secondary.KeyValueStore as a single JSON object file.
// Every mutation rewrites the whole file atomically.
type FileKVStore struct {
	path string
}

// NewFileKVStore creates a store backed by the JSON file at path.
// The file and its directory are created on first write.
func NewFileKVStore(path string) *FileKVStore {
	return &FileKVStore{path: path}
}

// Path returns the backing file location.
func (s *FileKVStore) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *FileKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (s *FileKVStore) Set(ctx context.Context, key, value string) error {
	values, err := s.loadForWrite()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Remove deletes the given keys. Missing keys are ignored.
func (s *FileKVStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	values, err := s.loadForWrite()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(values, k)
	}
	return s.save(values)
}

// errCorrupt marks a store file that exists but does not hold a JSON object.
var errCorrupt = errors.New("corrupt store")

func (s *FileKVStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w %s: %v", errCorrupt, s.path, err)
	}
	return values, nil
}

// loadForWrite is load for mutations. A corrupt file is moved aside to
// <path>.corrupt and the mutation starts from an empty store.
func (s *FileKVStore) loadForWrite() (map[string]string, error) {
	values, err := s.load()
	if !errors.Is(err, errCorrupt) {
		return values, err
	}
	if err := os.Rename(s.path, s.CorruptPath()); err != nil {
		return nil, fmt.Errorf("failed to move corrupt store aside: %w", err)
	}
	return map[string]string{}, nil
}

// CorruptPath is where an unparsable store file is kept after a write replaces it.
func (s *FileKVStore) CorruptPath() string {
	return s.path + ".corrupt"
}

func (s *FileKVStore) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}
	return atomicWrite(s.path, data, 0644)
}

// atomicWrite writes data to path using temp file + rename.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".fieldkit-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	tmpFile = nil
	return nil
}

// Ensure FileKVStore implements the interface
var _ secondary.KeyValueStore = (*FileKVStore)(nil)
