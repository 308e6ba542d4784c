package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrNotFound is returned by a Medium when no value exists under a key.
	ErrNotFound = errors.New("key not found")
)

// Medium is the raw persistence layer beneath the store: named byte blobs,
// rewritten wholesale on every write.
type Medium interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// MemoryMedium is an in-process Medium guarded by RWMutex. It backs tests and
// ephemeral sessions.
type MemoryMedium struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryMedium constructs a MemoryMedium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{
		values: make(map[string][]byte),
	}
}

// Read returns a copy of the value stored under key.
func (m *MemoryMedium) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Write stores a copy of data under key.
func (m *MemoryMedium) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.values[key] = stored
	return nil
}

// FileMedium persists each key as one JSON file inside a directory.
type FileMedium struct {
	dir string
}

// NewFileMedium creates the directory if needed and returns a FileMedium.
func NewFileMedium(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileMedium{dir: dir}, nil
}

// Read loads the file for key.
func (f *FileMedium) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the file for key. The write goes through a temporary file
// followed by a rename so a crash mid-write cannot corrupt the previous value.
func (f *FileMedium) Write(key string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (f *FileMedium) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
