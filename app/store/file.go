package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

var keyPattern = regexp.MustCompile(`^[\w.-]+$`)

// File keeps one JSON document per key in dataDir.
type File struct {
	log     *zap.Logger
	dataDir string
	mu      sync.RWMutex
}

func NewFile(log *zap.Logger, dataDir string) (*File, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("file store requires a data directory")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &File{
		log:     log,
		dataDir: dataDir,
	}, nil
}

func (f *File) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(f.dataDir, key+".json"), nil
}

func (f *File) Get(key string) ([]byte, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, false, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(path) // #nosec G304 -- key is validated against keyPattern
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return data, true, nil
}

func (f *File) Set(key string, value []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(path, value, 0644); err != nil { // #nosec G306
		f.log.Error("Failed to write store file", zap.Error(err), zap.String("path", path))
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (f *File) Close() error {
	return nil
}
