package content

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultPollInterval = 30 * time.Second

// Watcher watches a dictionary file and rebuilds the catalog when it changes
type Watcher struct {
	log           *zap.Logger
	filePath      string
	base          *Catalog
	lastModTime   time.Time
	checkMu       sync.Mutex
	watcher       *fsnotify.Watcher
	pollInterval  time.Duration
	pollingTicker *time.Ticker
	stopCh        chan struct{}
	stopOnce      sync.Once
	callbacks     map[string]func(*Catalog)
	mu            sync.RWMutex
	catalog       *Catalog
	isLoaded      atomic.Bool
}

// NewWatcher creates a watcher layering filePath over base
func NewWatcher(log *zap.Logger, base *Catalog, filePath string) (*Watcher, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat dictionary file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	return &Watcher{
		log:          log,
		filePath:     absPath,
		base:         base,
		lastModTime:  fileInfo.ModTime(),
		watcher:      watcher,
		pollInterval: defaultPollInterval,
		stopCh:       make(chan struct{}),
		callbacks:    make(map[string]func(*Catalog)),
	}, nil
}

// Start loads the file and begins watching it for changes
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.load(); err != nil {
		return fmt.Errorf("load initial dictionary: %w", err)
	}

	// Watch the directory so editors that replace the file are still seen
	if err := w.watcher.Add(filepath.Dir(w.filePath)); err != nil {
		w.log.Warn("Could not watch dictionary file, falling back to polling only",
			zap.String("file", w.filePath),
			zap.Error(err),
		)
	}

	w.pollingTicker = time.NewTicker(w.pollInterval)

	go w.watchLoop(ctx)
	w.log.Debug("Dictionary watcher started.", zap.String("file", w.filePath))

	w.notifyCallbacks()
	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.pollingTicker != nil {
			w.pollingTicker.Stop()
		}
		_ = w.watcher.Close()
	})
}

// AddCallback registers a function called with every rebuilt catalog
func (w *Watcher) AddCallback(name string, callback func(*Catalog)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.callbacks[name] = callback

	if w.isLoaded.Load() {
		callback(w.catalog)
	}
}

// Catalog returns the most recently loaded catalog, nil before Start
func (w *Watcher) Catalog() *Catalog {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.catalog
}

func (w *Watcher) load() error {
	catalog, err := LoadFile(w.base, w.filePath)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.catalog = catalog
	w.isLoaded.Store(true)
	w.mu.Unlock()

	return nil
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-w.pollingTicker.C:
			w.checkFileModification()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.filePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.checkFileModification()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("Dictionary watcher error", zap.Error(err))
		}
	}
}

// checkFileModification reloads only when the modification time moved forward.
// A file that fails to parse keeps the previous catalog.
func (w *Watcher) checkFileModification() {
	w.checkMu.Lock()
	defer w.checkMu.Unlock()

	fileInfo, err := os.Stat(w.filePath)
	if err != nil {
		w.log.Error("Failed to stat dictionary file",
			zap.String("file", w.filePath),
			zap.Error(err),
		)
		return
	}

	if !fileInfo.ModTime().After(w.lastModTime) {
		return
	}
	w.lastModTime = fileInfo.ModTime()
	w.log.Info("Dictionary file changed, reloading", zap.String("file", w.filePath))

	if err := w.load(); err != nil {
		w.log.Error("Failed to reload dictionary, keeping previous catalog", zap.Error(err))
		return
	}

	w.notifyCallbacks()
}

func (w *Watcher) notifyCallbacks() {
	w.mu.RLock()
	catalog := w.catalog
	callbacks := make(map[string]func(*Catalog))
	maps.Copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for name, callback := range callbacks {
		w.log.Debug("Notifying dictionary change callback", zap.String("callback", name))
		callback(catalog)
	}
}
