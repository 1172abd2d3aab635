package skills

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillroute/pkg/logger"
)

// Store holds the current registry snapshot. The snapshot is immutable;
// Refresh replaces it wholesale, it is never mutated in place. Readers
// always see a complete registry, before or after a refresh, never a
// partial one.
type Store struct {
	dirs     []string
	loadOpts []LoadOption
	current  atomic.Pointer[Registry]
	debounce time.Duration
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithStoreLoadOptions sets the options used by every (re)load.
func WithStoreLoadOptions(opts ...LoadOption) StoreOption {
	return func(s *Store) {
		s.loadOpts = opts
	}
}

// WithDebounce sets how long Watch waits after the last filesystem event
// before reloading. Defaults to 500ms.
func WithDebounce(d time.Duration) StoreOption {
	return func(s *Store) {
		s.debounce = d
	}
}

// NewStore creates a store for the given skill directories and performs
// the initial load.
func NewStore(dirs []string, opts ...StoreOption) (*Store, error) {
	s := &Store{
		dirs:     dirs,
		debounce: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Refresh(); err != nil {
		return nil, err
	}

	return s, nil
}

// Snapshot returns the current registry. Never nil after NewStore
// succeeds.
func (s *Store) Snapshot() *Registry {
	return s.current.Load()
}

// Refresh reloads the registry from disk and swaps the snapshot in one
// step. On error the previous snapshot stays in place.
func (s *Store) Refresh() error {
	registry, err := Load(s.dirs, s.loadOpts...)
	if err != nil {
		return errors.Wrap(err, "failed to reload skill registry")
	}

	s.current.Store(registry)
	return nil
}

// Watch reloads the registry whenever the skill directories change,
// until the context is cancelled. Events are debounced so a burst of
// writes triggers a single reload. Reload failures keep the previous
// snapshot and are logged.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range s.dirs {
		if err := watcher.Add(dir); err != nil {
			logger.G(ctx).WithError(err).WithField("dir", dir).Debug("skipping unwatchable skill directory")
			continue
		}
		watched++

		// inotify is not recursive and the documents live one level
		// down, so each skill subdirectory gets its own watch.
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			subDir := filepath.Join(dir, entry.Name())
			if info, err := os.Stat(subDir); err != nil || !info.IsDir() {
				continue
			}
			if err := watcher.Add(subDir); err != nil {
				logger.G(ctx).WithError(err).WithField("dir", subDir).Debug("skipping unwatchable skill directory")
			}
		}
	}
	if watched == 0 {
		return errors.New("no skill directory could be watched")
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// A new skill directory needs its own watch for later edits.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.G(ctx).WithError(err).WithField("dir", event.Name).Debug("skipping unwatchable skill directory")
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
				timerC = timer.C
			} else {
				timer.Reset(s.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.G(ctx).WithError(err).Warn("skill watcher error")
		case <-timerC:
			if err := s.Refresh(); err != nil {
				logger.G(ctx).WithError(err).Warn("skill registry refresh failed, keeping previous snapshot")
				continue
			}
			logger.G(ctx).WithField("skills", s.Snapshot().Len()).Info("skill registry refreshed")
		}
	}
}
