package quota

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounceInterval = 300 * time.Millisecond

// Store serves the current rule set and swaps it when the rules file changes.
type Store struct {
	path    string
	current atomic.Pointer[RuleSet]
}

// NewStore loads path once. Reloads only happen while Watch runs.
func NewStore(path string) (*Store, error) {
	rs, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path}
	s.current.Store(rs)
	return s, nil
}

// StaticStore wraps a fixed rule set.
func StaticStore(rs *RuleSet) *Store {
	s := &Store{}
	s.current.Store(rs)
	return s
}

// Rules returns the current snapshot.
func (s *Store) Rules() *RuleSet {
	if s == nil {
		return nil
	}
	return s.current.Load()
}

func (s *Store) reload() {
	rs, err := LoadRules(s.path)
	if err != nil {
		slog.Error("failed to reload quota rules, keeping previous set", "path", s.path, "error", err)
		return
	}
	s.current.Store(rs)
	slog.Info("quota rules reloaded", "path", s.path, "rules", rs.Len())
}

// Watch reloads the rules whenever the file is written, created or renamed
// into place, until ctx is done. The parent directory is watched so atomic
// replaces are seen.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	name := filepath.Base(s.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	slog.Info("watching quota rules", "path", s.path)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounceInterval, s.reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("quota rules watcher error", "error", err)
		}
	}
}
