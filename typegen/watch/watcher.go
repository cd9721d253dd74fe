// Package watch regenerates on annotation or config changes.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/rpctypegen/am"
	"github.com/teranos/rpctypegen/errors"
	"github.com/teranos/rpctypegen/typegen/schema"
)

// ChangeFunc is called once per debounced batch with the changed paths,
// sorted. Calls are serialized.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher watches annotation directories and config files, coalescing bursts
// of events into a single callback.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dirs     map[string]bool
	files    map[string]bool
	debounce time.Duration
	log      *zap.SugaredLogger
}

// New creates a watcher with the given debounce period
func New(debounce time.Duration, log *zap.SugaredLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	return &Watcher{
		fsw:      fsw,
		dirs:     map[string]bool{},
		files:    map[string]bool{},
		debounce: debounce,
		log:      log,
	}, nil
}

// AddDir watches annotation files directly inside dir
func (w *Watcher) AddDir(dir string) error {
	dir = filepath.Clean(dir)
	if err := w.fsw.Add(dir); err != nil {
		return errors.NewFilesystemError(err, dir)
	}
	w.dirs[dir] = true
	return nil
}

// AddFile watches a single file. Its parent directory is watched so
// editors that replace the file on save are still seen.
func (w *Watcher) AddFile(path string) error {
	path = filepath.Clean(path)
	parent := filepath.Dir(path)
	if !w.dirs[parent] {
		if err := w.fsw.Add(parent); err != nil {
			return errors.NewFilesystemError(err, parent)
		}
	}
	w.files[path] = true
	return nil
}

// Run delivers changes to onChange until ctx is done. The underlying
// watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	defer w.fsw.Close()

	pending := map[string]bool{}
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("Watcher detected change", "file", event.Name, "op", event.Op.String())
			pending[filepath.Clean(event.Name)] = true
			// Restart the quiet period on every event
			fire = time.After(w.debounce)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			pending = map[string]bool{}
			onChange(ctx, changed)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	if am.IsBackupFile(name) {
		return false
	}
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)] && schema.IsAnnotationFile(name)
}
