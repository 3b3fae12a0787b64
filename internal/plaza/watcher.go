package plaza

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadCallback is called after a watcher-driven reload succeeds.
type ReloadCallback func()

// Watch starts an fsnotify watcher on the data root and reloads the plaza
// snapshot whenever a .json file changes, until ctx is cancelled. Events
// are debounced so that an editor writing several files (or the index plus
// its business files) triggers a single reload. cb (if non-nil) runs after
// each successful reload.
func Watch(ctx context.Context, svc *Service, dataRoot string, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, dataRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", dataRoot))

	const debounce = 300 * time.Millisecond
	var timer *time.Timer
	var timerCh <-chan time.Time

	scheduleReload := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			if err := svc.Load(); err != nil {
				logger.Warn("watcher: reload failed", slog.String("error", err.Error()))
				continue
			}
			logger.Debug("watcher: reloaded plaza data")
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// New directories (e.g. businesses/ appearing later) join the
			// watch list; their contents count as a change too.
			if ev.Op&fsnotify.Create != 0 {
				if err := addDirsRecursive(w, ev.Name); err == nil {
					logger.Debug("watcher: watching new path", slog.String("path", ev.Name))
				}
			}
			if !strings.HasSuffix(ev.Name, ".json") && !isDirEvent(ev) {
				continue
			}
			scheduleReload()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// isDirEvent guesses whether an event refers to a directory. Remove and
// rename events cannot be stat'ed, so anything without an extension is
// treated as a possible directory change.
func isDirEvent(ev fsnotify.Event) bool {
	return filepath.Ext(ev.Name) == ""
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
// A non-directory root is ignored.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
