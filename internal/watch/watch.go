// Package watch triggers re-imports when a bundle directory changes.
//
// Exporters write bundle elements one file at a time, so a single export
// produces a burst of filesystem events. The watcher coalesces the burst:
// it fires once after the directory has been quiet for the settle delay.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/quarry3d/report/internal/logger"
)

// Watcher watches one bundle directory for exported file changes.
type Watcher struct {
	fsn    *fsnotify.Watcher
	settle time.Duration
	done   chan struct{}
}

// New builds a watcher over the given directory and its subdirectories;
// block sub-bundles land in nested directories, so those are watched too.
// The settle delay is the quiet period required before a change burst is
// reported.
func New(dir string, settle time.Duration) (*Watcher, error) {
	fsn, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addRecursive(fsn, dir); err != nil {
		fsn.Close()
		return nil, err
	}
	return &Watcher{
		fsn:    fsn,
		settle: settle,
		done:   make(chan struct{}),
	}, nil
}

// addRecursive watches dir and every directory below it.
func addRecursive(fsn *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsn.Add(path)
		}
		return nil
	})
}

// Run blocks, invoking onSettle once per settled change burst, until Close
// is called.
func (w *Watcher) Run(onSettle func()) {
	timer := time.NewTimer(w.settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := false
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsn.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) {
				// A new block directory must be watched from now on.
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.fsn.Add(ev.Name); err != nil {
						logger.Warn("failed to watch new directory",
							zap.String("dir", ev.Name), zap.Error(err))
					}
					continue
				}
			}
			if !relevant(ev) {
				continue
			}
			logger.Debug("bundle change",
				zap.String("file", filepath.Base(ev.Name)),
				zap.Stringer("op", ev.Op))
			pending = true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.settle)

		case err, ok := <-w.fsn.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			if pending {
				pending = false
				onSettle()
			}
		}
	}
}

// Close stops the watcher and unblocks Run.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsn.Close()
}

// relevant filters events down to exported bundle files.
func relevant(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".fbx" {
		return false
	}
	return ev.Op.Has(fsnotify.Create) ||
		ev.Op.Has(fsnotify.Write) ||
		ev.Op.Has(fsnotify.Rename) ||
		ev.Op.Has(fsnotify.Remove)
}
