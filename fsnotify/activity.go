// Package fsnotify reports workspace edit activity using package github.com/fsnotify/fsnotify
package fsnotify

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const activityOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

type activityWatcher struct {
	w      *fsnotify.Watcher
	root   string
	ignore []string
	l      *log.Logger
}

// NewActivityWatcher watches every directory under root. Events on paths that
// start with one of the ignore prefixes are not reported.
func NewActivityWatcher(root string, ignore []string, logger *log.Logger) (*activityWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	a := &activityWatcher{
		w:    w,
		root: filepath.Clean(root),
		l:    logger,
	}
	for _, p := range ignore {
		if p != "" {
			a.ignore = append(a.ignore, filepath.Clean(p))
		}
	}
	if err := a.addTree(a.root); err != nil {
		_ = w.Close()
		return nil, err
	}
	return a, nil
}

// Run reports activity until ctx is done or the watcher is closed.
func (a *activityWatcher) Run(ctx context.Context, onActivity func(path string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-a.w.Events:
			if !ok {
				return
			}
			a.handle(ev, onActivity)
		case err, ok := <-a.w.Errors:
			if !ok {
				return
			}
			a.l.Warn("watcher error", "err", err)
		}
	}
}

func (a *activityWatcher) Close() error {
	return a.w.Close()
}

func (a *activityWatcher) handle(ev fsnotify.Event, onActivity func(string)) {
	if a.ignored(ev.Name) || ev.Op&activityOps == 0 {
		return
	}
	if ev.Has(fsnotify.Create) {
		// new directories need their own watch
		if err := a.addTree(ev.Name); err != nil {
			a.l.Debug("failed to watch new path", "path", ev.Name, "err", err)
		}
	}
	a.l.Debug("workspace activity", "path", ev.Name, "op", ev.Op.String())
	onActivity(ev.Name)
}

func (a *activityWatcher) ignored(path string) bool {
	path = filepath.Clean(path)
	for _, p := range a.ignore {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (a *activityWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != a.root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := a.w.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func skipDir(name string) bool {
	return skippedDirs[name] || strings.HasPrefix(name, ".")
}
