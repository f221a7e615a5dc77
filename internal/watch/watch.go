// Package watch re-runs a callback when Go source under a directory tree
// changes. It backs the --watch flag of the check command.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// settle is how long a file must stay quiet before it counts as
	// changed. Editors often emit several events per save.
	settle = 300 * time.Millisecond

	tickEvery = 100 * time.Millisecond
)

// Watch monitors the tree under root and calls onChange with the settled
// set of changed Go files. It runs on the caller's goroutine until ctx is
// cancelled. Bursts of events within the settle window fold into a single
// onChange call.
func Watch(ctx context.Context, root string, onChange func(changed []string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := addTree(fsw, root); err != nil {
		return err
	}

	w := &watcher{
		fsw:      fsw,
		onChange: onChange,
		pending:  make(map[string]time.Time),
	}
	return w.run(ctx)
}

type watcher struct {
	fsw      *fsnotify.Watcher
	onChange func([]string)
	pending  map[string]time.Time
}

func (w *watcher) run(ctx context.Context) error {
	tick := time.NewTicker(tickEvery)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case <-tick.C:
			w.flush()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		}
	}
}

func (w *watcher) handle(event fsnotify.Event) {
	// New directories need their own watch before events under them arrive.
	if event.Has(fsnotify.Create) && isDir(event.Name) {
		if !skipDir(filepath.Base(event.Name)) {
			_ = addTree(w.fsw, event.Name)
		}
		return
	}
	if !strings.HasSuffix(event.Name, ".go") || !relevant(event) {
		return
	}
	w.pending[event.Name] = time.Now()
}

// flush reports the files whose last event has settled.
func (w *watcher) flush() {
	now := time.Now()
	var changed []string
	for path, at := range w.pending {
		if now.Sub(at) < settle {
			continue
		}
		changed = append(changed, path)
		delete(w.pending, path)
	}
	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)
	w.onChange(changed)
}

// relevant reports whether the event can change an analysis result.
// Chmod and friends are ignored.
func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// addTree watches root and every directory below it, skipping the same
// directories the analyzer skips.
func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return fs.SkipDir
		}
		return fsw.Add(path)
	})
}

func skipDir(name string) bool {
	if name == "vendor" || name == "testdata" {
		return true
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
