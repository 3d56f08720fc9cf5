// Package watch turns filesystem notifications into debounced registry
// updates and stylesheet rewrites.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yacobolo/dxstyles/internal/scan"
)

// Defaults for the debounce loop.
const (
	DefaultQuietWindow  = 100 * time.Millisecond
	DefaultTickInterval = 50 * time.Millisecond
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options configures a Watcher.
type Options struct {
	QuietWindow  time.Duration
	TickInterval time.Duration
	Clock        Clock
	Logger       *slog.Logger
}

// Watcher owns the fsnotify watcher, the coalescer and the processor. All
// state is touched from the goroutine running Run.
type Watcher struct {
	fs      *fsnotify.Watcher
	filter  *scan.Filter
	proc    *Processor
	coal    *Coalescer
	clock   Clock
	tick    time.Duration
	logger  *slog.Logger
	watched map[string]bool
}

// New creates a watcher over the directories selected by filter.
func New(filter *scan.Filter, proc *Processor, opts Options) (*Watcher, error) {
	if opts.QuietWindow <= 0 {
		opts.QuietWindow = DefaultQuietWindow
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:      fw,
		filter:  filter,
		proc:    proc,
		coal:    NewCoalescer(opts.QuietWindow),
		clock:   opts.Clock,
		tick:    opts.TickInterval,
		logger:  opts.Logger,
		watched: make(map[string]bool),
	}

	dirs, err := scan.Dirs(filter)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to list directories: %w", err)
	}
	for _, dir := range dirs {
		if err := w.add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return w, nil
}

func (w *Watcher) add(dir string) error {
	if w.watched[dir] {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return err
	}
	w.watched[dir] = true
	w.logger.Debug("watching directory", "dir", dir)
	return nil
}

// Run drains notifications until ctx is cancelled. It closes the
// underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fs.Close() }()

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// handle classifies one notification and queues the affected paths.
func (w *Watcher) handle(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	now := w.clock.Now()

	switch {
	case event.Has(fsnotify.Create) && w.filter.Recursive():
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.addTree(path, now)
			return
		}

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		if w.watched[path] {
			w.dropTree(path, now)
			return
		}
	}

	if !w.filter.Tracked(path) {
		return
	}

	switch {
	case event.Has(fsnotify.Remove):
		w.coal.Push(path, Remove, now)
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write), event.Has(fsnotify.Rename):
		w.coal.Push(path, Change, now)
	default:
		// Chmod only
	}
}

// addTree starts watching a new directory and queues the files that were
// created in it before the watch was in place.
func (w *Watcher) addTree(dir string, now time.Time) {
	if w.filter.SkipDir(dir) {
		return
	}
	dirs, err := scan.DirsUnder(w.filter, dir)
	if err != nil {
		w.logger.Warn("failed to list new directory", "dir", dir, "error", err)
		return
	}
	for _, d := range dirs {
		if err := w.add(d); err != nil {
			w.logger.Warn("failed to watch directory", "dir", d, "error", err)
		}
	}
	files, _, err := scan.DiscoverUnder(w.filter, dir)
	if err != nil {
		w.logger.Warn("failed to scan new directory", "dir", dir, "error", err)
		return
	}
	for _, f := range files {
		w.coal.Push(f, Change, now)
	}
}

// dropTree forgets a removed directory and queues removals for every file
// tracked beneath it.
func (w *Watcher) dropTree(dir string, now time.Time) {
	prefix := dir + string(filepath.Separator)
	for d := range w.watched {
		if d == dir || strings.HasPrefix(d, prefix) {
			delete(w.watched, d)
		}
	}
	for _, f := range w.proc.Registry().Files() {
		if strings.HasPrefix(f, prefix) {
			w.coal.Push(f, Remove, now)
		}
	}
}

// drain processes every entry that has been quiet long enough.
func (w *Watcher) drain(ctx context.Context) {
	for _, ev := range w.coal.Ready(w.clock.Now()) {
		w.proc.Apply(ctx, ev)
		w.coal.MarkProcessed(ev.Path, w.clock.Now())
	}
}
