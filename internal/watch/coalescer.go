package watch

import (
	"sort"
	"time"
)

// Kind classifies a filesystem notification.
type Kind int

const (
	// Change covers create, write and rename.
	Change Kind = iota
	// Remove means the path is gone.
	Remove
)

func (k Kind) String() string {
	switch k {
	case Change:
		return "change"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event is a debounced unit of work for one path.
type Event struct {
	Path string
	Kind Kind
}

type pendingEntry struct {
	kind     Kind
	lastSeen time.Time
}

// Coalescer debounces notifications per path. A path is held until it has
// been quiet for the window and was not processed within the window. It is
// not safe for concurrent use; the watch loop owns it.
type Coalescer struct {
	quiet         time.Duration
	pending       map[string]pendingEntry
	lastProcessed map[string]time.Time
}

// NewCoalescer creates a coalescer with the given quiet window.
func NewCoalescer(quiet time.Duration) *Coalescer {
	return &Coalescer{
		quiet:         quiet,
		pending:       make(map[string]pendingEntry),
		lastProcessed: make(map[string]time.Time),
	}
}

// Push records a notification. Repeated notifications for a queued path
// refresh its timestamp; the latest kind wins.
func (c *Coalescer) Push(path string, kind Kind, now time.Time) {
	c.pending[path] = pendingEntry{kind: kind, lastSeen: now}
}

// Ready removes and returns the entries that may be processed at now, in
// path order. Each path appears at most once.
func (c *Coalescer) Ready(now time.Time) []Event {
	var ready []Event
	for path, e := range c.pending {
		if now.Sub(e.lastSeen) < c.quiet {
			continue
		}
		if last, ok := c.lastProcessed[path]; ok && now.Sub(last) < c.quiet {
			continue
		}
		ready = append(ready, Event{Path: path, Kind: e.kind})
	}
	for _, ev := range ready {
		delete(c.pending, ev.Path)
	}

	// Processing times older than the window no longer hold anything back.
	for path, last := range c.lastProcessed {
		if _, queued := c.pending[path]; !queued && now.Sub(last) >= c.quiet {
			delete(c.lastProcessed, path)
		}
	}

	sort.Slice(ready, func(i, j int) bool { return ready[i].Path < ready[j].Path })
	return ready
}

// MarkProcessed records that path was handled at now.
func (c *Coalescer) MarkProcessed(path string, now time.Time) {
	c.lastProcessed[path] = now
}
