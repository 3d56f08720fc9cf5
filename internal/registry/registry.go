// Package registry tracks which class names each source file references and
// keeps the global reference counts and active set in lockstep.
//
// A Registry is owned by a single goroutine; it does no locking.
package registry

import (
	"sort"

	"github.com/yacobolo/dxstyles/internal/classname"
)

// Delta reports how an update changed the per-file and global sets.
// The counts are for reporting only.
type Delta struct {
	AddedInFile     int
	RemovedInFile   int
	AddedGlobally   int
	RemovedGlobally int
}

// GlobalChanged reports whether the active set changed, i.e. whether the
// stylesheet needs to be regenerated.
func (d Delta) GlobalChanged() bool {
	return d.AddedGlobally > 0 || d.RemovedGlobally > 0
}

// Empty reports whether all four counts are zero.
func (d Delta) Empty() bool {
	return d.AddedInFile == 0 && d.RemovedInFile == 0 && !d.GlobalChanged()
}

// Registry holds per-file snapshots, global reference counts and the active set.
type Registry struct {
	files  map[string]classname.Set
	counts map[string]int
	active classname.Set
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		files:  make(map[string]classname.Set),
		counts: make(map[string]int),
		active: make(classname.Set),
	}
}

// Update replaces the snapshot for path with names and adjusts the global
// counts by the difference.
func (r *Registry) Update(path string, names classname.Set) Delta {
	old := r.files[path]
	added := names.Minus(old)
	removed := old.Minus(names)

	d := Delta{AddedInFile: len(added), RemovedInFile: len(removed)}
	d.RemovedGlobally = r.release(removed)

	for _, n := range added {
		if r.counts[n] == 0 {
			r.active.Add(n)
			d.AddedGlobally++
		}
		r.counts[n]++
	}

	r.files[path] = names.Clone()
	return d
}

// Remove drops the snapshot for path entirely. It returns false when the path
// was not tracked, in which case nothing changes.
func (r *Registry) Remove(path string) (Delta, bool) {
	old, ok := r.files[path]
	if !ok {
		return Delta{}, false
	}
	d := Delta{RemovedInFile: len(old)}
	d.RemovedGlobally = r.release(old.Sorted())
	delete(r.files, path)
	return d, true
}

// release decrements each name and returns how many left the active set.
func (r *Registry) release(names []string) int {
	gone := 0
	for _, n := range names {
		c, ok := r.counts[n]
		if !ok {
			continue
		}
		if c <= 1 {
			delete(r.counts, n)
			delete(r.active, n)
			gone++
			continue
		}
		r.counts[n] = c - 1
	}
	return gone
}

// Active returns the active set in sorted order.
func (r *Registry) Active() []string {
	return r.active.Sorted()
}

// Count returns the number of files referencing name.
func (r *Registry) Count(name string) int {
	return r.counts[name]
}

// Tracked reports whether path has a snapshot (possibly empty).
func (r *Registry) Tracked(path string) bool {
	_, ok := r.files[path]
	return ok
}

// Files returns the tracked paths in sorted order.
func (r *Registry) Files() []string {
	out := make([]string, 0, len(r.files))
	for p := range r.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of active class names.
func (r *Registry) Len() int {
	return len(r.active)
}
