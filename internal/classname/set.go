// Package classname holds the set type shared by the extractor, the registry
// and the stylesheet generator.
package classname

import "sort"

// Set is an unordered set of class names.
type Set map[string]struct{}

// NewSet builds a set from the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts name into the set.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Clone returns an independent copy. A nil set clones to an empty set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Minus returns the names in s that are not in other.
func (s Set) Minus(other Set) []string {
	var out []string
	for n := range s {
		if !other.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Sorted returns the names in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
