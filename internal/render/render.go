// Package render turns the active classname set into stylesheet text.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yacobolo/dxstyles/internal/fsutil"
)

// Resolver maps a classname to its declaration.
type Resolver interface {
	Resolve(name string) (string, bool)
}

// Output is one rendered stylesheet.
type Output struct {
	CSS        string
	Rules      int
	Unresolved []string
}

// Render emits one rule per resolvable name in lexicographic order.
// Unresolved names are skipped and reported back.
func Render(names []string, r Resolver) Output {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	var out Output
	var b strings.Builder
	for i, name := range sorted {
		if i > 0 && name == sorted[i-1] {
			continue
		}
		css, ok := r.Resolve(name)
		if !ok {
			out.Unresolved = append(out.Unresolved, name)
			continue
		}
		b.WriteString(".")
		b.WriteString(EscapeSelector(name))
		b.WriteString(" {\n    ")
		b.WriteString(css)
		b.WriteString("\n}\n")
		out.Rules++
	}
	out.CSS = b.String()
	return out
}

// Stylesheet writes rendered output to a fixed path.
type Stylesheet struct {
	Path     string
	Resolver Resolver
}

// Write renders names and atomically replaces the stylesheet.
func (s *Stylesheet) Write(names []string) (Output, error) {
	out := Render(names, s.Resolver)
	if err := fsutil.WriteFileAtomic(s.Path, []byte(out.CSS), 0o644); err != nil {
		return out, fmt.Errorf("write stylesheet: %w", err)
	}
	return out, nil
}
