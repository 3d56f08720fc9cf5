// Package artifact compiles style configuration into the binary lookup
// artifact and opens it again as a validated, read-only view.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrMissing is returned when the artifact file does not exist.
	ErrMissing = errors.New("style artifact not found")
	// ErrCorrupt is returned when the artifact fails validation.
	ErrCorrupt = errors.New("style artifact is corrupt")
	// ErrAmbiguousGenerator is returned when two generators share a prefix.
	ErrAmbiguousGenerator = errors.New("ambiguous generator prefix")
)

// StyleRecord is an exact-match rule.
type StyleRecord struct {
	Name string // "flex"
	CSS  string // "display: flex;"
}

// GeneratorRule derives a declaration from a numeric classname suffix.
type GeneratorRule struct {
	Prefix     string  // "mt"
	Property   string  // "margin-top"
	Multiplier float32 // 0.25
	Unit       string  // "rem"
}

// Artifact is an immutable view over a validated artifact buffer. It is safe
// for concurrent use.
type Artifact struct {
	buf        []byte
	root       *configTable
	styles     int
	generators int
}

// Open validates buf and returns a view over it. The buffer must not be
// modified afterwards.
func Open(buf []byte) (*Artifact, error) {
	if err := verify(buf); err != nil {
		return nil, err
	}
	root := rootConfig(buf)
	return &Artifact{
		buf:        buf,
		root:       root,
		styles:     root.stylesLength(),
		generators: root.generatorsLength(),
	}, nil
}

// Load reads and validates the artifact at path.
func Load(path string) (*Artifact, error) {
	// #nosec G304 - path comes from trusted configuration
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	a, err := Open(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// NumStyles returns the number of exact-match records.
func (a *Artifact) NumStyles() int {
	return a.styles
}

// StyleAt returns the name and body of record i without copying.
// The returned slices alias the artifact buffer and must not be modified.
func (a *Artifact) StyleAt(i int) (name, css []byte) {
	var st styleTable
	if i < 0 || i >= a.styles || !a.root.style(&st, i) {
		return nil, nil
	}
	return st.name(), st.css()
}

// Style returns a copy of record i.
func (a *Artifact) Style(i int) StyleRecord {
	name, css := a.StyleAt(i)
	return StyleRecord{Name: string(name), CSS: string(css)}
}

// NumGenerators returns the number of generator rules.
func (a *Artifact) NumGenerators() int {
	return a.generators
}

// Generator returns generator rule i in artifact order.
func (a *Artifact) Generator(i int) GeneratorRule {
	var gt generatorTable
	if i < 0 || i >= a.generators || !a.root.generator(&gt, i) {
		return GeneratorRule{}
	}
	return GeneratorRule{
		Prefix:     string(gt.prefix()),
		Property:   string(gt.property()),
		Multiplier: gt.multiplier(),
		Unit:       string(gt.unit()),
	}
}
