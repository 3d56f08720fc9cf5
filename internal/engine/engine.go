// Package engine resolves classnames to CSS declarations from a loaded
// style artifact.
package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yacobolo/dxstyles/internal/artifact"
)

// RegenerateHint is appended to artifact load failures.
const RegenerateHint = "run `dxstyles compile` to regenerate it"

const memoSize = 4096

type resolution struct {
	css string
	ok  bool
}

// Engine answers Resolve queries. It is safe for concurrent use.
type Engine struct {
	art        *artifact.Artifact
	index      map[string]int
	generators []artifact.GeneratorRule
	memo       *lru.Cache[string, resolution]
}

// Load reads the artifact at path and builds an engine over it.
func Load(path string) (*Engine, error) {
	a, err := artifact.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, RegenerateHint)
	}
	return New(a), nil
}

// New builds the name index over an already validated artifact.
func New(a *artifact.Artifact) *Engine {
	e := &Engine{
		art:        a,
		index:      make(map[string]int, a.NumStyles()),
		generators: make([]artifact.GeneratorRule, a.NumGenerators()),
	}
	for i := 0; i < a.NumStyles(); i++ {
		name, _ := a.StyleAt(i)
		e.index[string(name)] = i
	}
	for i := range e.generators {
		e.generators[i] = a.Generator(i)
	}

	memo, err := lru.New[string, resolution](memoSize)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	e.memo = memo
	return e
}

// Resolve returns the declaration for name. Exact records take precedence
// over generator rules; generators are tried in artifact order and the first
// match wins.
func (e *Engine) Resolve(name string) (string, bool) {
	if i, ok := e.index[name]; ok {
		_, css := e.art.StyleAt(i)
		return string(css), true
	}

	if r, ok := e.memo.Get(name); ok {
		return r.css, r.ok
	}
	r := e.generate(name)
	e.memo.Add(name, r)
	return r.css, r.ok
}

func (e *Engine) generate(name string) resolution {
	for _, g := range e.generators {
		rest, found := strings.CutPrefix(name, g.Prefix+"-")
		if !found {
			continue
		}
		v, ok := parseNumber(rest)
		if !ok {
			continue
		}
		product := float64(v * g.Multiplier)
		if math.IsNaN(product) || math.IsInf(product, 0) {
			continue
		}
		value := strconv.FormatFloat(product, 'f', -1, 32)
		return resolution{css: g.Property + ": " + value + g.Unit + ";", ok: true}
	}
	return resolution{}
}

// parseNumber accepts finite decimal literals only ("4", "1.5", ".5", "-2",
// "1e2"); hex floats, digit separators, NaN and Inf are rejected.
func parseNumber(s string) (float32, bool) {
	if s == "" || strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return float32(v), true
}

// NumStyles returns the number of exact-match records.
func (e *Engine) NumStyles() int {
	return e.art.NumStyles()
}

// NumGenerators returns the number of generator rules.
func (e *Engine) NumGenerators() int {
	return len(e.generators)
}
