package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/dxstyles/internal/classname"
	"github.com/yacobolo/dxstyles/internal/extract"
	"github.com/yacobolo/dxstyles/internal/registry"
	"github.com/yacobolo/dxstyles/internal/render"
	"github.com/yacobolo/dxstyles/internal/report"
)

// ExtractFunc returns the classnames of one file. On failure it returns an
// empty set and an error.
type ExtractFunc func(ctx context.Context, path string) (classname.Set, error)

// Processor applies file events to the registry and rewrites the stylesheet
// when the active set changes. Like the registry it is owned by a single
// goroutine.
type Processor struct {
	registry *registry.Registry
	sheet    *render.Stylesheet
	reporter *report.Reporter
	logger   *slog.Logger
	extract  ExtractFunc
	writes   int
}

// ProcessorOptions configures a Processor.
type ProcessorOptions struct {
	Stylesheet *render.Stylesheet
	Reporter   *report.Reporter // optional
	Logger     *slog.Logger     // optional
	Extract    ExtractFunc      // defaults to extract.ExtractFile
}

// NewProcessor creates a processor with an empty registry.
func NewProcessor(opts ProcessorOptions) *Processor {
	p := &Processor{
		registry: registry.New(),
		sheet:    opts.Stylesheet,
		reporter: opts.Reporter,
		logger:   opts.Logger,
		extract:  opts.Extract,
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.extract == nil {
		p.extract = extract.ExtractFile
	}
	return p
}

// Registry exposes the registry for queries.
func (p *Processor) Registry() *registry.Registry {
	return p.registry
}

// Writes returns how many times the stylesheet has been written.
func (p *Processor) Writes() int {
	return p.writes
}

// Apply processes one debounced event.
func (p *Processor) Apply(ctx context.Context, ev Event) registry.Delta {
	start := time.Now()

	var delta registry.Delta
	switch ev.Kind {
	case Remove:
		delta = p.remove(ev.Path)
	default:
		names, err := p.extract(ctx, ev.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			delta = p.remove(ev.Path)
		case err != nil:
			p.logger.Debug("file contributes no classes", "path", ev.Path, "error", err)
			delta = p.registry.Update(ev.Path, classname.NewSet())
		default:
			delta = p.registry.Update(ev.Path, names)
		}
	}

	if delta.Empty() {
		p.logger.Debug("event changed nothing", "path", ev.Path, "kind", ev.Kind.String())
		return delta
	}

	if delta.GlobalChanged() {
		if _, err := p.Regenerate(); err != nil {
			p.logger.Error("failed to write stylesheet", "path", p.sheet.Path, "error", err)
		}
	}

	if p.reporter != nil {
		p.reporter.PrintChange(report.Change{
			Source:        ev.Path,
			AddedInFile:   delta.AddedInFile,
			RemovedInFile: delta.RemovedInFile,
			Output:        p.sheet.Path,
			AddedGlobal:   delta.AddedGlobally,
			RemovedGlobal: delta.RemovedGlobally,
			Elapsed:       time.Since(start),
		})
	}
	return delta
}

func (p *Processor) remove(path string) registry.Delta {
	delta, tracked := p.registry.Remove(path)
	if !tracked {
		p.logger.Debug("remove for untracked path", "path", path)
	}
	return delta
}

// Regenerate renders the active set and replaces the stylesheet.
func (p *Processor) Regenerate() (render.Output, error) {
	out, err := p.sheet.Write(p.registry.Active())
	if err != nil {
		return out, err
	}
	p.writes++
	p.logger.Debug("stylesheet written", "path", p.sheet.Path, "rules", out.Rules, "unresolved", len(out.Unresolved))
	return out, nil
}

// ScanResult reports the outcome of an initial scan.
type ScanResult struct {
	Files  int
	Failed int
	Output render.Output
}

// InitialScan parses files in parallel, applies them to the registry in the
// given order and writes the stylesheet once.
func (p *Processor) InitialScan(ctx context.Context, files []string) (ScanResult, error) {
	sets := make([]classname.Set, len(files))
	failed := make([]bool, len(files))
	missing := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			names, err := p.extract(gctx, path)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				missing[i] = true
			case err != nil:
				p.logger.Debug("file contributes no classes", "path", path, "error", err)
				failed[i] = true
			}
			sets[i] = names
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return ScanResult{}, err
	}

	result := ScanResult{Files: len(files)}
	for i, path := range files {
		if missing[i] {
			// Deleted between discovery and parsing.
			result.Files--
			continue
		}
		if failed[i] {
			result.Failed++
		}
		if sets[i] == nil {
			sets[i] = classname.NewSet()
		}
		p.registry.Update(path, sets[i])
	}

	out, err := p.Regenerate()
	if err != nil {
		return result, err
	}
	result.Output = out
	return result, nil
}
