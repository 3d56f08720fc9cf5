package dxstyles

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/yacobolo/dxstyles/internal/artifact"
	"github.com/yacobolo/dxstyles/internal/engine"
	"github.com/yacobolo/dxstyles/internal/fsutil"
	"github.com/yacobolo/dxstyles/internal/render"
	"github.com/yacobolo/dxstyles/internal/report"
	"github.com/yacobolo/dxstyles/internal/scan"
	"github.com/yacobolo/dxstyles/internal/watch"
)

// BuildResult summarizes an initial scan.
type BuildResult = report.Summary

// CompileResult describes a compiled artifact.
type CompileResult struct {
	Input      string
	Output     string
	Styles     int
	Generators int
	Bytes      int
	Warnings   []string
}

// Compile reads a style configuration (TOML or YAML, by extension) and
// writes the binary artifact the engine loads.
func Compile(input, output string) (*CompileResult, error) {
	if input == "" {
		input = DefaultStyles
	}
	if output == "" {
		output = DefaultArtifact
	}

	cfg, err := artifact.LoadStyleConfig(input)
	if err != nil {
		return nil, err
	}
	compiled, err := artifact.Compile(cfg)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", input, err)
	}
	if err := fsutil.WriteFileAtomic(output, compiled.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	return &CompileResult{
		Input:      input,
		Output:     output,
		Styles:     len(compiled.Styles),
		Generators: len(compiled.Generators),
		Bytes:      len(compiled.Data),
		Warnings:   compiled.Warnings,
	}, nil
}

// session is the state shared by Build and Watch after the initial scan.
type session struct {
	filter  *scan.Filter
	proc    *watch.Processor
	summary *BuildResult
}

// prepare loads the artifact, discovers sources and runs the initial scan.
func prepare(ctx context.Context, cfg Config, reporter *report.Reporter) (*session, error) {
	start := time.Now()

	eng, err := engine.Load(cfg.Artifact)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("artifact loaded", "path", cfg.Artifact,
		"styles", eng.NumStyles(), "generators", eng.NumGenerators())

	filter, err := scan.NewFilter(cfg.scanOptions())
	if err != nil {
		return nil, err
	}
	files, stats, err := scan.Discover(filter)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	cfg.Logger.Debug("sources discovered", "root", filter.Root(), "files", len(files), "skipped", stats.FilesSkipped)

	output, err := filepath.Abs(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("resolve output: %w", err)
	}
	proc := watch.NewProcessor(watch.ProcessorOptions{
		Stylesheet: &render.Stylesheet{Path: output, Resolver: eng},
		Reporter:   reporter,
		Logger:     cfg.Logger,
	})

	res, err := proc.InitialScan(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("initial scan failed: %w", err)
	}

	return &session{
		filter: filter,
		proc:   proc,
		summary: &BuildResult{
			Root:            filter.Root(),
			Output:          output,
			FilesDiscovered: stats.FilesDiscovered,
			FilesScanned:    res.Files,
			FilesSkipped:    stats.FilesSkipped,
			FilesFailed:     res.Failed,
			ActiveClasses:   proc.Registry().Len(),
			Rules:           res.Output.Rules,
			Unresolved:      res.Output.Unresolved,
			Elapsed:         time.Since(start),
		},
	}, nil
}

// Build scans every source once, writes the stylesheet and returns.
func Build(ctx context.Context, cfg Config) (*BuildResult, error) {
	cfg = cfg.withDefaults()
	s, err := prepare(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	return s.summary, nil
}

// Watch runs the initial scan, prints its summary and then rewrites the
// stylesheet on every relevant source change until ctx is cancelled.
func Watch(ctx context.Context, cfg Config) error {
	cfg = cfg.withDefaults()
	reporter := report.NewReporter(cfg.Stdout, cfg.UseColors)

	s, err := prepare(ctx, cfg, reporter)
	if err != nil {
		return err
	}
	reporter.PrintSummary(*s.summary)

	w, err := watch.New(s.filter, s.proc, watch.Options{
		QuietWindow:  cfg.QuietWindow,
		TickInterval: cfg.TickInterval,
		Logger:       cfg.Logger,
	})
	if err != nil {
		return err
	}
	reporter.PrintWatching(s.filter.Root())
	return w.Run(ctx)
}
