// Package report formats the per-event change line and build summaries.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"
)

// Change describes one processed file event.
type Change struct {
	Source        string
	AddedInFile   int
	RemovedInFile int
	Output        string
	AddedGlobal   int
	RemovedGlobal int
	Elapsed       time.Duration
}

// Empty reports whether every counter is zero.
func (c Change) Empty() bool {
	return c.AddedInFile == 0 && c.RemovedInFile == 0 && c.AddedGlobal == 0 && c.RemovedGlobal == 0
}

// Summary describes a completed initial scan.
type Summary struct {
	Root            string        `json:"root"`
	Output          string        `json:"output"`
	FilesDiscovered int           `json:"files_discovered"`
	FilesScanned    int           `json:"files_scanned"`
	FilesSkipped    int           `json:"files_skipped"`
	FilesFailed     int           `json:"files_failed"`
	ActiveClasses   int           `json:"active_classes"`
	Rules           int           `json:"rules"`
	Unresolved      []string      `json:"unresolved"`
	Elapsed         time.Duration `json:"-"`
}

// Reporter writes human readable output.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// NO_COLOR disables colors everywhere (https://no-color.org)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// Auto-detect TTY
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintChange writes "<source> (+a, -r) -> <output> (+A, -R) · <elapsed>".
// Nothing is written when all four counters are zero.
func (r *Reporter) PrintChange(c Change) {
	if c.Empty() {
		return
	}

	fmt.Fprintf(r.w, "%s %s -> %s %s %s %s\n",
		RenderStyle(StyleCyan, RelativePath(c.Source), r.useColors),
		r.counts(c.AddedInFile, c.RemovedInFile),
		RenderStyle(StyleMagenta, RelativePath(c.Output), r.useColors),
		r.counts(c.AddedGlobal, c.RemovedGlobal),
		RenderStyle(StyleGray, "·", r.useColors),
		RenderStyle(StyleYellow, FormatElapsed(c.Elapsed), r.useColors))
}

func (r *Reporter) counts(added, removed int) string {
	return fmt.Sprintf("(%s, %s)",
		RenderStyle(StyleGreen, fmt.Sprintf("+%d", added), r.useColors),
		RenderStyle(StyleRed, fmt.Sprintf("-%d", removed), r.useColors))
}

// PrintSummary outputs the result of an initial scan.
func (r *Reporter) PrintSummary(s Summary) {
	fmt.Fprintf(r.w, "%s %s\n",
		RenderStyle(StyleBold, "Wrote", r.useColors),
		RenderStyle(StyleMagenta, RelativePath(s.Output), r.useColors))

	fmt.Fprintf(r.w, "  %s scanned", pluralizeCount(s.FilesScanned, "file", "files"))
	if s.FilesSkipped > 0 {
		fmt.Fprintf(r.w, " (%d skipped)", s.FilesSkipped)
	}
	if s.FilesFailed > 0 {
		fmt.Fprintf(r.w, ", %s", RenderStyle(StyleRed, fmt.Sprintf("%d failed to parse", s.FilesFailed), r.useColors))
	}
	fmt.Fprintln(r.w)

	fmt.Fprintf(r.w, "  %s, %s %s %s\n",
		pluralizeCount(s.ActiveClasses, "class", "classes"),
		pluralizeCount(s.Rules, "rule", "rules"),
		RenderStyle(StyleGray, "·", r.useColors),
		RenderStyle(StyleYellow, FormatElapsed(s.Elapsed), r.useColors))

	if len(s.Unresolved) > 0 {
		fmt.Fprintf(r.w, "  %s\n", RenderStyle(StyleGray,
			fmt.Sprintf("%s without a style", pluralizeCount(len(s.Unresolved), "class", "classes")), r.useColors))
	}
}

// PrintWatching announces the start of the watch loop.
func (r *Reporter) PrintWatching(root string) {
	fmt.Fprintf(r.w, "%s %s\n",
		RenderStyle(StyleBold, "Watching", r.useColors),
		RenderStyle(StyleCyan, RelativePath(root), r.useColors))
}

// PrintWarnings lists non-fatal problems, one per line.
func (r *Reporter) PrintWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleYellow, "warning:", r.useColors), w)
	}
}

// FormatElapsed renders durations below a millisecond in µs, otherwise in
// whole milliseconds.
func FormatElapsed(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// RelativePath returns a relative path from the current working directory
func RelativePath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return absPath
	}
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
