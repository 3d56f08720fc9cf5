package dxstyles

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yacobolo/dxstyles/internal/report"
)

// OutputFormat selects how a build summary is printed.
type OutputFormat string

// Output formats
const (
	OutputText  OutputFormat = "text"
	OutputJSON  OutputFormat = "json"
	OutputTable OutputFormat = "table"
)

// DetermineOutputFormat selects the output format from the flag value.
// Unknown values fall back to text.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "json":
		return OutputJSON
	case "table":
		return OutputTable
	default:
		return OutputText
	}
}

// WriteOutput writes the build summary in the specified format
func WriteOutput(w io.Writer, result *BuildResult, format OutputFormat, useColors bool) error {
	switch format {
	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	case OutputTable:
		writeTable(w, result)
	default:
		reporter := report.NewReporter(w, useColors)
		reporter.PrintSummary(*result)
	}
	return nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	return t
}

func writeTable(w io.Writer, result *BuildResult) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Root", report.RelativePath(result.Root)},
		{"Output", report.RelativePath(result.Output)},
		{"Files discovered", result.FilesDiscovered},
		{"Files scanned", result.FilesScanned},
		{"Files skipped", result.FilesSkipped},
		{"Files failed", result.FilesFailed},
		{"Active classes", result.ActiveClasses},
		{"Rules", result.Rules},
		{"Elapsed", report.FormatElapsed(result.Elapsed)},
	})
	t.Render()

	if len(result.Unresolved) == 0 {
		return
	}
	u := newTable(w)
	u.AppendHeader(table.Row{"Unresolved class"})
	for _, name := range result.Unresolved {
		u.AppendRow(table.Row{name})
	}
	u.Render()
}
