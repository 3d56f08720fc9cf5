package dxstyles

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version    string      `json:"version"`
	Timestamp  string      `json:"timestamp"`
	Summary    JSONSummary `json:"summary"`
	Unresolved []string    `json:"unresolved"` // classnames in use without a style
}

// JSONSummary contains the build counters
type JSONSummary struct {
	Root            string `json:"root"`
	Output          string `json:"output"`
	FilesDiscovered int    `json:"files_discovered"`
	FilesScanned    int    `json:"files_scanned"`
	FilesSkipped    int    `json:"files_skipped"`
	FilesFailed     int    `json:"files_failed"`
	ActiveClasses   int    `json:"active_classes"`
	Rules           int    `json:"rules"`
	ElapsedMS       int64  `json:"elapsed_ms"`
}

// WriteJSON writes the build result as JSON
func WriteJSON(w io.Writer, result *BuildResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildJSONOutput(result *BuildResult) JSONOutput {
	unresolved := result.Unresolved
	if unresolved == nil {
		unresolved = []string{}
	}
	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			Root:            result.Root,
			Output:          result.Output,
			FilesDiscovered: result.FilesDiscovered,
			FilesScanned:    result.FilesScanned,
			FilesSkipped:    result.FilesSkipped,
			FilesFailed:     result.FilesFailed,
			ActiveClasses:   result.ActiveClasses,
			Rules:           result.Rules,
			ElapsedMS:       result.Elapsed.Milliseconds(),
		},
		Unresolved: unresolved,
	}
}
