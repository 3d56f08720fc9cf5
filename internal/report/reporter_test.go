package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintChange(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name   string
		change Change
		want   string
	}{
		{
			name: "microseconds",
			change: Change{
				Source:      filepath.Join(cwd, "src", "App.tsx"),
				AddedInFile: 2,
				Output:      filepath.Join(cwd, "styles.css"),
				AddedGlobal: 1,
				Elapsed:     420 * time.Microsecond,
			},
			want: "src/App.tsx (+2, -0) -> styles.css (+1, -0) · 420µs\n",
		},
		{
			name: "milliseconds",
			change: Change{
				Source:        "App.tsx",
				RemovedInFile: 3,
				Output:        "out.css",
				RemovedGlobal: 2,
				Elapsed:       3700 * time.Microsecond,
			},
			want: "App.tsx (+0, -3) -> out.css (+0, -2) · 3ms\n",
		},
		{
			name: "file only change still reported",
			change: Change{
				Source:      "App.tsx",
				AddedInFile: 1,
				Output:      "out.css",
			},
			want: "App.tsx (+1, -0) -> out.css (+0, -0) · 0µs\n",
		},
		{
			name:   "suppressed when empty",
			change: Change{Source: "App.tsx", Output: "out.css", Elapsed: time.Second},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewReporter(&buf, false).PrintChange(tt.change)
			require.Equal(t, filepath.FromSlash(tt.want), buf.String())
		})
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, false).PrintSummary(Summary{
		Output:          "styles.css",
		FilesDiscovered: 4,
		FilesScanned:    3,
		FilesSkipped:    1,
		FilesFailed:     1,
		ActiveClasses:   5,
		Rules:           4,
		Unresolved:      []string{"unknown"},
		Elapsed:         12 * time.Millisecond,
	})

	want := "Wrote styles.css\n" +
		"  3 files scanned (1 skipped), 1 failed to parse\n" +
		"  5 classes, 4 rules · 12ms\n" +
		"  1 class without a style\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintWatchingAndWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.PrintWatching("src")
	r.PrintWarnings([]string{"a", "b"})
	assert.Equal(t, "Watching src\nwarning: a\nwarning: b\n", buf.String())
}

func TestShouldUseColors(t *testing.T) {
	tests := []struct {
		name       string
		force      bool
		noColor    string
		forceColor string
		want       bool
	}{
		{name: "flag wins", force: true, noColor: "1", want: true},
		{name: "NO_COLOR disables", noColor: "1", forceColor: "1", want: false},
		{name: "FORCE_COLOR enables", forceColor: "1", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("FORCE_COLOR", tt.forceColor)
			assert.Equal(t, tt.want, ShouldUseColors(tt.force))
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0µs", FormatElapsed(0))
	assert.Equal(t, "999µs", FormatElapsed(999*time.Microsecond))
	assert.Equal(t, "1ms", FormatElapsed(time.Millisecond))
	assert.Equal(t, "1500ms", FormatElapsed(1500*time.Millisecond))
}

func TestRenderStyle(t *testing.T) {
	assert.Equal(t, "plain", RenderStyle(StyleRed, "plain", false))
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 file", pluralizeCount(1, "file", "files"))
	assert.Equal(t, "0 files", pluralizeCount(0, "file", "files"))
	assert.Equal(t, "2 files", pluralizeCount(2, "file", "files"))
}
