package dxstyles

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/yacobolo/dxstyles/internal/scan"
	"github.com/yacobolo/dxstyles/internal/watch"
)

// Default file locations.
const (
	DefaultStyles   = "styles.toml"
	DefaultArtifact = "styles.bin"
	DefaultOutput   = "styles.css"
)

// Config holds the options shared by Build and Watch.
type Config struct {
	Root             string
	Recursive        bool
	Extensions       []string
	Exclude          []string
	RespectGitignore bool

	Output   string
	Artifact string

	QuietWindow  time.Duration
	TickInterval time.Duration

	Logger    *slog.Logger
	Stdout    io.Writer
	UseColors bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Root:         ".",
		Recursive:    true,
		Extensions:   append([]string(nil), scan.DefaultExtensions...),
		Exclude:      append([]string(nil), scan.DefaultExclude...),
		Output:       DefaultOutput,
		Artifact:     DefaultArtifact,
		QuietWindow:  watch.DefaultQuietWindow,
		TickInterval: watch.DefaultTickInterval,
	}
}

// withDefaults fills zero values from DefaultConfig. Booleans are taken as
// given.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Root == "" {
		c.Root = def.Root
	}
	if len(c.Extensions) == 0 {
		c.Extensions = def.Extensions
	}
	if c.Exclude == nil {
		c.Exclude = def.Exclude
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Artifact == "" {
		c.Artifact = def.Artifact
	}
	if c.QuietWindow <= 0 {
		c.QuietWindow = def.QuietWindow
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	return c
}

func (c Config) scanOptions() scan.Options {
	return scan.Options{
		Root:             c.Root,
		Recursive:        c.Recursive,
		Extensions:       c.Extensions,
		Exclude:          c.Exclude,
		RespectGitignore: c.RespectGitignore,
	}
}
