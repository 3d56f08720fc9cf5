package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/dxstyles"
	"github.com/yacobolo/dxstyles/internal/report"
)

var k = koanf.New(".")

// listKeys hold comma separated values when set through the environment.
var listKeys = map[string]bool{
	"extensions": true,
	"exclude":    true,
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".dxstyles.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	if err := k.Load(posflag.ProviderWithFlag(cmd.Flags(), ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(cmd.Flags(), f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 0. Defaults
	def := dxstyles.DefaultConfig()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"root":                def.Root,
		"recursive":           def.Recursive,
		"extensions":          def.Extensions,
		"exclude":             def.Exclude,
		"respect-gitignore":   def.RespectGitignore,
		"output":              def.Output,
		"artifact":            def.Artifact,
		"quiet-window":        def.QuietWindow.String(),
		"tick":                def.TickInterval.String(),
		"verbose":             false,
		"color":               false,
		"compile.input":       dxstyles.DefaultStyles,
		"build.output-format": string(dxstyles.OutputText),
	}, "."), nil); err != nil {
		return fmt.Errorf("loading defaults: %w", err)
	}

	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (DXSTYLES_* prefix)
	if err := k.Load(env.ProviderWithValue("DXSTYLES_", ".", func(s, v string) (string, interface{}) {
		key := envKey(s)
		if listKeys[key] {
			return key, splitList(v)
		}
		return key, v
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	DXSTYLES_QUIET_WINDOW   -> quiet-window
//	DXSTYLES_COMPILE_INPUT  -> compile.input
//	DXSTYLES_VERBOSE        -> verbose
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "DXSTYLES_"))
	for _, section := range []string{"compile", "build"} {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// buildConfig constructs the library's Config struct from koanf state.
// Top-level flags and config file keys share names, so one lookup covers both.
func buildConfig(stdout io.Writer) dxstyles.Config {
	def := dxstyles.DefaultConfig()

	return dxstyles.Config{
		Root:             getString("root", def.Root),
		Recursive:        getBool("recursive", def.Recursive),
		Extensions:       getStrings("extensions", def.Extensions),
		Exclude:          getStrings("exclude", def.Exclude),
		RespectGitignore: getBool("respect-gitignore", false),
		Output:           getString("output", def.Output),
		Artifact:         getString("artifact", def.Artifact),
		QuietWindow:      getDuration("quiet-window", def.QuietWindow),
		TickInterval:     getDuration("tick", def.TickInterval),
		Logger:           newLogger(os.Stderr, getBool("verbose", false)),
		Stdout:           stdout,
		UseColors:        report.ShouldUseColors(getBool("color", false)),
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
// Used where a subcommand flag maps to a nested config key (--input -> compile.input).
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	return getString(configKey, defaultVal)
}

func getString(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

func getStrings(key string, defaultVal []string) []string {
	if k.Exists(key) {
		return k.Strings(key)
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if k.Exists(key) {
		return k.Duration(key)
	}
	return defaultVal
}
