package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".dxstyles.yaml")
	configContent := `
root: web/src
recursive: false
extensions: [.tsx]
exclude: ["**/generated"]
respect-gitignore: true
output: public/app.css
artifact: build/styles.bin
quiet-window: 250ms
tick: 20ms
verbose: true

compile:
  input: design/styles.yaml
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildConfig(&bytes.Buffer{})
	assert.Equal(t, "web/src", config.Root)
	assert.False(t, config.Recursive)
	assert.Equal(t, []string{".tsx"}, config.Extensions)
	assert.Equal(t, []string{"**/generated"}, config.Exclude)
	assert.True(t, config.RespectGitignore)
	assert.Equal(t, "public/app.css", config.Output)
	assert.Equal(t, "build/styles.bin", config.Artifact)
	assert.Equal(t, 250*time.Millisecond, config.QuietWindow)
	assert.Equal(t, 20*time.Millisecond, config.TickInterval)
	assert.Equal(t, "design/styles.yaml", k.String("compile.input"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.dxstyles.yaml"))

	config := buildConfig(&bytes.Buffer{})
	assert.Equal(t, ".", config.Root)
	assert.True(t, config.Recursive)
	assert.Equal(t, []string{".tsx", ".jsx"}, config.Extensions)
	assert.Equal(t, []string{"**/node_modules", "**/.git"}, config.Exclude)
	assert.False(t, config.RespectGitignore)
	assert.Equal(t, "styles.css", config.Output)
	assert.Equal(t, "styles.bin", config.Artifact)
	assert.Equal(t, 100*time.Millisecond, config.QuietWindow)
	assert.Equal(t, 50*time.Millisecond, config.TickInterval)
	assert.NotNil(t, config.Logger)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".dxstyles.yaml")
	configContent := `
root: from-file
quiet-window: 1s
compile:
  input: file.toml
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	// Set env vars that should override config file
	t.Setenv("DXSTYLES_ROOT", "from-env")
	t.Setenv("DXSTYLES_QUIET_WINDOW", "300ms")
	t.Setenv("DXSTYLES_EXTENSIONS", ".tsx, .mdx")
	t.Setenv("DXSTYLES_COMPILE_INPUT", "env.yaml")

	require.NoError(t, loadConfigFromPath(configPath))

	config := buildConfig(&bytes.Buffer{})
	assert.Equal(t, "from-env", config.Root)
	assert.Equal(t, 300*time.Millisecond, config.QuietWindow)
	assert.Equal(t, []string{".tsx", ".mdx"}, config.Extensions)
	assert.Equal(t, "env.yaml", k.String("compile.input"))
}

func TestNestedKeyFallback(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".dxstyles.yaml")
	configContent := `
compile:
  input: design/styles.yaml
build:
  output-format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	// Without the flag, the nested config key is used.
	assert.Equal(t, "design/styles.yaml", getStringWithFallback("input", "compile.input", "styles.toml"))
	assert.Equal(t, "json", getStringWithFallback("output-format", "build.output-format", "text"))

	// An explicit flag wins over the config file.
	require.NoError(t, k.Set("input", "cli.toml"))
	assert.Equal(t, "cli.toml", getStringWithFallback("input", "compile.input", "styles.toml"))
}

func TestSingleKeyHelpersDefaults(t *testing.T) {
	resetKoanf()

	assert.Equal(t, "dflt", getString("missing", "dflt"))
	assert.True(t, getBool("missing", true))
	assert.Equal(t, []string{"a"}, getStrings("missing", []string{"a"}))
	assert.Equal(t, time.Second, getDuration("missing", time.Second))

	require.NoError(t, k.Set("recursive", false))
	require.NoError(t, k.Set("tick", "5ms"))
	assert.False(t, getBool("recursive", true))
	assert.Equal(t, 5*time.Millisecond, getDuration("tick", time.Second))
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"DXSTYLES_VERBOSE", "verbose"},
		{"DXSTYLES_QUIET_WINDOW", "quiet-window"},
		{"DXSTYLES_RESPECT_GITIGNORE", "respect-gitignore"},
		{"DXSTYLES_COMPILE_INPUT", "compile.input"},
		{"DXSTYLES_BUILD_OUTPUT_FORMAT", "build.output-format"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.env))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{".tsx", ".jsx"}, splitList(" .tsx,,.jsx "))
	assert.Nil(t, splitList(""))
}

func TestWriteStarter(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dxstyles.yaml")

	require.NoError(t, writeStarter(path, defaultConfig, false))
	err := writeStarter(path, defaultConfig, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	require.NoError(t, writeStarter(path, defaultConfig, true))

	// The starter config loads and yields the defaults.
	resetKoanf()
	require.NoError(t, loadConfigFromPath(path))
	config := buildConfig(&bytes.Buffer{})
	assert.Equal(t, 100*time.Millisecond, config.QuietWindow)
	assert.Equal(t, []string{".tsx", ".jsx"}, config.Extensions)
	assert.Equal(t, "styles.toml", k.String("compile.input"))
}

func TestCompileAndBuildCommands(t *testing.T) {
	resetKoanf()
	dir := t.TempDir()
	styles := filepath.Join(dir, "styles.toml")
	artifact := filepath.Join(dir, "styles.bin")
	css := filepath.Join(dir, "styles.css")
	src := filepath.Join(dir, "src")

	require.NoError(t, os.WriteFile(styles, []byte(defaultStyles), 0644))
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "App.tsx"),
		[]byte(`export const App = () => <main className="flex mt-2 text-red" />;`), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"compile", "--input", styles, "--artifact", artifact})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Compiled")

	out.Reset()
	resetKoanf()
	rootCmd.SetArgs([]string{"build", "--root", src, "--artifact", artifact, "--output", css, "--output-format", "json"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	var got struct {
		Summary struct {
			FilesScanned int `json:"files_scanned"`
			Rules        int `json:"rules"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 1, got.Summary.FilesScanned)
	assert.Equal(t, 3, got.Summary.Rules)

	data, err := os.ReadFile(css)
	require.NoError(t, err)
	assert.Equal(t, ".flex {\n    display: flex;\n}\n"+
		".mt-2 {\n    margin-top: 0.5rem;\n}\n"+
		".text-red {\n    color: #ef4444;\n}\n", string(data))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "dxstyles dev\n", out.String())
}
