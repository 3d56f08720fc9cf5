package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// StyleConfig is the build-time style configuration.
type StyleConfig struct {
	// Static maps a class name to its declaration body.
	Static map[string]string `toml:"static" yaml:"static"`
	// Dynamic maps "prefix|property" to suffix → value.
	Dynamic map[string]map[string]string `toml:"dynamic" yaml:"dynamic"`
	// Generators maps "prefix|property" to its numeric scaling.
	Generators map[string]GeneratorConfig `toml:"generators" yaml:"generators"`
}

// GeneratorConfig configures one generator rule.
type GeneratorConfig struct {
	Multiplier float32 `toml:"multiplier" yaml:"multiplier"`
	Unit       string  `toml:"unit" yaml:"unit"`
}

// Config formats
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatFromPath picks the configuration format from the file extension.
// Unknown extensions are treated as TOML.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// LoadStyleConfig reads the style configuration at path.
func LoadStyleConfig(path string) (StyleConfig, error) {
	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return StyleConfig{}, fmt.Errorf("read style config: %w", err)
	}
	cfg, err := ParseStyleConfig(data, FormatFromPath(path))
	if err != nil {
		return StyleConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseStyleConfig decodes a style configuration document.
func ParseStyleConfig(data []byte, format string) (StyleConfig, error) {
	var cfg StyleConfig
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return StyleConfig{}, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return StyleConfig{}, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return StyleConfig{}, fmt.Errorf("unsupported style config format %q", format)
	}
	return cfg, nil
}
