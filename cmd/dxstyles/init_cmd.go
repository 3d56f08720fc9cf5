package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .dxstyles.yaml config file",
	Long: `Create a .dxstyles.yaml configuration file in the current directory with sensible defaults.
With --styles, also write a starter styles.toml.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		styles, _ := cmd.Flags().GetBool("styles")

		if err := writeStarter(".dxstyles.yaml", defaultConfig, force); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Created .dxstyles.yaml")

		if styles {
			if err := writeStarter("styles.toml", defaultStyles, force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Created styles.toml")
		}
		return nil
	},
}

func writeStarter(path, content string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

const defaultConfig = `# dxstyles configuration
# Docs: https://github.com/yacobolo/dxstyles

# Sources
root: .
recursive: true
extensions:
  - .tsx
  - .jsx
exclude:
  - "**/node_modules"
  - "**/.git"
respect-gitignore: false

# Files
artifact: styles.bin
output: styles.css

# Watch loop
quiet-window: 100ms
tick: 50ms

verbose: false

# Style compilation
compile:
  input: styles.toml
  output: styles.bin

build:
  output-format: text # text | json | table
`

const defaultStyles = `# Exact classnames
[static]
flex = "display: flex;"
hidden = "display: none;"
"h-full" = "height: 100%;"

# "prefix|property": suffix = value
[dynamic."text|color"]
red = "#ef4444"
white = "#ffffff"

# "prefix|property": <prefix>-<number> => property: number * multiplier + unit
[generators."mt|margin-top"]
multiplier = 0.25
unit = "rem"

[generators."p|padding"]
multiplier = 0.25
unit = "rem"
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
	initCmd.Flags().Bool("styles", false, "Also write a starter styles.toml")
}
