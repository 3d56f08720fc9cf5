package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/dxstyles"
	"github.com/yacobolo/dxstyles/internal/report"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the style configuration into the binary artifact",
	Long: `Read static styles, dynamic families and generator rules from a TOML or
YAML file and write the artifact loaded by watch and build.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringP("input", "i", dxstyles.DefaultStyles, "Style configuration (.toml, .yaml)")
}

func runCompile(cmd *cobra.Command, _ []string) error {
	input := getStringWithFallback("input", "compile.input", dxstyles.DefaultStyles)
	output := compileOutput(cmd)

	result, err := dxstyles.Compile(input, output)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}

	r := report.NewReporter(cmd.OutOrStdout(), report.ShouldUseColors(getBool("color", false)))
	fmt.Fprintf(cmd.OutOrStdout(), "Compiled %s -> %s\n", result.Input, result.Output)
	fmt.Fprintf(cmd.OutOrStdout(), "  Styles: %d\n", result.Styles)
	fmt.Fprintf(cmd.OutOrStdout(), "  Generators: %d\n", result.Generators)
	r.PrintWarnings(result.Warnings)
	return nil
}

// compileOutput prefers an explicit --artifact flag, then compile.output,
// then the shared artifact key.
func compileOutput(cmd *cobra.Command) string {
	if v := k.String("compile.output"); v != "" && !cmd.Flags().Changed("artifact") {
		return v
	}
	return getString("artifact", dxstyles.DefaultArtifact)
}
