package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/dxstyles"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Scan sources once and write the stylesheet",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	addSourceFlags(buildCmd)
	buildCmd.Flags().String("output-format", "text", "Summary format: text|json|table")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	config := buildConfig(cmd.OutOrStdout())

	result, err := dxstyles.Build(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	format := dxstyles.DetermineOutputFormat(getStringWithFallback("output-format", "build.output-format", "text"))
	return dxstyles.WriteOutput(cmd.OutOrStdout(), result, format, config.UseColors)
}
