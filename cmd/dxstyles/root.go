package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dxstyles",
	Short: "On-demand stylesheet generator for JSX/TSX projects",
	Long: `Watches JSX/TSX sources, collects the literal className tokens they use
and writes a stylesheet containing exactly the rules for those classnames.
Styles come from a precompiled artifact built with "dxstyles compile".`,
	// Default behavior: run watch when no subcommand is given.
	// loadConfig is called here because PreRunE of watchCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runWatch(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("color", false, "Force color output")
	pf.String("config", ".dxstyles.yaml", "Config file path")
	pf.String("artifact", "styles.bin", "Compiled style artifact")

	addSourceFlags(rootCmd)
	addWatchFlags(rootCmd)

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// addSourceFlags registers the flags shared by watch and build.
func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("root", "r", ".", "Source root directory")
	f.Bool("recursive", true, "Descend into subdirectories")
	f.StringSlice("extensions", []string{".tsx", ".jsx"}, "Tracked file extensions")
	f.StringSlice("exclude", []string{"**/node_modules", "**/.git"}, "Glob patterns to skip, relative to the root")
	f.Bool("respect-gitignore", false, "Skip paths ignored by the root .gitignore")
	f.StringP("output", "o", "styles.css", "Generated stylesheet")
}
