package main

import (
	"github.com/spf13/cobra"
	"github.com/yacobolo/dxstyles"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Scan sources, then rewrite the stylesheet on every change",
	Long: `Run an initial scan, write the stylesheet and keep watching the source tree.
Each file change that alters the set of classnames in use rewrites the
stylesheet. Stops on SIGINT or SIGTERM.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	addSourceFlags(watchCmd)
	addWatchFlags(watchCmd)
}

// addWatchFlags registers the debounce flags on watch and on the root command.
func addWatchFlags(cmd *cobra.Command) {
	def := dxstyles.DefaultConfig()
	f := cmd.Flags()
	f.Duration("quiet-window", def.QuietWindow, "Time a file must be quiet before it is processed")
	f.Duration("tick", def.TickInterval, "How often pending changes are checked")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	config := buildConfig(cmd.OutOrStdout())
	return dxstyles.Watch(cmd.Context(), config)
}
