package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
)

var rootCmd = &cobra.Command{
	Use:   "xkcdget",
	Short: "Download xkcd comics to a local folder",
	Long: `xkcdget saves xkcd comic images as <dir>/<name>.<ext>.

A single comic, the comics in the RSS feed, an id range or list, or the
whole archive can be fetched. Failed comics are reported in the summary;
only invalid arguments make the command exit non-zero.`,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
