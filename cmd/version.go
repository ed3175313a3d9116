package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the xkcdget version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func versionString() string {
	s := "xkcdget " + Version

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return s
	}

	s += " (" + info.GoVersion
	for _, kv := range info.Settings {
		if kv.Key == "vcs.revision" && len(kv.Value) >= 7 {
			s += ", " + kv.Value[:7]
		}
	}
	return s + ")"
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
