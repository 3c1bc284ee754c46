package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/isobox"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := isobox.GetVersionInfo()
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), info)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mp4dump %s\n", info.Version)
		fmt.Fprintf(out, "  commit: %s\n", info.GitCommit)
		fmt.Fprintf(out, "  built: %s\n", info.BuildTime)
		fmt.Fprintf(out, "  go: %s\n", info.GoVersion)
		return nil
	},
}

func init() {
	rootCmd.Version = isobox.Version
	rootCmd.AddCommand(versionCmd)
}
