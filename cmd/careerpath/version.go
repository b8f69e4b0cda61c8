package main

import (
	"fmt"
	buildinfo "runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionString reports the release version plus the toolchain and VCS
// revision embedded at build time, when available.
func versionString() string {
	s := "careerpath " + version
	info, ok := buildinfo.ReadBuildInfo()
	if !ok {
		return s
	}
	s += " (" + info.GoVersion
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			s += ", " + setting.Value[:7]
		}
		if setting.Key == "vcs.modified" && setting.Value == "true" {
			s += ", dirty"
		}
	}
	return s + ")"
}
