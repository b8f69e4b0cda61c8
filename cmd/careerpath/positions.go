package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/careerpath/internal/report"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List the distinct positions in the dataset",
	Run: func(cmd *cobra.Command, args []string) {
		s := openSession(cmd, setupLogger(debug))
		report.NewRenderer(os.Stdout).Positions(s.ds.Positions)
	},
}

func init() {
	rootCmd.AddCommand(positionsCmd)
}
