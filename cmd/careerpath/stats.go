package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/careerpath/internal/dataset"
	"github.com/amishk599/careerpath/internal/report"
)

var statsTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the loaded dataset",
	Run: func(cmd *cobra.Command, args []string) {
		s := openSession(cmd, setupLogger(debug))
		report.NewRenderer(os.Stdout).Stats(s.ds.Source, dataset.Summarize(s.table, s.ds, statsTop))
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "most common positions to list, 0 for all")
	rootCmd.AddCommand(statsCmd)
}
