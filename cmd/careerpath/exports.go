package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/careerpath/internal/export"
	"github.com/amishk599/careerpath/internal/report"
)

var (
	exportsRun   string
	exportsLimit int
)

var exportsCmd = &cobra.Command{
	Use:   "exports <file.db>",
	Short: "List rule exports stored in a SQLite export file",
	Long:  "Lists the export runs recorded by `rules --export file.db`. With --run, prints the rules of that run.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExports,
}

func init() {
	exportsCmd.Flags().StringVar(&exportsRun, "run", "", "print the rules of this run id")
	exportsCmd.Flags().IntVarP(&exportsLimit, "limit", "n", 20, "rules to print with --run, 0 for all")
	rootCmd.AddCommand(exportsCmd)
}

func runExports(cmd *cobra.Command, args []string) error {
	path := args[0]
	// Opening would otherwise create an empty database.
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open export file: %w", err)
	}

	db, err := export.NewSQLiteExporter(path)
	if err != nil {
		return err
	}
	defer db.Close()

	r := report.NewRenderer(os.Stdout)
	if exportsRun == "" {
		runs, err := db.Runs()
		if err != nil {
			return err
		}
		r.Exports(runs)
		return nil
	}

	rules, err := db.Rules(exportsRun)
	if err != nil {
		return err
	}
	r.Rules(rules, exportsLimit)
	return nil
}
