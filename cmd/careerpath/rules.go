package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/careerpath/internal/export"
	"github.com/amishk599/careerpath/internal/miner"
	"github.com/amishk599/careerpath/internal/report"
)

// exportFromConfig is the value of a bare --export flag.
const exportFromConfig = "config"

var (
	rulesLimit    int
	rulesContains []string
	rulesMinLift  float64
	rulesExport   string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List mined association rules",
	Long: "Mines association rules at the configured thresholds and prints them ranked\n" +
		"by confidence, lift and support. --export writes them to a .csv file, or to\n" +
		"a SQLite file for .db/.sqlite paths.",
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().IntVarP(&rulesLimit, "limit", "n", 20, "rules to print, 0 for all")
	rulesCmd.Flags().StringSliceVar(&rulesContains, "contains", nil, "only rules mentioning a position containing this keyword (repeatable)")
	rulesCmd.Flags().Float64Var(&rulesMinLift, "min-lift", 0, "only rules with at least this lift")
	rulesCmd.Flags().StringVar(&rulesExport, "export", "", "write the (filtered) rules to this file; bare --export uses export.path from config")
	rulesCmd.Flags().Lookup("export").NoOptDefVal = exportFromConfig
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	s := openSession(cmd, logger)

	rules := s.cache.Rules(s.ds, s.cfg.Mining)
	rules = miner.NewRuleFilter(rulesContains, rulesMinLift).Apply(rules)
	report.NewRenderer(os.Stdout).Rules(rules, rulesLimit)

	if rulesExport == "" {
		return nil
	}
	path := rulesExport
	if path == exportFromConfig {
		path = s.cfg.Export.Path
	}
	exp, err := export.ForPath(path)
	if err != nil {
		return err
	}
	defer exp.Close()

	meta := export.Meta{Source: s.ds.Source, DatasetID: s.ds.ID, Thresholds: s.cfg.Mining}
	if err := exp.Export(rules, meta); err != nil {
		return fmt.Errorf("export rules to %s: %w", path, err)
	}

	logArgs := []any{"path", path, "rules", len(rules)}
	if db, ok := exp.(*export.SQLiteExporter); ok {
		logArgs = append(logArgs, "run_id", db.LastRunID())
	}
	logger.Info("rules exported", logArgs...)
	return nil
}
