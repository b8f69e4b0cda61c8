package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/careerpath/internal/miner"
	"github.com/amishk599/careerpath/internal/model"
	"github.com/amishk599/careerpath/internal/predict"
	"github.com/amishk599/careerpath/internal/tui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore career paths interactively (TUI)",
	Long:  "Mines rules behind a spinner, then opens the step picker and the prediction view.",
	RunE:  runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	// Load errors are still reported normally; they happen before the TUI starts.
	s := openSession(cmd, setupLogger(debug))

	// Any log output once the alt screen is up corrupts the display.
	silentLogger := discardLogger()
	cache := miner.NewCache(silentLogger)

	label := fmt.Sprintf("Mining association rules from %s (%d paths)...", s.ds.Source, len(s.ds.Paths))
	if _, err := tui.RunLoader(label, func() ([]model.Rule, error) {
		return cache.Rules(s.ds, s.cfg.Mining), nil
	}); err != nil {
		return err
	}

	predictors := make(map[model.Strategy]model.Predictor, 2)
	for _, st := range []model.Strategy{model.StrategyRules, model.StrategyPrefix} {
		p, err := predict.New(st, cache, s.cfg.Prediction.ExampleLimit, silentLogger)
		if err != nil {
			return err
		}
		predictors[st] = p
	}

	return tui.RunExplorer(tui.Options{
		Dataset:    s.ds,
		Thresholds: s.cfg.Mining,
		Rules:      cache,
		Predictors: predictors,
		Strategy:   s.cfg.Prediction.Strategy,
		MaxSteps:   s.cfg.Prediction.MaxSteps,
	})
}
