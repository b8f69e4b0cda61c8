package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/careerpath/internal/dataset"
	"github.com/amishk599/careerpath/internal/model"
	"github.com/amishk599/careerpath/internal/predict"
	"github.com/amishk599/careerpath/internal/report"
)

var (
	predictPath   string
	predictFormat string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the next position for a path",
	Long: "Predicts the next position after the given comma-separated positions.\n" +
		"The rules strategy uses association rules; the prefix strategy uses the\n" +
		"positions that followed the same start in the dataset.",
	Example: `  careerpath predict --path "Software Engineer,Senior Software Engineer"
  careerpath predict --path "Data Analyst" --strategy prefix`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVarP(&predictPath, "path", "p", "", "comma-separated positions in career order (required)")
	predictCmd.Flags().StringVar(&predictFormat, "format", "text", "output format: text or log")
	_ = predictCmd.MarkFlagRequired("path")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	s := openSession(cmd, logger)

	current, err := parsePath(predictPath, s.cfg.Prediction.MaxSteps)
	if err != nil {
		return err
	}
	for _, pos := range current {
		if !slices.Contains(s.ds.Positions, pos) {
			logger.Warn("position does not occur in the dataset", "position", pos)
		}
	}

	predictor, err := predict.New(s.cfg.Prediction.Strategy, s.cache, s.cfg.Prediction.ExampleLimit, logger)
	if err != nil {
		return err
	}
	p, err := predictor.Predict(current, s.ds, s.cfg.Mining)
	if err != nil {
		return fmt.Errorf("predict next position: %w", err)
	}

	var reporter model.Reporter
	switch predictFormat {
	case "log":
		reporter = report.NewLogReporter(logger)
	case "text":
		reporter = textReporter{report.NewRenderer(os.Stdout)}
	default:
		return fmt.Errorf("unknown format %q (want text or log)", predictFormat)
	}
	return reporter.Report(p)
}

// textReporter adapts a Renderer to model.Reporter.
type textReporter struct {
	r *report.Renderer
}

func (t textReporter) Report(p model.Prediction) error {
	t.r.Prediction(p)
	return nil
}

// parsePath splits a comma-separated selection, cleaning each entry the way
// dataset cells are cleaned.
func parsePath(raw string, maxSteps int) (model.CareerPath, error) {
	var path model.CareerPath
	for _, part := range strings.Split(raw, ",") {
		if pos := dataset.Clean(part); pos != "" {
			path = append(path, pos)
		}
	}
	if len(path) == 0 {
		return nil, model.ErrNoPositions
	}
	if len(path) > maxSteps {
		return nil, fmt.Errorf("at most %d positions can be selected, got %d", maxSteps, len(path))
	}
	return path, nil
}
