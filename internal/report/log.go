package report

import (
	"log/slog"

	"github.com/amishk599/careerpath/internal/model"
)

// Ensure LogReporter implements model.Reporter.
var _ model.Reporter = (*LogReporter)(nil)

// LogReporter writes predictions to the given logger as structured messages.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter returns a reporter that logs each prediction via slog.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Report logs the prediction with its mode and metrics. Returns nil (logging
// does not fail).
func (r *LogReporter) Report(p model.Prediction) error {
	args := []any{"strategy", p.Strategy, "mode", p.Mode, "path", p.Current.String()}
	if !p.OK() {
		r.logger.Info("no prediction", args...)
		return nil
	}

	args = append(args, "next", p.Best())
	switch p.Mode {
	case model.ModeRule:
		args = append(args, "confidence", p.Confidence, "support", p.Support, "lift", p.Lift)
		if p.Explanation != nil {
			args = append(args, "because", p.Explanation.Antecedents)
		}
	default:
		args = append(args, "total", p.Total, "candidates", len(p.Distribution))
		if p.LastPosition != "" {
			args = append(args, "last_position", p.LastPosition)
		}
	}
	r.logger.Info("prediction", args...)

	for _, c := range p.Distribution {
		r.logger.Debug("candidate", "position", c.Position, "count", c.Count, "percent", c.Percent)
	}
	return nil
}
