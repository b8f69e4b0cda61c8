package predict

import (
	"fmt"
	"log/slog"

	"github.com/amishk599/careerpath/internal/model"
)

// New returns the predictor for strategy, wrapped by Safe. Rule predictions
// read from source.
func New(strategy model.Strategy, source model.RuleSource, exampleLimit int, logger *slog.Logger) (model.Predictor, error) {
	switch strategy {
	case model.StrategyRules:
		return Safe(strategy, NewRulePredictor(source), logger), nil
	case model.StrategyPrefix:
		return Safe(strategy, NewPrefixPredictor(exampleLimit), logger), nil
	default:
		return nil, fmt.Errorf("%w: %q (want %q or %q)", model.ErrUnknownStrategy, strategy, model.StrategyRules, model.StrategyPrefix)
	}
}

// SafePredictor recovers from panics in the wrapped predictor, logs them and
// degrades to a "no prediction" result so the interactive flow keeps running.
type SafePredictor struct {
	strategy model.Strategy
	inner    model.Predictor
	logger   *slog.Logger
}

// Safe wraps inner with panic recovery.
func Safe(strategy model.Strategy, inner model.Predictor, logger *slog.Logger) *SafePredictor {
	return &SafePredictor{strategy: strategy, inner: inner, logger: logger}
}

// Predict delegates to the wrapped predictor.
func (s *SafePredictor) Predict(current model.CareerPath, ds *model.Dataset, th model.Thresholds) (pred model.Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("prediction failed",
				"strategy", s.strategy,
				"path", current.String(),
				"panic", r,
			)
			pred, err = none(s.strategy, current), nil
		}
	}()
	return s.inner.Predict(current, ds, th)
}
