package predict

import (
	"sort"

	"github.com/amishk599/careerpath/internal/model"
)

// Ensure RulePredictor implements model.Predictor.
var _ model.Predictor = (*RulePredictor)(nil)

// RulePredictor predicts from mined association rules.
type RulePredictor struct {
	source model.RuleSource
}

// NewRulePredictor returns a predictor that takes its rules from source
// (normally a *miner.Cache shared with the rest of the session).
func NewRulePredictor(source model.RuleSource) *RulePredictor {
	return &RulePredictor{source: source}
}

// Predict looks up the next position for current in the rules mined from ds at th.
func (p *RulePredictor) Predict(current model.CareerPath, ds *model.Dataset, th model.Thresholds) (model.Prediction, error) {
	if len(current) == 0 {
		return none(model.StrategyRules, current), model.ErrNoPositions
	}
	return PredictNext(current, p.source.Rules(ds, th)), nil
}

// PredictNext picks the next position greedily.
//
// Rules are relevant when their antecedents share at least one position with
// current. Relevant rules are ranked by confidence then lift (both
// descending) and the first consequent not already in current wins, carrying
// that rule's metrics. The backing rule shown to the user comes from Explain,
// which uses a stricter filter.
func PredictNext(current model.CareerPath, rules []model.Rule) model.Prediction {
	var relevant []model.Rule
	for _, r := range rules {
		if overlaps(r.Antecedents, current) {
			relevant = append(relevant, r)
		}
	}
	sort.SliceStable(relevant, func(i, j int) bool {
		if relevant[i].Confidence != relevant[j].Confidence {
			return relevant[i].Confidence > relevant[j].Confidence
		}
		return relevant[i].Lift > relevant[j].Lift
	})

	for _, r := range relevant {
		for _, c := range r.Consequents {
			if current.Contains(c) {
				continue
			}
			return model.Prediction{
				Strategy:    model.StrategyRules,
				Mode:        model.ModeRule,
				Current:     current,
				Next:        c,
				Confidence:  r.Confidence,
				Support:     r.Support,
				Lift:        r.Lift,
				Explanation: Explain(current, c, rules),
			}
		}
	}
	return none(model.StrategyRules, current)
}

// Explain returns the first rule, in rules order, whose antecedents are all in
// current and whose consequents include next, or nil. This is deliberately
// stricter than the any-overlap filter PredictNext uses for discovery.
func Explain(current model.CareerPath, next string, rules []model.Rule) *model.Rule {
	for _, r := range rules {
		if !containsAll(current, r.Antecedents) {
			continue
		}
		for _, c := range r.Consequents {
			if c == next {
				r := r
				return &r
			}
		}
	}
	return nil
}

func overlaps(set []string, current model.CareerPath) bool {
	for _, s := range set {
		if current.Contains(s) {
			return true
		}
	}
	return false
}

func containsAll(current model.CareerPath, set []string) bool {
	for _, s := range set {
		if !current.Contains(s) {
			return false
		}
	}
	return true
}

func none(s model.Strategy, current model.CareerPath) model.Prediction {
	return model.Prediction{Strategy: s, Mode: model.ModeNone, Current: current}
}
