package predict

import (
	"sort"
	"strings"

	"github.com/amishk599/careerpath/internal/model"
)

// DefaultExampleLimit is how many example paths a prefix prediction carries.
const DefaultExampleLimit = 5

// Ensure PrefixPredictor implements model.Predictor.
var _ model.Predictor = (*PrefixPredictor)(nil)

// PrefixPredictor predicts from the literal ordered paths: what came right
// after the same prefix, or after the last selected position when no path
// shares the whole prefix.
type PrefixPredictor struct {
	examples int
}

// NewPrefixPredictor returns a prefix predictor that attaches up to
// exampleLimit example paths (DefaultExampleLimit when <= 0).
func NewPrefixPredictor(exampleLimit int) *PrefixPredictor {
	if exampleLimit <= 0 {
		exampleLimit = DefaultExampleLimit
	}
	return &PrefixPredictor{examples: exampleLimit}
}

// Predict ignores th; prefix matching has no thresholds.
func (p *PrefixPredictor) Predict(current model.CareerPath, ds *model.Dataset, _ model.Thresholds) (model.Prediction, error) {
	if len(current) == 0 {
		return none(model.StrategyPrefix, current), model.ErrNoPositions
	}
	pred := PredictByPrefix(current, ds.Paths)
	pred.Examples = Examples(current, ds.Paths, p.examples)
	return pred, nil
}

// PredictByPrefix tallies the position that follows current in every path
// starting with exactly current (same order, same values) and extending past
// it. With no such path it falls back to every adjacent pair whose first
// element is the last selected position, counting each occurrence. Paths
// shorter than two steps carry no transition and are skipped.
func PredictByPrefix(current model.CareerPath, paths []model.CareerPath) model.Prediction {
	n := len(current)
	var next []string
	for _, path := range paths {
		if len(path) < 2 || len(path) <= n {
			continue
		}
		if hasPrefix(path, current) {
			next = append(next, path[n])
		}
	}
	if len(next) > 0 {
		return distribution(model.ModeExactPrefix, current, next)
	}
	if n == 0 {
		return none(model.StrategyPrefix, current)
	}

	last := current[n-1]
	for _, path := range paths {
		if len(path) < 2 {
			continue
		}
		for i := 0; i < len(path)-1; i++ {
			if path[i] == last {
				next = append(next, path[i+1])
			}
		}
	}
	if len(next) == 0 {
		return none(model.StrategyPrefix, current)
	}
	pred := distribution(model.ModeLastPosition, current, next)
	pred.LastPosition = last
	return pred
}

// Examples returns up to limit joined paths, in input order, whose text starts
// with the joined current path. This is a literal string prefix, for display only.
func Examples(current model.CareerPath, paths []model.CareerPath, limit int) []string {
	prefix := current.String()
	var out []string
	for _, path := range paths {
		if len(out) >= limit {
			break
		}
		if len(path) < 2 {
			continue
		}
		if s := path.String(); strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}

func hasPrefix(path, prefix model.CareerPath) bool {
	for i, p := range prefix {
		if path[i] != p {
			return false
		}
	}
	return true
}

// distribution ranks the distinct values of next by count (descending),
// keeping first-seen order among equal counts.
func distribution(mode model.Mode, current model.CareerPath, next []string) model.Prediction {
	counts := make(map[string]int)
	var order []string
	for _, pos := range next {
		if counts[pos] == 0 {
			order = append(order, pos)
		}
		counts[pos]++
	}

	dist := make([]model.Candidate, len(order))
	total := len(next)
	for i, pos := range order {
		dist[i] = model.Candidate{
			Position: pos,
			Count:    counts[pos],
			Percent:  float64(counts[pos]) / float64(total) * 100,
		}
	}
	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Count > dist[j].Count
	})

	return model.Prediction{
		Strategy:     model.StrategyPrefix,
		Mode:         mode,
		Current:      current,
		Distribution: dist,
		Total:        total,
	}
}
