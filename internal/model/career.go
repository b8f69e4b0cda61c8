package model

import "strings"

// PathSeparator joins positions when a path is displayed or matched as text.
const PathSeparator = "→"

// CareerPath is one employee's ordered sequence of positions (1-4 steps).
// Entries are trimmed and never empty.
type CareerPath []string

// String joins the path with PathSeparator.
func (p CareerPath) String() string {
	return strings.Join(p, PathSeparator)
}

// Contains reports whether pos appears anywhere in the path.
func (p CareerPath) Contains(pos string) bool {
	for _, q := range p {
		if q == pos {
			return true
		}
	}
	return false
}

// Dataset is the extracted, read-only view of one loaded table.
type Dataset struct {
	ID        string       // content hash of the decoded table, used as a cache key
	Source    string       // file path, or "bundled" for the embedded default
	Paths     []CareerPath // table order, rows without any step excluded
	Positions []string     // distinct, sorted
}

// Transitions returns the paths that carry next-step information (len >= 2).
func (d *Dataset) Transitions() []CareerPath {
	out := make([]CareerPath, 0, len(d.Paths))
	for _, p := range d.Paths {
		if len(p) >= 2 {
			out = append(out, p)
		}
	}
	return out
}

// Thresholds parameterise rule mining.
type Thresholds struct {
	MinSupport    float64 // [0, 0.1]
	MinConfidence float64 // [0, 1]
}

// Rule is an association rule antecedents → consequents.
type Rule struct {
	Antecedents       []string // sorted, 1-2 entries after filtering
	Consequents       []string // sorted, non-empty
	AntecedentSupport float64
	ConsequentSupport float64
	Support           float64
	Confidence        float64
	Lift              float64
}

// Strategy names a prediction strategy.
type Strategy string

const (
	StrategyRules  Strategy = "rules"
	StrategyPrefix Strategy = "prefix"
)

// Mode describes how a prediction was reached.
type Mode string

const (
	ModeNone         Mode = "none"
	ModeRule         Mode = "rule"
	ModeExactPrefix  Mode = "exact-prefix"
	ModeLastPosition Mode = "last-position"
)

// Candidate is one entry of a next-position frequency distribution.
type Candidate struct {
	Position string
	Count    int
	Percent  float64 // 0-100
}

// Prediction is the outcome of one query. Mode == ModeNone means "cannot predict".
type Prediction struct {
	Strategy Strategy
	Mode     Mode
	Current  CareerPath

	// Rule-Miner result.
	Next        string
	Confidence  float64
	Support     float64
	Lift        float64
	Explanation *Rule // strict-containment rule backing Next; may be nil

	// Prefix-Matcher result.
	Distribution []Candidate // ranked by count desc
	Total        int
	LastPosition string   // set in ModeLastPosition
	Examples     []string // up to 5 joined example paths, display only
}

// OK reports whether the prediction produced a next position.
func (p Prediction) OK() bool {
	return p.Mode != ModeNone && p.Mode != ""
}

// Best returns the top predicted position, or "" when there is none.
func (p Prediction) Best() string {
	if p.Next != "" {
		return p.Next
	}
	if len(p.Distribution) > 0 {
		return p.Distribution[0].Position
	}
	return ""
}

// Predictor predicts the next position for the selected prefix.
type Predictor interface {
	Predict(current CareerPath, ds *Dataset, th Thresholds) (Prediction, error)
}

// RuleSource returns the ranked rule set for a dataset at the given thresholds.
type RuleSource interface {
	Rules(ds *Dataset, th Thresholds) []Rule
}

// Reporter publishes a prediction (logs, terminal, ...).
type Reporter interface {
	Report(p Prediction) error
}
