package miner

import (
	"strings"

	"github.com/amishk599/careerpath/internal/model"
)

// RuleFilter narrows a rule list for inspection. A rule matches when any of
// its antecedent or consequent positions contains any keyword and its lift is
// at least minLift. Matching is case-insensitive; an empty keyword list
// matches every rule.
type RuleFilter struct {
	keywords []string
	minLift  float64
}

// NewRuleFilter returns a keyword/lift filter over rules.
func NewRuleFilter(keywords []string, minLift float64) *RuleFilter {
	lower := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			lower = append(lower, strings.ToLower(kw))
		}
	}
	return &RuleFilter{keywords: lower, minLift: minLift}
}

// Match reports whether r passes the filter.
func (f *RuleFilter) Match(r model.Rule) bool {
	if r.Lift < f.minLift {
		return false
	}
	if len(f.keywords) == 0 {
		return true
	}
	for _, side := range [][]string{r.Antecedents, r.Consequents} {
		for _, pos := range side {
			p := strings.ToLower(pos)
			for _, kw := range f.keywords {
				if strings.Contains(p, kw) {
					return true
				}
			}
		}
	}
	return false
}

// Apply returns the matching rules, preserving order.
func (f *RuleFilter) Apply(rules []model.Rule) []model.Rule {
	var out []model.Rule
	for _, r := range rules {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
