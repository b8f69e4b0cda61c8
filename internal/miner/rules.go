package miner

import (
	"sort"
	"strings"

	"github.com/amishk599/careerpath/internal/model"
)

// MaxAntecedentLen is the largest antecedent kept after filtering.
const MaxAntecedentLen = 2

// MinLift keeps only positively correlated rules (lift strictly above it).
const MinLift = 1.0

// GenerateRules mines association rules between positions.
//
// Every non-empty path becomes one transaction (set membership over
// positions; positions not listed are ignored). Frequent itemsets of up to
// MaxItemsetLen positions are mined at th.MinSupport, rules are derived with
// confidence >= th.MinConfidence, then only rules with lift > MinLift and at
// most MaxAntecedentLen antecedents are kept. The result is ordered by
// confidence, lift and support, all descending.
//
// An empty result is normal at high thresholds and is not an error.
func GenerateRules(paths []model.CareerPath, positions []string, th model.Thresholds) []model.Rule {
	index := make(map[string]int, len(positions))
	for i, p := range positions {
		index[p] = i
	}

	txs := make([]transaction, 0, len(paths))
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		tx := make(transaction, len(path))
		for _, pos := range path {
			if i, ok := index[pos]; ok {
				tx[i] = struct{}{}
			}
		}
		txs = append(txs, tx)
	}

	f := apriori(txs, len(positions), th.MinSupport, MaxItemsetLen)

	var rules []model.Rule
	for k := 2; k <= len(f.levels); k++ {
		for _, set := range f.levels[k-1] {
			rules = append(rules, rulesFrom(set, f, positions, th.MinConfidence)...)
		}
	}

	SortRules(rules)
	return rules
}

// rulesFrom derives every A → C split of set that clears minConfidence and
// the lift/antecedent filters. Splits whose subset counts are missing or zero
// are skipped.
func rulesFrom(set itemset, f *frequent, positions []string, minConfidence float64) []model.Rule {
	whole := f.counts[set.key()]
	if whole == 0 {
		return nil
	}

	var out []model.Rule
	n := len(set)
	for mask := 1; mask < (1<<n)-1; mask++ {
		var ante, cons itemset
		for i, v := range set {
			if mask&(1<<i) != 0 {
				ante = append(ante, v)
			} else {
				cons = append(cons, v)
			}
		}
		if len(ante) > MaxAntecedentLen {
			continue
		}
		ca, cc := f.counts[ante.key()], f.counts[cons.key()]
		if ca == 0 || cc == 0 {
			continue
		}

		// Ratios of integer counts keep equal rationals bit-identical, which
		// the sort's tie-breaking relies on.
		confidence := float64(whole) / float64(ca)
		lift := float64(whole*f.n) / float64(ca*cc)
		if confidence < minConfidence || lift <= MinLift {
			continue
		}
		out = append(out, model.Rule{
			Antecedents:       names(ante, positions),
			Consequents:       names(cons, positions),
			AntecedentSupport: f.support(ca),
			ConsequentSupport: f.support(cc),
			Support:           f.support(whole),
			Confidence:        confidence,
			Lift:              lift,
		})
	}
	return out
}

func names(s itemset, positions []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = positions[v]
	}
	return out
}

// SortRules orders rules by confidence, lift and support (descending), then
// by antecedent and consequent text so the order is fully deterministic.
func SortRules(rules []model.Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Lift != b.Lift {
			return a.Lift > b.Lift
		}
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		if x, y := Join(a.Antecedents), Join(b.Antecedents); x != y {
			return x < y
		}
		return Join(a.Consequents) < Join(b.Consequents)
	})
}

// Join renders a position set the way rule exports show it.
func Join(set []string) string {
	return strings.Join(set, ", ")
}
