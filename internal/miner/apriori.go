package miner

import (
	"strconv"
	"strings"
)

// MaxItemsetLen caps the size of mined itemsets.
const MaxItemsetLen = 3

// itemset is a strictly increasing list of item indexes.
type itemset []int

func (s itemset) key() string {
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// without returns s minus the element at position i.
func (s itemset) without(i int) itemset {
	out := make(itemset, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// transaction is the set-valued view of a path: order dropped, duplicates collapsed.
type transaction map[int]struct{}

func (t transaction) containsAll(s itemset) bool {
	for _, v := range s {
		if _, ok := t[v]; !ok {
			return false
		}
	}
	return true
}

// frequent holds every mined itemset with its transaction count.
type frequent struct {
	n      int // number of transactions
	counts map[string]int
	levels [][]itemset // levels[k-1] holds the frequent k-itemsets, ascending
}

func (f *frequent) support(count int) float64 {
	return float64(count) / float64(f.n)
}

// apriori mines itemsets up to maxLen whose support (fraction of transactions
// containing them) is at least minSupport. Itemsets that never occur are not
// reported, even at minSupport 0.
func apriori(txs []transaction, items int, minSupport float64, maxLen int) *frequent {
	f := &frequent{n: len(txs), counts: make(map[string]int)}
	if f.n == 0 || items == 0 {
		return f
	}

	keep := func(count int) bool {
		return count > 0 && f.support(count) >= minSupport
	}

	singles := make([]int, items)
	for _, tx := range txs {
		for it := range tx {
			singles[it]++
		}
	}
	var level []itemset
	for it, c := range singles {
		if keep(c) {
			s := itemset{it}
			level = append(level, s)
			f.counts[s.key()] = c
		}
	}

	for k := 1; len(level) > 0; k++ {
		f.levels = append(f.levels, level)
		if k >= maxLen {
			break
		}
		var next []itemset
		for _, cand := range candidates(level, f.counts) {
			c := 0
			for _, tx := range txs {
				if tx.containsAll(cand) {
					c++
				}
			}
			if keep(c) {
				next = append(next, cand)
				f.counts[cand.key()] = c
			}
		}
		level = next
	}
	return f
}

// candidates joins k-itemsets sharing their first k-1 items and prunes any
// candidate with an infrequent k-subset. level must be in ascending order.
func candidates(level []itemset, counts map[string]int) []itemset {
	var out []itemset
	for i := 0; i < len(level); i++ {
		for j := i + 1; j < len(level); j++ {
			a, b := level[i], level[j]
			k := len(a)
			if !samePrefix(a, b, k-1) {
				break
			}
			cand := make(itemset, 0, k+1)
			cand = append(cand, a...)
			cand = append(cand, b[k-1])
			if allSubsetsFrequent(cand, counts) {
				out = append(out, cand)
			}
		}
	}
	return out
}

func samePrefix(a, b itemset, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func allSubsetsFrequent(s itemset, counts map[string]int) bool {
	for i := range s {
		if _, ok := counts[s.without(i).key()]; !ok {
			return false
		}
	}
	return true
}
