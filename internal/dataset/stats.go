package dataset

import (
	"sort"

	"github.com/amishk599/careerpath/internal/model"
)

// StepCount is the number of non-empty cells in one step column.
type StepCount struct {
	Column string
	Count  int
}

// PositionCount is how often a position appears across all step cells.
type PositionCount struct {
	Position string
	Count    int
}

// Stats summarises a loaded table.
type Stats struct {
	Rows        int
	Paths       int
	Transitions int // paths with at least two steps
	Positions   int
	Steps       []StepCount
	Top         []PositionCount
}

// Summarize counts rows, per-step fill and the top positions (top <= 0 keeps all).
func Summarize(t *Table, ds *model.Dataset, top int) Stats {
	st := Stats{
		Rows:        len(t.Rows),
		Paths:       len(ds.Paths),
		Transitions: len(ds.Transitions()),
		Positions:   len(ds.Positions),
	}

	freq := make(map[string]int)
	for i, idx := range t.Steps {
		sc := StepCount{Column: t.StepNames()[i]}
		for _, row := range t.Rows {
			if idx >= len(row) {
				continue
			}
			cell := Clean(row[idx])
			if IsNull(cell) {
				continue
			}
			sc.Count++
			freq[cell]++
		}
		st.Steps = append(st.Steps, sc)
	}

	for pos, n := range freq {
		st.Top = append(st.Top, PositionCount{Position: pos, Count: n})
	}
	sort.Slice(st.Top, func(i, j int) bool {
		if st.Top[i].Count != st.Top[j].Count {
			return st.Top[i].Count > st.Top[j].Count
		}
		return st.Top[i].Position < st.Top[j].Position
	})
	if top > 0 && len(st.Top) > top {
		st.Top = st.Top[:top]
	}
	return st
}
