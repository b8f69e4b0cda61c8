package dataset

import (
	"sort"

	"github.com/amishk599/careerpath/internal/model"
)

// nullTokens are cell values treated as missing, matching what spreadsheet
// exports commonly write for empty cells.
var nullTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"#N/A": true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

// IsNull reports whether a cleaned cell counts as missing.
func IsNull(cell string) bool {
	return nullTokens[cell]
}

// PathOf returns the non-null step cells of row in step-column order.
// Missing cells are skipped without breaking the sequence.
func PathOf(row []string, steps []int) model.CareerPath {
	var path model.CareerPath
	for _, idx := range steps {
		if idx >= len(row) {
			continue
		}
		cell := Clean(row[idx])
		if IsNull(cell) {
			continue
		}
		path = append(path, cell)
	}
	return path
}

// Extract builds the dataset view of t: one career path per row with at least
// one step, in table order, plus the distinct sorted position list.
func Extract(t *Table) *model.Dataset {
	ds := &model.Dataset{
		ID:     t.hash,
		Source: t.Source,
	}
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		path := PathOf(row, t.Steps)
		if len(path) == 0 {
			continue
		}
		ds.Paths = append(ds.Paths, path)
		for _, pos := range path {
			seen[pos] = struct{}{}
		}
	}
	ds.Positions = make([]string, 0, len(seen))
	for pos := range seen {
		ds.Positions = append(ds.Positions, pos)
	}
	sort.Strings(ds.Positions)
	return ds
}

// Open loads the table at path (bundled default when empty) and extracts it.
func Open(path string, opts Options) (*Table, *model.Dataset, error) {
	t, err := Load(path, opts)
	if err != nil {
		return nil, nil, err
	}
	ds := Extract(t)
	if len(ds.Paths) == 0 {
		return nil, nil, &model.DataFormatError{Source: t.Source, Reason: "no career paths in step columns"}
	}
	return t, ds, nil
}
