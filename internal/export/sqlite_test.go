package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/careerpath/internal/model"
)

func newTestExporter(t *testing.T) *SQLiteExporter {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "rules.db")
	s, err := NewSQLiteExporter(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRules() []model.Rule {
	return []model.Rule{
		{
			Antecedents: []string{"A", "C"}, Consequents: []string{"B"},
			AntecedentSupport: 1.0 / 3, ConsequentSupport: 2.0 / 3,
			Support: 1.0 / 3, Confidence: 1, Lift: 1.5,
		},
		{
			Antecedents: []string{"B"}, Consequents: []string{"D"},
			AntecedentSupport: 2.0 / 3, ConsequentSupport: 1.0 / 3,
			Support: 1.0 / 3, Confidence: 0.5, Lift: 1.5,
		},
	}
}

func TestSQLiteExportThenReadBack(t *testing.T) {
	s := newTestExporter(t)
	meta := Meta{Source: "paths.csv", DatasetID: "abc", Thresholds: model.Thresholds{MinSupport: 0.3}}

	require.NoError(t, s.Export(sampleRules(), meta))
	runID := s.LastRunID()
	require.NotEmpty(t, runID)

	got, err := s.Rules(runID)
	require.NoError(t, err)
	assert.Equal(t, sampleRules(), got)
}

func TestSQLiteExportRoundTripsSeparatorInNames(t *testing.T) {
	s := newTestExporter(t)
	rules := []model.Rule{{
		Antecedents: []string{"Manager, Sales", "Analyst"},
		Consequents: []string{"Director, Sales"},
		Confidence:  0.8, Lift: 2,
	}}

	require.NoError(t, s.Export(rules, Meta{Source: "bundled"}))
	got, err := s.Rules(s.LastRunID())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Manager, Sales", "Analyst"}, got[0].Antecedents)
	assert.Equal(t, []string{"Director, Sales"}, got[0].Consequents)
}

func TestSQLiteExportKeepsSeparateRuns(t *testing.T) {
	s := newTestExporter(t)

	require.NoError(t, s.Export(sampleRules(), Meta{Source: "a.csv", Thresholds: model.Thresholds{MinSupport: 0.1}}))
	first := s.LastRunID()
	require.NoError(t, s.Export(sampleRules()[:1], Meta{Source: "a.csv", Thresholds: model.Thresholds{MinSupport: 0.2}}))
	second := s.LastRunID()
	require.NotEqual(t, first, second)

	runs, err := s.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	counts := map[string]int{}
	for _, r := range runs {
		counts[r.ID] = r.Rules
	}
	assert.Equal(t, map[string]int{first: 2, second: 1}, counts)
}

func TestSQLiteExportEmptyRuleList(t *testing.T) {
	s := newTestExporter(t)

	require.NoError(t, s.Export(nil, Meta{Source: "bundled"}))
	got, err := s.Rules(s.LastRunID())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteRulesUnknownRun(t *testing.T) {
	s := newTestExporter(t)

	got, err := s.Rules("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, got)
}
