package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/careerpath/internal/miner"
	"github.com/amishk599/careerpath/internal/model"
	"github.com/amishk599/careerpath/internal/predict"
)

type stubSource struct {
	rules []model.Rule
	calls int
}

func (s *stubSource) Rules(*model.Dataset, model.Thresholds) []model.Rule {
	s.calls++
	return s.rules
}

type stubPredictor struct {
	strategy model.Strategy
	got      model.CareerPath
}

func (p *stubPredictor) Predict(current model.CareerPath, _ *model.Dataset, _ model.Thresholds) (model.Prediction, error) {
	p.got = current
	return model.Prediction{Strategy: p.strategy, Mode: model.ModeRule, Current: current, Next: "C", Confidence: 0.5, Lift: 1.2}, nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestExplorer() (explorerModel, *stubSource, map[model.Strategy]*stubPredictor) {
	src := &stubSource{rules: []model.Rule{{Antecedents: []string{"A"}, Consequents: []string{"C"}, Confidence: 0.5, Lift: 1.2}}}
	preds := map[model.Strategy]*stubPredictor{
		model.StrategyRules:  {strategy: model.StrategyRules},
		model.StrategyPrefix: {strategy: model.StrategyPrefix},
	}
	m := newExplorer(Options{
		Dataset:    &model.Dataset{Positions: []string{"A", "B", "C"}},
		Rules:      src,
		Predictors: map[model.Strategy]model.Predictor{model.StrategyRules: preds[model.StrategyRules], model.StrategyPrefix: preds[model.StrategyPrefix]},
		Strategy:   model.StrategyRules,
		MaxSteps:   4,
	})
	return m, src, preds
}

func send(m explorerModel, keys ...string) explorerModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(explorerModel)
	}
	return m
}

func TestPickerSelectionSkipsEmptySteps(t *testing.T) {
	p := newPicker([]string{"A", "B", "C"}, 4)
	p.slots = []int{1, 0, 3, 0}
	assert.Equal(t, model.CareerPath{"A", "C"}, p.selection())

	p.reset()
	assert.Empty(t, p.selection())
	assert.Equal(t, 0, p.active)
}

func TestPickerMoveClampsToOptions(t *testing.T) {
	p := newPicker([]string{"A", "B"}, 2)
	p.move(-1)
	assert.Equal(t, 0, p.slots[0])
	p.move(10)
	assert.Equal(t, 2, p.slots[0])
	p.nextSlot(-1)
	assert.Equal(t, 1, p.active, "slot navigation wraps")
}

func TestWindowKeepsCursorVisible(t *testing.T) {
	tests := []struct {
		cursor, n, size int
		start, end      int
	}{
		{0, 5, 10, 0, 5},
		{0, 20, 5, 0, 5},
		{10, 20, 5, 8, 13},
		{19, 20, 5, 15, 20},
	}
	for _, tt := range tests {
		start, end := window(tt.cursor, tt.n, tt.size)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
		assert.True(t, tt.cursor >= start && tt.cursor < end)
	}
}

func TestExplorerEnterWithoutSelectionWarns(t *testing.T) {
	m, src, _ := newTestExplorer()
	m = send(m, "enter")

	assert.Equal(t, viewPick, m.view)
	assert.Contains(t, m.View(), "select at least one position")
	assert.Zero(t, src.calls)
}

func TestExplorerPredictsSelectedPath(t *testing.T) {
	m, src, preds := newTestExplorer()
	// Step 1 = A, step 2 = (none), step 3 = B.
	m = send(m, "down", "tab", "tab", "down", "down", "enter")

	require.Equal(t, viewResults, m.view)
	assert.Equal(t, model.CareerPath{"A", "B"}, preds[model.StrategyRules].got)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, "C", m.prediction.Next)

	view := m.View()
	assert.Contains(t, view, "Association Rules (1)")
	assert.Contains(t, view, "A → C")
}

func TestExplorerStrategyToggleRepredicts(t *testing.T) {
	m, _, preds := newTestExplorer()
	m = send(m, "down", "enter", "s")

	assert.Equal(t, model.StrategyPrefix, m.strategy)
	assert.Equal(t, model.CareerPath{"A"}, preds[model.StrategyPrefix].got)
	assert.Equal(t, model.StrategyPrefix, m.prediction.Strategy)

	m = send(m, "esc")
	assert.Equal(t, viewPick, m.view)
	assert.True(t, strings.Contains(m.View(), "strategy: prefix"))
}

func TestRenderPredictionModes(t *testing.T) {
	none := renderPrediction(model.Prediction{Strategy: model.StrategyRules, Mode: model.ModeNone, Current: model.CareerPath{"Z"}}, 60)
	assert.Contains(t, none, "Cannot predict")

	dist := renderPrediction(model.Prediction{
		Strategy: model.StrategyPrefix, Mode: model.ModeExactPrefix, Current: model.CareerPath{"A"}, Total: 2,
		Distribution: []model.Candidate{{Position: "B", Count: 2, Percent: 100}},
		Examples:     []string{"A→B"},
	}, 60)
	assert.Contains(t, dist, "2 paths with this exact start")
	assert.Contains(t, dist, "100.0% (2)")
	assert.Contains(t, dist, "• A→B")
}

func newMinedExplorer(t *testing.T, th model.Thresholds) (explorerModel, *miner.Cache, *model.Dataset) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ds := &model.Dataset{
		ID:        "sample",
		Paths:     []model.CareerPath{{"A", "B", "C"}, {"A", "B", "D"}, {"A", "X"}},
		Positions: []string{"A", "B", "C", "D", "X"},
	}
	cache := miner.NewCache(logger)
	rules, err := predict.New(model.StrategyRules, cache, 5, logger)
	require.NoError(t, err)
	m := newExplorer(Options{
		Dataset:    ds,
		Thresholds: th,
		Rules:      cache,
		Predictors: map[model.Strategy]model.Predictor{model.StrategyRules: rules},
		Strategy:   model.StrategyRules,
		MaxSteps:   4,
	})
	return m, cache, ds
}

func TestExplorerThresholdChangeRefreshesRules(t *testing.T) {
	m, cache, ds := newMinedExplorer(t, model.Thresholds{MinSupport: 0.3, MinConfidence: 0.55})
	m = send(m, "down", "enter")
	require.Equal(t, viewResults, m.view)
	require.Equal(t, 1, cache.Len())

	m = send(m, "=")

	want := model.Thresholds{MinSupport: 0.3, MinConfidence: 0.6}
	assert.Equal(t, want, m.thresholds)
	assert.Equal(t, 2, cache.Len(), "new thresholds mine a new rule set")
	assert.Equal(t, cache.Rules(ds, want), m.rules)
	assert.Len(t, m.rules, 6)
	assert.Contains(t, m.View(), "Association Rules (6)")
	assert.Contains(t, m.View(), "confidence ≥ 0.60")
}

func TestExplorerSupportStepsOnGrid(t *testing.T) {
	m, _, _ := newMinedExplorer(t, model.Thresholds{MinSupport: 0.0024, MinConfidence: 0.1})

	m = send(m, "]")
	assert.Equal(t, 0.003, m.thresholds.MinSupport)
	m = send(m, "[", "[")
	assert.Equal(t, 0.001, m.thresholds.MinSupport)
	m = send(m, "-", "-")
	assert.Equal(t, 0.0, m.thresholds.MinConfidence)
}

func TestExplorerRejectsOutOfRangeThresholds(t *testing.T) {
	m, cache, _ := newMinedExplorer(t, model.Thresholds{MinSupport: 0.1, MinConfidence: 1})

	m = send(m, "]", "=")

	assert.Equal(t, model.Thresholds{MinSupport: 0.1, MinConfidence: 1}, m.thresholds)
	assert.Contains(t, m.View(), "min_confidence must be between 0 and 1")
	assert.Zero(t, cache.Len())

	m = send(m, "-")
	assert.Equal(t, 0.95, m.thresholds.MinConfidence)
}
