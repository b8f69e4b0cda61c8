package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/careerpath/internal/config"
	"github.com/amishk599/careerpath/internal/miner"
	"github.com/amishk599/careerpath/internal/model"
	"github.com/amishk599/careerpath/internal/report"
)

// Lines reserved around the option list in the picker view.
const pickerChrome = 10

// Threshold adjustment steps.
const (
	supportStep    = 0.001
	confidenceStep = 0.05
)

type viewState int

const (
	viewPick viewState = iota
	viewResults
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(14)

	nextStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	ruleStyle = lipgloss.NewStyle().
			Bold(true)

	explainedRuleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	ruleMetricStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Options configures the explorer.
type Options struct {
	Dataset    *model.Dataset
	Thresholds model.Thresholds
	Rules      model.RuleSource
	Predictors map[model.Strategy]model.Predictor
	Strategy   model.Strategy
	MaxSteps   int
}

type explorerModel struct {
	opts       Options
	picker     picker
	strategy   model.Strategy
	thresholds model.Thresholds
	view       viewState
	warning    string

	width  int
	height int
	ready  bool

	resultViewport viewport.Model
	rulesViewport  viewport.Model
	activePane     int // 0=prediction, 1=rules

	prediction model.Prediction
	rules      []model.Rule
}

func newExplorer(opts Options) explorerModel {
	return explorerModel{
		opts:       opts,
		picker:     newPicker(opts.Dataset.Positions, opts.MaxSteps),
		strategy:   opts.Strategy,
		thresholds: opts.Thresholds,
	}
}

func (m explorerModel) Init() tea.Cmd {
	return nil
}

func (m explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		if m.view == viewResults {
			return m.updateResultsView(msg)
		}
		return m.updatePickView(msg)
	}
	return m, nil
}

func (m explorerModel) updatePickView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.picker.move(-1)
	case "down", "j":
		m.picker.move(1)
	case "pgup":
		m.picker.move(-m.visibleOptions())
	case "pgdown":
		m.picker.move(m.visibleOptions())
	case "tab", "right", "l":
		m.picker.nextSlot(1)
	case "shift+tab", "left", "h":
		m.picker.nextSlot(-1)
	case "x", "backspace":
		m.picker.clear()
	case "r":
		m.picker.reset()
	case "s":
		m.toggleStrategy()
	case "[", "]", "-", "+", "=":
		m.adjustThresholds(msg.String())
		return m, nil
	case "enter":
		if len(m.picker.selection()) == 0 {
			m.warning = "select at least one position"
			return m, nil
		}
		m.runPrediction()
		m.view = viewResults
		m.activePane = 0
		return m, nil
	}
	m.warning = ""
	return m, nil
}

func (m explorerModel) updateResultsView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "b":
		m.view = viewPick
		return m, nil
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		return m, nil
	case "s":
		m.toggleStrategy()
		m.runPrediction()
		return m, nil
	case "[", "]", "-", "+", "=":
		if m.adjustThresholds(msg.String()) {
			m.runPrediction()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.activePane == 0 {
		m.resultViewport, cmd = m.resultViewport.Update(msg)
	} else {
		m.rulesViewport, cmd = m.rulesViewport.Update(msg)
	}
	return m, cmd
}

func (m *explorerModel) toggleStrategy() {
	if m.strategy == model.StrategyRules {
		m.strategy = model.StrategyPrefix
	} else {
		m.strategy = model.StrategyRules
	}
}

// adjustThresholds moves min support or min confidence one step on its grid.
// Out-of-range values are rejected with a warning and leave the thresholds
// unchanged. It reports whether the thresholds changed.
func (m *explorerModel) adjustThresholds(key string) bool {
	th := m.thresholds
	switch key {
	case "[":
		th.MinSupport = stepValue(th.MinSupport, supportStep, -1)
	case "]":
		th.MinSupport = stepValue(th.MinSupport, supportStep, 1)
	case "-":
		th.MinConfidence = stepValue(th.MinConfidence, confidenceStep, -1)
	case "+", "=":
		th.MinConfidence = stepValue(th.MinConfidence, confidenceStep, 1)
	}
	if err := config.ValidateThresholds(th); err != nil {
		m.warning = err.Error()
		return false
	}
	m.warning = ""
	if th == m.thresholds {
		return false
	}
	m.thresholds = th
	return true
}

// stepValue snaps v to the step grid and moves it dir steps.
func stepValue(v, step float64, dir int) float64 {
	n := math.Round(v/step) + float64(dir)
	return math.Round(n*step*1e6) / 1e6
}

// runPrediction queries the active strategy for the current selection and
// refreshes both panes.
func (m *explorerModel) runPrediction() {
	current := m.picker.selection()
	m.rules = m.opts.Rules.Rules(m.opts.Dataset, m.thresholds)

	p, ok := m.opts.Predictors[m.strategy]
	if !ok {
		m.warning = fmt.Sprintf("%v: %s", model.ErrUnknownStrategy, m.strategy)
		m.prediction = model.Prediction{Strategy: m.strategy, Mode: model.ModeNone, Current: current}
	} else {
		pred, err := p.Predict(current, m.opts.Dataset, m.thresholds)
		m.warning = ""
		if err != nil && !errors.Is(err, model.ErrNoPositions) {
			m.warning = err.Error()
		}
		m.prediction = pred
	}

	if !m.ready {
		m.recalcLayout()
	}
	m.recalcContent()
	m.resultViewport.SetYOffset(0)
	m.rulesViewport.SetYOffset(0)
}

func (m explorerModel) visibleOptions() int {
	if m.height == 0 {
		return 15
	}
	return max(m.height-pickerChrome, 3)
}

func (m *explorerModel) recalcLayout() {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = 100, 30
	}

	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((width-5)/2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(height-4, 5)

	if !m.ready {
		m.resultViewport = viewport.New(paneWidth, paneHeight)
		m.rulesViewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.resultViewport.Width = paneWidth
		m.resultViewport.Height = paneHeight
		m.rulesViewport.Width = paneWidth
		m.rulesViewport.Height = paneHeight
	}
	m.recalcContent()
}

func (m *explorerModel) recalcContent() {
	m.resultViewport.SetContent(renderPrediction(m.prediction, m.resultViewport.Width))
	m.rulesViewport.SetContent(renderRules(m.rules, m.prediction.Explanation))
}

func (m explorerModel) View() string {
	if m.view == viewResults && m.ready {
		return m.viewResults()
	}
	return m.picker.view(m.strategy, m.thresholds, m.visibleOptions(), m.warning)
}

func (m explorerModel) viewResults() string {
	paneWidth := m.resultViewport.Width

	leftHeader := fmt.Sprintf(" Prediction (%s)", m.strategy)
	rightHeader := fmt.Sprintf(" Association Rules (%d)", len(m.rules))

	var leftHeaderRendered, rightHeaderRendered string
	var leftBorder, rightBorder lipgloss.Style
	if m.activePane == 0 {
		leftHeaderRendered = activeHeaderStyle.Render(leftHeader)
		rightHeaderRendered = inactiveHeaderStyle.Render(rightHeader)
		leftBorder = activeBorderStyle.Width(paneWidth)
		rightBorder = inactiveBorderStyle.Width(paneWidth)
	} else {
		leftHeaderRendered = inactiveHeaderStyle.Render(leftHeader)
		rightHeaderRendered = activeHeaderStyle.Render(rightHeader)
		leftBorder = inactiveBorderStyle.Width(paneWidth)
		rightBorder = activeBorderStyle.Width(paneWidth)
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(leftHeaderRendered),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(rightHeaderRendered),
	)
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		leftBorder.Render(m.resultViewport.View()),
		" ",
		rightBorder.Render(m.rulesViewport.View()),
	)

	statusText := fmt.Sprintf(" support ≥ %.3f | confidence ≥ %.2f    Tab switch  ↑/↓ scroll  s strategy  [/] support  -/+ confidence  Esc back  q quit",
		m.thresholds.MinSupport, m.thresholds.MinConfidence)
	if m.warning != "" {
		statusText = " ⚠ " + m.warning + "   " + statusText
	}
	statusBar := statusBarStyle.Width(max(m.width, paneWidth*2+5)).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func renderPrediction(p model.Prediction, width int) string {
	var b strings.Builder

	addField := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	addField("Path", p.Current.String())
	b.WriteByte('\n')

	switch p.Mode {
	case model.ModeRule:
		addField("Next", nextStyle.Render(" "+p.Next+" "))
		addField("Confidence", fmt.Sprintf("%.1f%%", p.Confidence*100))
		addField("Support", fmt.Sprintf("%.1f%%", p.Support*100))
		addField("Lift", fmt.Sprintf("%.2f", p.Lift))
		if p.Explanation != nil {
			b.WriteByte('\n')
			addField("Because", fmt.Sprintf("%s → %s", miner.Join(p.Explanation.Antecedents), miner.Join(p.Explanation.Consequents)))
		}
	case model.ModeExactPrefix, model.ModeLastPosition:
		if p.Mode == model.ModeExactPrefix {
			addField("Matched", fmt.Sprintf("%d paths with this exact start", p.Total))
		} else {
			b.WriteString(hintStyle.Render("No path starts with this exact sequence.") + "\n")
			addField("After", fmt.Sprintf("%s (%d transitions)", p.LastPosition, p.Total))
		}
		b.WriteByte('\n')
		barWidth := max(min(width-34, report.BarWidth), 5)
		for _, c := range p.Distribution {
			b.WriteString(fmt.Sprintf("%s\n  %s %5.1f%% (%d)\n", c.Position, barStyle.Render(report.Bar(c.Percent, barWidth)), c.Percent, c.Count))
		}
	default:
		b.WriteString(hintStyle.Render("Cannot predict a next position for this path.") + "\n")
		if p.Strategy == model.StrategyRules {
			b.WriteString(hintStyle.Render("No matching rules found. Press s to try prefix matching.") + "\n")
		}
	}

	if len(p.Examples) > 0 {
		b.WriteByte('\n')
		b.WriteString(labelStyle.Render("Examples") + "\n")
		for _, ex := range p.Examples {
			b.WriteString("  • " + ex + "\n")
		}
	}
	return b.String()
}

func renderRules(rules []model.Rule, explained *model.Rule) string {
	if len(rules) == 0 {
		return "  (no rules found)"
	}

	var b strings.Builder
	for i, r := range rules {
		line := fmt.Sprintf("%s → %s", miner.Join(r.Antecedents), miner.Join(r.Consequents))
		if explained != nil && sameRule(r, *explained) {
			b.WriteString("> " + explainedRuleStyle.Render(line))
		} else {
			b.WriteString("  " + ruleStyle.Render(line))
		}
		b.WriteByte('\n')
		b.WriteString("  " + ruleMetricStyle.Render(fmt.Sprintf("sup %.3f  conf %.2f  lift %.2f", r.Support, r.Confidence, r.Lift)))
		b.WriteByte('\n')
		if i < len(rules)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sameRule(a, b model.Rule) bool {
	return miner.Join(a.Antecedents) == miner.Join(b.Antecedents) &&
		miner.Join(a.Consequents) == miner.Join(b.Consequents)
}

// RunExplorer launches the interactive explorer in the alternate screen.
func RunExplorer(opts Options) error {
	p := tea.NewProgram(newExplorer(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
