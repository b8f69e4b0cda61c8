package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/careerpath/internal/dataset"
	"github.com/amishk599/careerpath/internal/export"
	"github.com/amishk599/careerpath/internal/miner"
	"github.com/amishk599/careerpath/internal/model"
)

// BarWidth is the width, in cells, of a 100% distribution bar.
const BarWidth = 30

// Renderer writes human-readable reports. Styling is dropped automatically
// when w is not a terminal.
type Renderer struct {
	w io.Writer

	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	dim   lipgloss.Style
	bar   lipgloss.Style
}

// NewRenderer returns a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	re := lipgloss.NewRenderer(w)
	return &Renderer{
		w:     w,
		title: re.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		label: re.NewStyle().Foreground(lipgloss.Color("245")),
		value: re.NewStyle().Bold(true),
		dim:   re.NewStyle().Foreground(lipgloss.Color("240")),
		bar:   re.NewStyle().Foreground(lipgloss.Color("33")),
	}
}

// Bar draws a horizontal bar for percent (0-100) scaled to width cells.
func Bar(percent float64, width int) string {
	n := int(percent/100*float64(width) + 0.5)
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	if n == 0 && percent > 0 {
		n = 1
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// Prediction writes the outcome of one query.
func (r *Renderer) Prediction(p model.Prediction) {
	fmt.Fprintf(r.w, "%s %s\n", r.label.Render("Current path:"), r.value.Render(p.Current.String()))

	switch p.Mode {
	case model.ModeRule:
		fmt.Fprintf(r.w, "%s %s\n", r.label.Render("Predicted next position:"), r.title.Render(p.Next))
		fmt.Fprintf(r.w, "  confidence %s  support %s  lift %s\n",
			r.value.Render(percent(p.Confidence)), r.value.Render(percent(p.Support)), r.value.Render(fmt.Sprintf("%.2f", p.Lift)))
		if p.Explanation != nil {
			fmt.Fprintf(r.w, "%s %s → %s (confidence %s, lift %.2f)\n", r.label.Render("Because:"),
				miner.Join(p.Explanation.Antecedents), miner.Join(p.Explanation.Consequents),
				percent(p.Explanation.Confidence), p.Explanation.Lift)
		}
	case model.ModeExactPrefix, model.ModeLastPosition:
		if p.Mode == model.ModeExactPrefix {
			fmt.Fprintf(r.w, "%s\n", r.title.Render(fmt.Sprintf("Next positions after this exact path (%d paths)", p.Total)))
		} else {
			fmt.Fprintf(r.w, "%s\n", r.dim.Render("No path starts with this exact sequence."))
			fmt.Fprintf(r.w, "%s\n", r.title.Render(fmt.Sprintf("Next positions after %q (%d transitions)", p.LastPosition, p.Total)))
		}
		r.distribution(p.Distribution)
	default:
		fmt.Fprintf(r.w, "%s\n", r.dim.Render("Cannot predict a next position for this path."))
		if p.Strategy == model.StrategyRules {
			fmt.Fprintf(r.w, "%s\n", r.dim.Render("No matching rules found; try lowering --min-support or --min-confidence."))
		}
	}

	if len(p.Examples) > 0 {
		fmt.Fprintf(r.w, "%s\n", r.label.Render("Example paths:"))
		for _, ex := range p.Examples {
			fmt.Fprintf(r.w, "  %s\n", ex)
		}
	}
}

func (r *Renderer) distribution(cands []model.Candidate) {
	width := 0
	for _, c := range cands {
		if w := lipgloss.Width(c.Position); w > width {
			width = w
		}
	}
	for _, c := range cands {
		pad := strings.Repeat(" ", width-lipgloss.Width(c.Position))
		fmt.Fprintf(r.w, "  %s%s %s %5.1f%% (%d)\n", c.Position, pad, r.bar.Render(Bar(c.Percent, BarWidth)), c.Percent, c.Count)
	}
}

// Rules writes a ranked rule table; limit <= 0 writes all rules.
func (r *Renderer) Rules(rules []model.Rule, limit int) {
	if len(rules) == 0 {
		fmt.Fprintf(r.w, "%s\n", r.dim.Render("No rules found."))
		return
	}
	shown := rules
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	fmt.Fprintf(r.w, "%s\n", r.title.Render(fmt.Sprintf("%d association rules", len(rules))))
	for i, rule := range shown {
		fmt.Fprintf(r.w, "%3d. %s → %s\n", i+1, miner.Join(rule.Antecedents), r.value.Render(miner.Join(rule.Consequents)))
		fmt.Fprintf(r.w, "     %s\n", r.dim.Render(fmt.Sprintf("support %s  confidence %s  lift %.2f",
			percent(rule.Support), percent(rule.Confidence), rule.Lift)))
	}
	if len(shown) < len(rules) {
		fmt.Fprintf(r.w, "%s\n", r.dim.Render(fmt.Sprintf("... %d more", len(rules)-len(shown))))
	}
}

// Exports lists recorded SQLite export runs, newest first.
func (r *Renderer) Exports(runs []export.Run) {
	if len(runs) == 0 {
		fmt.Fprintf(r.w, "%s\n", r.dim.Render("No exports recorded."))
		return
	}
	for _, run := range runs {
		fmt.Fprintf(r.w, "%s  %s\n", r.value.Render(run.ID), run.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(r.w, "  %s\n", r.dim.Render(fmt.Sprintf("%s  support ≥ %g  confidence ≥ %g  %d rules",
			run.Source, run.MinSupport, run.MinConfidence, run.Rules)))
	}
}

// Positions writes one position per line.
func (r *Renderer) Positions(positions []string) {
	for _, p := range positions {
		fmt.Fprintln(r.w, p)
	}
}

// Stats writes a dataset summary.
func (r *Renderer) Stats(source string, st dataset.Stats) {
	fmt.Fprintf(r.w, "%s\n", r.title.Render("Dataset "+source))
	fmt.Fprintf(r.w, "  %s %d\n", r.label.Render("rows:       "), st.Rows)
	fmt.Fprintf(r.w, "  %s %d\n", r.label.Render("paths:      "), st.Paths)
	fmt.Fprintf(r.w, "  %s %d\n", r.label.Render("transitions:"), st.Transitions)
	fmt.Fprintf(r.w, "  %s %d\n", r.label.Render("positions:  "), st.Positions)
	if len(st.Steps) > 0 {
		fmt.Fprintf(r.w, "%s\n", r.label.Render("Filled cells per step:"))
		for _, s := range st.Steps {
			fmt.Fprintf(r.w, "  %-10s %d\n", s.Column, s.Count)
		}
	}
	if len(st.Top) > 0 {
		fmt.Fprintf(r.w, "%s\n", r.label.Render("Most common positions:"))
		for _, pc := range st.Top {
			fmt.Fprintf(r.w, "  %4d  %s\n", pc.Count, pc.Position)
		}
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
