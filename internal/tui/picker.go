package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/careerpath/internal/model"
)

// NoneLabel is the picker entry meaning "no position at this step".
const NoneLabel = "(none)"

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)

	slotStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("245"))

	activeSlotStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 0, 0, 2)
)

// picker holds the ordered step selection. Slot values index into options,
// where index 0 is NoneLabel.
type picker struct {
	options []string
	slots   []int
	active  int
}

func newPicker(positions []string, steps int) picker {
	if steps < 1 {
		steps = 1
	}
	options := make([]string, 0, len(positions)+1)
	options = append(options, NoneLabel)
	options = append(options, positions...)
	return picker{options: options, slots: make([]int, steps)}
}

// selection returns the chosen positions in step order, skipping empty steps.
func (p picker) selection() model.CareerPath {
	var path model.CareerPath
	for _, idx := range p.slots {
		if idx > 0 {
			path = append(path, p.options[idx])
		}
	}
	return path
}

func (p *picker) move(delta int) {
	p.slots[p.active] = clamp(p.slots[p.active]+delta, 0, len(p.options)-1)
}

func (p *picker) nextSlot(delta int) {
	p.active = (p.active + delta + len(p.slots)) % len(p.slots)
}

func (p *picker) clear() {
	p.slots[p.active] = 0
}

func (p *picker) reset() {
	for i := range p.slots {
		p.slots[i] = 0
	}
	p.active = 0
}

// view renders the slot row and a window of options around the cursor of the
// active slot.
func (p picker) view(strategy model.Strategy, th model.Thresholds, visible int, warning string) string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render(fmt.Sprintf("Career Path Explorer: choose up to %d positions in order", len(p.slots))))
	b.WriteByte('\n')

	slots := make([]string, len(p.slots))
	for i, idx := range p.slots {
		label := fmt.Sprintf("Step %d: %s", i+1, p.options[idx])
		if i == p.active {
			slots[i] = activeSlotStyle.Render(label)
		} else {
			slots[i] = slotStyle.Render(label)
		}
	}
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, slots...) + "\n\n")

	cursor := p.slots[p.active]
	start, end := window(cursor, len(p.options), visible)
	for i := start; i < end; i++ {
		if i == cursor {
			b.WriteString(pickerSelectedStyle.Render("> "+p.options[i]) + "\n")
		} else {
			b.WriteString(pickerItemStyle.Render(p.options[i]) + "\n")
		}
	}

	path := p.selection()
	current := NoneLabel
	if len(path) > 0 {
		current = path.String()
	}
	b.WriteString(pickerHintStyle.Render(fmt.Sprintf("path: %s    strategy: %s    support ≥ %.3f    confidence ≥ %.2f",
		current, strategy, th.MinSupport, th.MinConfidence)))
	b.WriteByte('\n')
	if warning != "" {
		b.WriteString(warnStyle.Render("⚠ "+warning) + "\n")
	}
	b.WriteString(pickerHintStyle.Render("↑/↓ choose  ←/→/Tab step  x clear  r reset  s strategy  [/] support  -/+ confidence  enter predict  q quit"))
	return b.String()
}

// window returns the [start, end) range of n items, at most size long, that
// keeps cursor visible.
func window(cursor, n, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := clamp(cursor-size/2, 0, n-size)
	return start, start + size
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
