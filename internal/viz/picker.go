package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/rotsim/internal/sim"
)

// BuildFunc constructs a ready engine for a named scenario.
type BuildFunc func(name string) (*sim.Engine, error)

const (
	stateMenu = iota
	stateSim
)

// Picker lists scenarios and hands the chosen one to a live Model.
type Picker struct {
	state  int
	cursor int
	names  []string
	info   map[string]string
	build  BuildFunc
	err    error
	live   Model
}

// NewPicker offers names in order; info holds an optional one-line
// description per name.
func NewPicker(names []string, info map[string]string, build BuildFunc) Picker {
	return Picker{names: names, info: info, build: build}
}

func (p Picker) Init() tea.Cmd { return nil }

// Live returns the running model once a scenario has been chosen.
func (p Picker) Live() (Model, bool) { return p.live, p.state == stateSim }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.state == stateSim {
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.names) == 0 {
			return p, nil
		}
		name := p.names[p.cursor]
		engine, err := p.build(name)
		if err != nil {
			p.err = fmt.Errorf("%s: %w", name, err)
			return p, nil
		}
		p.err = nil
		p.live = NewModel(engine, name)
		p.state = stateSim
		return p, p.live.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	if p.state == stateSim {
		return p.live.View()
	}
	var b strings.Builder
	head := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	b.WriteString("\n\n    " + head.Render("ROTSIM") + "\n    " + sub.Render("rigid body rotation") + "\n    " + sub.Render("─────────────────────────") + "\n\n")

	sel := lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(CurrentTheme.Accent)
	for i, name := range p.names {
		line := fmt.Sprintf("%-18s", name)
		if i == p.cursor {
			b.WriteString("    " + head.Render("▸") + " " + sel.Render(line) + "  " + desc.Render(p.info[name]) + "\n")
		} else {
			b.WriteString("      " + sub.Render(line) + "  " + sub.Render(p.info[name]) + "\n")
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + sub.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

// Run starts a full-screen program for m, which is either a Model or a
// Picker.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
