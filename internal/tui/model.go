// Package tui is a terminal front-end for the calculator: the same engine and
// keypad as the framebuffer UI, drawn with lipgloss and driven by arrow keys
// or mouse clicks.
package tui

import (
	"strings"

	"sparkcalc/sparkos/tasks/calc"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Cell geometry. Keys are bordered boxes keyW x keyH cells, keyGap apart;
// the keypad starts keysTop rows below the top of the view.
const (
	keyW    = 7
	keyH    = 3
	keyGap  = 1
	panelW  = calc.KeypadCols*keyW + (calc.KeypadCols-1)*keyGap
	panelH  = 4
	keysTop = panelH + 1
)

type Config struct {
	// Precision is the number of decimal places results keep, clamped to
	// 0..12.
	Precision int
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4A7A58")).
			Width(panelW - 2).
			Padding(0, 1).
			Align(lipgloss.Right)
	stateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#709078"))
	exprStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C8F0C8"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6060"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6060"))

	keyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(keyW - 2).
			Align(lipgloss.Center)
	focusBorder = lipgloss.Color("#FFD14A")
)

var classColors = map[calc.KeyClass]lipgloss.Color{
	calc.KeyDigit:    lipgloss.Color("#EEEEEE"),
	calc.KeyFunction: lipgloss.Color("#A0A8B8"),
	calc.KeyOperator: lipgloss.Color("#F09040"),
	calc.KeyEquals:   lipgloss.Color("#50D080"),
}

// Model is the bubbletea model for the calculator.
type Model struct {
	eng   *calc.Engine
	focus calc.Focus
	keys  keyMap
	help  help.Model

	// status holds the last dispatch error, cleared by the next press.
	status string
}

func New(cfg Config) Model {
	eng := calc.NewEngine(nil)
	eng.SetPrecision(cfg.Precision)
	return Model{
		eng:   eng,
		focus: calc.DefaultFocus,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

// Display returns the calculator's current display string.
func (m Model) Display() string { return m.eng.Display() }

// Focus returns the focused keypad position.
func (m Model) Focus() calc.Focus { return m.focus }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.focus = m.focus.Move(-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.focus = m.focus.Move(1, 0)
		case key.Matches(msg, m.keys.Left):
			m.focus = m.focus.Move(0, -1)
		case key.Matches(msg, m.keys.Right):
			m.focus = m.focus.Move(0, 1)
		case key.Matches(msg, m.keys.Press):
			m = m.press(m.focus.Key().Action)
		case key.Matches(msg, m.keys.Clear):
			m = m.press(calc.ActionClear)
		case key.Matches(msg, m.keys.Backspace):
			m = m.press(calc.ActionBackspace)
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if f, ok := hitTest(msg.X, msg.Y); ok {
			m.focus = f
			m = m.press(f.Key().Action)
		}
	}
	return m, nil
}

func (m Model) press(a calc.Action) Model {
	m.status = ""
	if err := m.eng.Dispatch(a); err != nil {
		m.status = err.Error()
	}
	return m
}

// hitTest maps a terminal cell to the key drawn there.
func hitTest(x, y int) (calc.Focus, bool) {
	if x < 0 || y < keysTop {
		return calc.Focus{}, false
	}
	col, dx := x/(keyW+keyGap), x%(keyW+keyGap)
	row := (y - keysTop) / keyH
	if dx >= keyW || col >= calc.KeypadCols || row >= calc.KeypadRows {
		return calc.Focus{}, false
	}
	return calc.Focus{Row: row, Col: col}, true
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewPanel())
	b.WriteString("\n\n")
	b.WriteString(m.viewKeypad())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewPanel() string {
	st := m.eng.State()
	expr := fitLeft(m.eng.Display(), panelW-4)
	style := exprStyle
	if st == calc.StateError {
		style = errorStyle
	}
	return panelStyle.Render(stateStyle.Render(st.String()) + "\n" + style.Render(expr))
}

func (m Model) viewKeypad() string {
	rows := make([]string, 0, calc.KeypadRows)
	for r := 0; r < calc.KeypadRows; r++ {
		cells := make([]string, 0, 2*calc.KeypadCols-1)
		for c := 0; c < calc.KeypadCols; c++ {
			if c > 0 {
				cells = append(cells, strings.Repeat(" ", keyGap))
			}
			f := calc.Focus{Row: r, Col: c}
			k := f.Key()
			s := keyStyle.Foreground(classColors[k.Class]).BorderForeground(classColors[k.Class])
			if f == m.focus {
				s = s.Border(lipgloss.ThickBorder()).BorderForeground(focusBorder).Bold(true)
			}
			cells = append(cells, s.Render(k.PlainLabel()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// fitLeft keeps the tail of s that fits in n cells.
func fitLeft(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return "…" + string(rs[len(rs)-n+1:])
}

// Run starts the terminal UI and blocks until the user quits.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
