package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsphweid/diatonicpad/chord"
	"github.com/jsphweid/diatonicpad/model"
	"github.com/jsphweid/diatonicpad/session"
	"github.com/jsphweid/diatonicpad/theory"
)

const (
	refreshInterval = 100 * time.Millisecond
	recentEvents    = 8
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7dcfff"))
	padStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeStyle = padStyle.BorderForeground(lipgloss.Color("#9ece6a"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
)

type Model struct {
	Session  *session.Session
	message  string
	failed   bool
	last     int
	quitting bool
}

type tickMsg time.Time

// resultMsg carries the outcome of a save, load or export.
type resultMsg struct {
	text string
	err  error
}

func NewModel(s *session.Session) Model {
	return Model{Session: s, last: -1}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case tickMsg:
		return m, tick()

	case resultMsg:
		m.report(msg.text, msg.err)
	}
	return m, nil
}

func (m *Model) report(text string, err error) {
	if err != nil {
		m.message, m.failed = err.Error(), true
		return
	}
	m.message, m.failed = text, false
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	s := m.Session
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		s.StopAll()
		return m, tea.Quit

	case "1", "2", "3", "4", "5", "6", "7":
		degree := int(key[0] - '1')
		res, err := s.Trigger(degree, 1)
		if err == nil {
			m.last = degree
			text := res.Chord.Name()
			if !res.Played {
				text += " (no audio)"
			}
			m.report(text, nil)
		} else {
			m.report("", err)
		}

	case "u":
		m.report(changed(s.Undo(), "undo"), nil)
	case "r":
		m.report(changed(s.Redo(), "redo"), nil)
	case "c":
		s.ClearHistory()
		m.report("history cleared", nil)
	case "x":
		s.StopAll()
		m.report("all voices stopped", nil)

	case "t":
		m.report("", s.ToggleTension(7))
	case "n":
		m.report("", s.ToggleTension(9))
	case "v":
		m.update(func(c *model.MusicalContext) { c.Voicing = cycle(model.Voicings, c.Voicing, 1) })
	case "i":
		m.update(func(c *model.MusicalContext) { c.Inversion = cycle(model.Inversions, c.Inversion, 1) })
	case "k", "K":
		step := 1
		if key == "K" {
			step = -1
		}
		m.update(func(c *model.MusicalContext) { c.Tonic = cycle(theory.Keys, c.Tonic, step) })
	case "m", "M":
		step := 1
		if key == "M" {
			step = -1
		}
		m.update(func(c *model.MusicalContext) { c.Mode = cycle(theory.Modes, c.Mode, step) })
	case "o":
		m.report("", s.SetOctave(s.Context().OctaveBase+1))
	case "O":
		m.report("", s.SetOctave(s.Context().OctaveBase-1))

	case "s":
		return m, func() tea.Msg {
			p, err := s.Save(context.Background(), "")
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{text: "saved " + p.Name}
		}
	case "l":
		return m, func() tea.Msg {
			p, err := s.LoadLatest(context.Background())
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{text: "loaded " + p.Name}
		}
	case "e":
		return m, func() tea.Msg {
			path, err := s.Export()
			return resultMsg{text: "exported " + path, err: err}
		}
	}
	return m, nil
}

func (m *Model) update(f func(*model.MusicalContext)) {
	m.report("", m.Session.Update(f))
}

func changed(ok bool, action string) string {
	if ok {
		return action
	}
	return "nothing to " + action
}

// cycle returns the element step places away from cur, wrapping around.
func cycle(list []string, cur string, step int) string {
	for i, v := range list {
		if v == cur {
			n := len(list)
			return list[((i+step)%n+n)%n]
		}
	}
	return list[0]
}

func (m Model) pads() string {
	ctx := m.Session.Context()
	cells := make([]string, theory.NumDegrees)
	for d := range cells {
		label := theory.DegreeNames[d]
		if r, err := chord.Resolve(ctx, d); err == nil {
			label = fmt.Sprintf("%d\n%s", d+1, r.Name())
		}
		style := padStyle
		if d == m.last {
			style = activeStyle
		}
		cells[d] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func recent(events []model.ChordEvent) string {
	if len(events) == 0 {
		return "-"
	}
	if len(events) > recentEvents {
		events = events[len(events)-recentEvents:]
	}
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = e.Degree + e.Quality
	}
	return strings.Join(parts, " ")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.Session
	ctx := s.Context()
	header := headerStyle.Render(fmt.Sprintf("diatonicpad  oct %d  %s", ctx.OctaveBase, ctx.Inversion))

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(m.pads() + "\n\n")
	b.WriteString(statusStyle.Render(s.Status()) + "\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("Voices: %d  Recent: %s", len(s.Voices()), recent(s.Events()))) + "\n")
	if m.message != "" {
		style := statusStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.message) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("1-7:play  u/r:undo/redo  t/n:7th/9th  v:voicing  i:inversion  k/K:key  m/M:mode  o/O:octave  s:save  l:load  e:export  x:stop  c:clear  q:quit"))
	return b.String()
}
