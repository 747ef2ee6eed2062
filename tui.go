package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type state int

const (
	stateProbing state = iota
	stateSampling
	stateDone
)

type backendsMsg struct {
	picker        *Picker
	cursorMethod  string
	captureMethod string
	width, height int
	err           error
}

type sampleMsg struct {
	x, y  int
	color RGB
	err   error
}

type tickMsg struct{}

type model struct {
	state   state
	spinner spinner.Model
	picker  *Picker
	err     error

	cursorMethod  string
	captureMethod string
	width, height int

	x, y    int
	color   RGB
	sampled bool
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func newModel() model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	return model{
		state:   stateProbing,
		spinner: s,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, probeCmd())
}

func probeCmd() tea.Cmd {
	return func() tea.Msg {
		settings, _, err := LoadSettings()
		if err != nil {
			return backendsMsg{err: err}
		}

		path := settings.CapturePath
		if path == "" {
			if path, err = defaultCapturePath(); err != nil {
				return backendsMsg{err: err}
			}
		}

		cursor, cursorMethod, err := NewCursorSampler()
		if err != nil {
			return backendsMsg{err: fmt.Errorf("%w: %w", ErrCursor, err)}
		}

		screen, captureMethod, err := NewCapturer()
		if err != nil {
			cursor.Close()
			return backendsMsg{err: fmt.Errorf("%w: %w", ErrCapture, err)}
		}

		w, h, _ := screenSize()

		return backendsMsg{
			picker: &Picker{
				Cursor:   cursor,
				Screen:   screen,
				Path:     path,
				Interval: settings.Interval(),
			},
			cursorMethod:  cursorMethod,
			captureMethod: captureMethod,
			width:         w,
			height:        h,
		}
	}
}

func sampleCmd(p *Picker) tea.Cmd {
	return func() tea.Msg {
		x, y, c, err := p.Sample()
		return sampleMsg{x: x, y: y, color: c, err: err}
	}
}

func tickCmd(p *Picker) tea.Cmd {
	return tea.Tick(p.Interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m model) closeBackends() {
	if m.picker == nil {
		return
	}
	_ = m.picker.Cursor.Close()
	_ = m.picker.Screen.Close()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.closeBackends()
			m.state = stateDone
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case backendsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateDone
			return m, tea.Quit
		}
		m.picker = msg.picker
		m.cursorMethod = msg.cursorMethod
		m.captureMethod = msg.captureMethod
		m.width = msg.width
		m.height = msg.height
		m.state = stateSampling
		return m, sampleCmd(m.picker)

	case sampleMsg:
		if msg.err != nil {
			m.err = msg.err
			m.closeBackends()
			m.state = stateDone
			return m, tea.Quit
		}
		m.x, m.y = msg.x, msg.y
		m.color = msg.color
		m.sampled = true
		return m, tickCmd(m.picker)

	case tickMsg:
		return m, sampleCmd(m.picker)
	}

	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateProbing:
		return fmt.Sprintf("\n %s %s\n\n",
			m.spinner.View(),
			titleStyle.Render("Detecting cursor and capture backends..."))

	case stateSampling:
		var b strings.Builder
		b.WriteString("\n" + titleStyle.Render("  pixelpick") + "\n\n")

		info := fmt.Sprintf("  cursor: %s · capture: %s", m.cursorMethod, m.captureMethod)
		if m.width > 0 && m.height > 0 {
			info += fmt.Sprintf(" · %dx%d", m.width, m.height)
		}
		b.WriteString(helpStyle.Render(info) + "\n\n")

		if !m.sampled {
			b.WriteString(fmt.Sprintf("  %s sampling...\n", m.spinner.View()))
		} else {
			b.WriteString(fmt.Sprintf("  %s  (%d, %d)  %s\n",
				swatch(m.color),
				m.x, m.y,
				valueStyle.Render(m.color.String())))
		}

		b.WriteString("\n" + helpStyle.Render("  q quit") + "\n")
		return b.String()

	case stateDone:
		if m.err != nil {
			return "\n" + errStyle.Render("  Error: "+m.err.Error()) + "\n\n"
		}
	}

	return ""
}

// swatch renders a colored block showing the sampled color, with a
// foreground picked for contrast against it.
func swatch(c RGB) string {
	hex := c.Hex()
	fg := "#ffffff"
	col := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	if _, _, l := col.Hsl(); l > 0.5 {
		fg = "#000000"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(fg)).
		Render(" " + hex + " ")
}
