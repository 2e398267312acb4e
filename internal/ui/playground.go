package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"touchsense/internal/gesture"
	"touchsense/internal/touch"
)

// Terminal cells are coarse compared to touch pixels, so mouse positions
// are scaled up before they reach the recognizer. A cell is roughly
// twice as tall as it is wide.
const (
	playgroundScaleX = 10
	playgroundScaleY = 20

	playgroundLogLines = 12
)

type gestureMsg struct{ ev gesture.Event }

// SampleTee receives every sample the playground feeds the recognizer.
// A trace recorder satisfies this, so live input can be captured for
// later replay.
type SampleTee interface {
	Process(phase touch.Phase, points []touch.Point)
}

type playgroundModel struct {
	rec         *gesture.Recognizer
	norm        *touch.Normalizer
	tee         SampleTee
	profileName string

	width   int
	height  int
	pressed bool
	lastX   int
	lastY   int

	lines  []string
	counts map[gesture.Type]int
	total  int
}

func newPlaygroundModel(rec *gesture.Recognizer, profileName string, tee SampleTee) playgroundModel {
	return playgroundModel{
		rec:         rec,
		norm:        touch.NewNormalizer(),
		tee:         tee,
		profileName: profileName,
		counts:      make(map[gesture.Type]int),
	}
}

func (m playgroundModel) Init() tea.Cmd {
	return nil
}

func (m playgroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.rec.Cancel()
			return m, tea.Quit
		case "c":
			m.lines = nil
			m.counts = make(map[gesture.Type]int)
			m.total = 0
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case gestureMsg:
		m.total++
		m.counts[msg.ev.Type]++
		m.lines = append(m.lines, FormatEvent(msg.ev))
		if len(m.lines) > playgroundLogLines {
			m.lines = m.lines[len(m.lines)-playgroundLogLines:]
		}
		return m, nil
	}

	return m, nil
}

// handleMouse maps terminal mouse input onto the touch sample stream.
// Only the left button emulates a contact.
func (m *playgroundModel) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X * playgroundScaleX)
	y := float64(msg.Y * playgroundScaleY)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.pressed = true
		m.lastX, m.lastY = msg.X, msg.Y
		m.feed(touch.MouseSample(touch.PhaseStart, x, y))

	case tea.MouseActionMotion:
		if !m.pressed {
			return
		}
		m.lastX, m.lastY = msg.X, msg.Y
		m.feed(touch.MouseSample(touch.PhaseMove, x, y))

	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		m.lastX, m.lastY = msg.X, msg.Y
		m.feed(touch.MouseSample(touch.PhaseEnd, x, y))
	}
}

func (m *playgroundModel) feed(s touch.Sample) {
	points := m.norm.Normalize(s.Contacts)
	if m.tee != nil {
		m.tee.Process(s.Phase, points)
	}
	m.rec.Process(s.Phase, points)
}

func (m playgroundModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s",
		Title("touchsense playground"),
		Muted("profile: "+m.profileName))
	b.WriteString(header + "\n\n")

	state := "idle"
	if m.pressed {
		state = fmt.Sprintf("contact at (%d, %d)", m.lastX, m.lastY)
	}
	b.WriteString(BoxStyle.Render(fmt.Sprintf("%s  %s",
		Bold("touch"), SubtleStyle.Render(state))) + "\n\n")

	log := "no gestures yet - drag with the left mouse button"
	if len(m.lines) > 0 {
		log = strings.Join(m.lines, "\n")
	}
	b.WriteString(HighlightBoxStyle.Render(log) + "\n\n")

	if m.total > 0 {
		var parts []string
		for _, t := range gesture.Types() {
			if n := m.counts[t]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d",
					lipgloss.NewStyle().Foreground(GestureColor(t)).Render(t.String()), n))
			}
		}
		b.WriteString("  " + strings.Join(parts, Muted("  |  ")) + "\n\n")
	}

	b.WriteString(Muted("  drag: gesture  |  c: clear  |  q: quit") + "\n")
	return b.String()
}

// RunPlayground starts the interactive playground. It blocks until the
// user quits. A non-nil tee receives every sample fed to the recognizer.
func RunPlayground(rec *gesture.Recognizer, profileName string, tee SampleTee) error {
	model := newPlaygroundModel(rec, profileName, tee)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	var unsubs []gesture.Unsubscribe
	for _, t := range gesture.Types() {
		unsubs = append(unsubs, rec.On(t, func(ev gesture.Event) {
			p.Send(gestureMsg{ev: ev})
		}))
	}
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	_, err := p.Run()
	return err
}
