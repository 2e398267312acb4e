package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"touchsense/internal/config"
	"touchsense/internal/gesture"
	"touchsense/internal/touch"
)

type teeLog struct {
	phases []touch.Phase
	points [][]touch.Point
}

func (t *teeLog) Process(phase touch.Phase, points []touch.Point) {
	t.phases = append(t.phases, phase)
	t.points = append(t.points, points)
}

func TestPlaygroundTeesSamples(t *testing.T) {
	rec := gesture.New(config.Default())
	defer rec.Close()

	tee := &teeLog{}
	m := newPlaygroundModel(rec, "default", tee)

	m.handleMouse(tea.MouseMsg{X: 4, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.handleMouse(tea.MouseMsg{X: 6, Y: 2, Action: tea.MouseActionMotion})
	m.handleMouse(tea.MouseMsg{X: 6, Y: 2, Action: tea.MouseActionRelease})

	want := []touch.Phase{touch.PhaseStart, touch.PhaseMove, touch.PhaseEnd}
	if len(tee.phases) != len(want) {
		t.Fatalf("tee received %d samples, want %d", len(tee.phases), len(want))
	}
	for i, phase := range want {
		if tee.phases[i] != phase {
			t.Errorf("sample %d phase = %v, want %v", i, tee.phases[i], phase)
		}
	}

	// The tee sees the same scaled coordinates the recognizer does.
	if got := tee.points[0][0].X; got != 4*playgroundScaleX {
		t.Errorf("start X = %v, want %v", got, 4*playgroundScaleX)
	}
	if got := tee.points[1][0].Y; got != 2*playgroundScaleY {
		t.Errorf("move Y = %v, want %v", got, 2*playgroundScaleY)
	}
	if len(tee.points[2]) != 0 {
		t.Errorf("end sample carries %d contacts, want 0", len(tee.points[2]))
	}
}

func TestPlaygroundIgnoresRightButton(t *testing.T) {
	rec := gesture.New(config.Default())
	defer rec.Close()

	tee := &teeLog{}
	m := newPlaygroundModel(rec, "default", tee)

	m.handleMouse(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m.handleMouse(tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionMotion})

	if len(tee.phases) != 0 {
		t.Fatalf("tee received %d samples, want 0", len(tee.phases))
	}
}
