package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"touchsense/internal/config"
)

// PrintProfileList displays the threshold profiles side by side.
func PrintProfileList(names []string) {
	fmt.Println()
	fmt.Println(Title("Threshold Profiles"))
	fmt.Println()

	for _, name := range names {
		p, err := config.Named(name)
		if err != nil {
			continue
		}
		printProfile(p)
	}
}

func printProfile(p config.Profile) {
	fmt.Println(SubtitleStyle.Bold(true).Render("  " + p.Name))

	rows := []struct {
		label string
		value string
	}{
		{"tap", fmt.Sprintf("≤%dms, ≤%.0fpx travel", p.Tap.MaxDurationMs, p.Tap.MovementTolerancePx)},
		{"double tap", fmt.Sprintf("%dms window, %.0fpx apart", p.DoubleTap.TimeoutMs, p.DoubleTap.DistancePx)},
		{"long press", fmt.Sprintf("%dms hold", p.LongPress.DelayMs)},
		{"swipe", fmt.Sprintf("≥%.0fpx, ≥%.2fpx/ms, ≤%dms", p.Swipe.MinDistancePx, p.Swipe.MinVelocity, p.Swipe.MaxDurationMs)},
		{"pinch", fmt.Sprintf("scale ±%.2f", p.Pinch.ScaleThreshold)},
		{"rotate", fmt.Sprintf("±%.0f°", p.Rotate.AngleThresholdDeg)},
		{"shake", fmt.Sprintf("%d reversals of %.0fpx in %dms", p.Shake.MinReversals, p.Shake.MinAmplitudePx, p.Shake.WindowMs)},
		{"force", fmt.Sprintf("≥%.2f pressure", p.Force.Threshold)},
		{"momentum", momentumSummary(p)},
	}
	for _, row := range rows {
		fmt.Printf("    %s %s\n", Muted(fmt.Sprintf("%-11s", row.label)), row.value)
	}
	if len(p.Security.Sensitive) > 0 {
		fmt.Printf("    %s %v\n", SensitiveStyle.Render(fmt.Sprintf("%-11s", "sensitive")), p.Security.Sensitive)
	}
	if len(p.Security.RequireConfirmation) > 0 {
		fmt.Printf("    %s %v\n", ConfirmStyle.Render(fmt.Sprintf("%-11s", "confirm")), p.Security.RequireConfirmation)
	}
	fmt.Println()
}

func momentumSummary(p config.Profile) string {
	if !p.Momentum.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("decay %.3f, stop below %.2fpx/ms", p.Momentum.DecayRate, p.Momentum.StopThreshold)
}

// profileSelectModel wraps a huh form in Bubble Tea for proper escape
// handling.
type profileSelectModel struct {
	form    *huh.Form
	aborted bool
}

func (m profileSelectModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m profileSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, tea.Quit
	}

	return m, cmd
}

func (m profileSelectModel) View() string {
	if m.form.State == huh.StateCompleted {
		return ""
	}
	return m.form.View()
}

// SelectProfile presents an interactive profile picker. An empty result
// with a nil error means the user cancelled.
func SelectProfile(names []string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("no profiles to select from")
	}

	options := make([]huh.Option[string], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(name, name)
	}

	var selected string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Threshold Profile").
				Description("Choose the gesture threshold profile (esc to cancel)").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(customTheme()).WithShowHelp(false)

	model := profileSelectModel{form: form}

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	if finalModel.(profileSelectModel).aborted {
		return "", nil
	}
	return selected, nil
}

// customTheme returns a custom huh theme matching our style palette
func customTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(lipgloss.Color("#F9FAFB"))
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)

	return t
}
