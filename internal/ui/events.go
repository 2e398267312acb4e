package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"touchsense/internal/gesture"
)

// FormatEvent renders one gesture event as a single styled log line.
func FormatEvent(ev gesture.Event) string {
	name := lipgloss.NewStyle().
		Bold(true).
		Foreground(GestureColor(ev.Type)).
		Render(fmt.Sprintf("%-11s", ev.Type))

	phase := PhaseStyle.Render(fmt.Sprintf("%-5s", ev.Phase))

	var parts []string
	parts = append(parts, Muted(ev.Duration.Round(time.Millisecond).String()))
	if detail := eventDetail(ev); detail != "" {
		parts = append(parts, detail)
	}
	if ev.Sensitive {
		parts = append(parts, SensitiveStyle.Render("sensitive"))
	}
	if ev.RequiresConfirmation {
		parts = append(parts, ConfirmStyle.Render("confirm"))
	}

	return fmt.Sprintf("%s %s %s", name, phase, strings.Join(parts, "  "))
}

func eventDetail(ev gesture.Event) string {
	d := ev.Data
	switch ev.Type {
	case gesture.TypeSwipe:
		return fmt.Sprintf("%s %.0fpx @ %.2fpx/ms",
			d.Direction, d.Distance, velocityMagnitude(d))
	case gesture.TypePan:
		return fmt.Sprintf("%s %.0fpx", d.Direction, d.Distance)
	case gesture.TypePinch:
		return fmt.Sprintf("scale %.2f", d.Scale)
	case gesture.TypeRotate:
		return fmt.Sprintf("%.1f°", d.Rotation)
	case gesture.TypeForcePress:
		return fmt.Sprintf("force %.2f", d.Force)
	case gesture.TypeShake:
		return fmt.Sprintf("%.0fpx travel", d.Distance)
	case gesture.TypeTap, gesture.TypeDoubleTap:
		return fmt.Sprintf("x%d", d.TapCount)
	default:
		return ""
	}
}

func velocityMagnitude(d gesture.Data) float64 {
	vx, vy := d.VelocityX, d.VelocityY
	if vx < 0 {
		vx = -vx
	}
	if vy < 0 {
		vy = -vy
	}
	if vx > vy {
		return vx
	}
	return vy
}

// PrintEvent writes a formatted event line to stdout, for replay output.
func PrintEvent(ev gesture.Event) {
	fmt.Println("  " + FormatEvent(ev))
}
