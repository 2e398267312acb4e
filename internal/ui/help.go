package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const executable = "touchsense"

// PrintUsage displays the styled help/usage text
func PrintUsage(version string) {
	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Render(executable)

	versionTag := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render("v" + version)

	fmt.Printf("%s %s\n", banner, versionTag)
	fmt.Println(Muted("Multi-touch gesture recognition engine"))
	fmt.Println()

	printSection("Usage", []string{
		executable + " playground          Interactive gesture playground (mouse-emulated)",
		executable + " listen              Recognize gestures from a HID digitizer",
		executable + " replay <trace>      Replay a recorded trace through the recognizer",
		executable + " plot <trace>        Render a trace's contact paths to PNG",
		executable + " profiles            Show the built-in threshold profiles",
		executable + " devices             List available HID digitizers",
		executable + " help                Show this help message",
	})

	printSection("Flags", []string{
		"-profile string   Threshold profile name (default \"default\")",
		"-config string    Path to a YAML threshold overlay file",
		"-record string    Save the live touch samples to a trace file",
		"-verbose          Enable verbose logging",
		"-version          Print version and exit",
	})

	printExamplesSection()
}

func printSection(title string, items []string) {
	fmt.Println(Bold(title))
	for _, item := range items {
		fmt.Printf("  %s\n", item)
	}
	fmt.Println()
}

func printExamplesSection() {
	fmt.Println(Bold("Examples"))

	examples := []struct {
		cmd  string
		desc string
	}{
		{executable + " playground", "Draw gestures with the mouse"},
		{executable + " playground -profile accessibility", "Relaxed thresholds"},
		{executable + " listen -vendor 0x28DE -product 0x1102", "Recognize from a specific device"},
		{executable + " replay swipe.yaml", "Replay a trace at recorded speed"},
		{executable + " replay -fast swipe.yaml", "Replay without pacing"},
		{executable + " plot -out swipe.png swipe.yaml", "Plot contact paths"},
	}

	cmdStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary)

	maxLen := 0
	for _, ex := range examples {
		if len(ex.cmd) > maxLen {
			maxLen = len(ex.cmd)
		}
	}

	for _, ex := range examples {
		padding := strings.Repeat(" ", maxLen-len(ex.cmd)+2)
		fmt.Printf("  %s%s%s\n", cmdStyle.Render(ex.cmd), padding, Muted(ex.desc))
	}
	fmt.Println()
}

// PrintListenUsage displays the styled help text for the listen subcommand
func PrintListenUsage() {
	fmt.Println(Bold("Usage:"), executable+" listen [options]")
	fmt.Println()
	fmt.Println("Read touch reports from a HID digitizer, recognize gestures and")
	fmt.Println("print every emitted event. Without -vendor/-product the first")
	fmt.Println("digitizer found on the system is used.")
	fmt.Println()

	fmt.Println(Bold("Options"))
	fmt.Printf("  %s    Vendor ID in hex, e.g. 0x28DE\n", SubtitleStyle.Render("-vendor string"))
	fmt.Printf("  %s   Product ID in hex, e.g. 0x1102\n", SubtitleStyle.Render("-product string"))
	fmt.Printf("  %s   Threshold profile name (default \"default\")\n", SubtitleStyle.Render("-profile string"))
	fmt.Printf("  %s    Path to a YAML threshold overlay file\n", SubtitleStyle.Render("-config string"))
	fmt.Printf("  %s    Save the touch samples to a trace file\n", SubtitleStyle.Render("-record string"))
	fmt.Printf("  %s          Enable verbose logging\n", SubtitleStyle.Render("-verbose"))
	fmt.Println()
}

// PrintReplayUsage displays the styled help text for the replay subcommand
func PrintReplayUsage() {
	fmt.Println(Bold("Usage:"), executable+" replay [options] <trace.yaml>")
	fmt.Println()
	fmt.Println("Replay a recorded trace through the gesture recognizer and print")
	fmt.Println("every emitted event.")
	fmt.Println()

	fmt.Println(Bold("Options"))
	fmt.Printf("  %s   Threshold profile name (default \"default\")\n", SubtitleStyle.Render("-profile string"))
	fmt.Printf("  %s    Path to a YAML threshold overlay file\n", SubtitleStyle.Render("-config string"))
	fmt.Printf("  %s             Replay without realtime pacing\n", SubtitleStyle.Render("-fast"))
	fmt.Printf("  %s     Realtime speed multiplier (default 1)\n", SubtitleStyle.Render("-speed float"))
	fmt.Println()
}

// PrintPlotUsage displays the styled help text for the plot subcommand
func PrintPlotUsage() {
	fmt.Println(Bold("Usage:"), executable+" plot [options] <trace.yaml>")
	fmt.Println()
	fmt.Println("Render the trace's contact paths into a PNG image.")
	fmt.Println()

	fmt.Println(Bold("Options"))
	fmt.Printf("  %s      Output file (default trace name + .png)\n", SubtitleStyle.Render("-out string"))
	fmt.Printf("  %s      Image width in pixels (default 640)\n", SubtitleStyle.Render("-width int"))
	fmt.Printf("  %s     Image height in pixels (default 480)\n", SubtitleStyle.Render("-height int"))
	fmt.Println()
}

// PrintVersion displays the styled version information
func PrintVersion(version string) {
	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Render(executable)

	versionTag := lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Render("v" + version)

	fmt.Printf("%s %s\n", banner, versionTag)
}

// PrintError displays a styled error message
func PrintError(message string) {
	fmt.Println(Error(message))
}

// PrintFatalError displays a styled fatal error message with context
func PrintFatalError(context, message string) {
	fmt.Println()
	fmt.Println(Error(context))
	fmt.Printf("  %s\n", Muted(message))
	fmt.Println()
}
