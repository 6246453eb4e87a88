// Package ui holds the terminal styling shared by the planner, the runner and
// the command line entry point.
package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	humane "github.com/sierrasoftworks/humane-errors-go"
)

// Terminal palette, as ANSI color indices.
var (
	ColorInfo    = lipgloss.Color("4") // blue
	ColorSuccess = lipgloss.Color("2") // green
	ColorError   = lipgloss.Color("1") // red
	ColorMuted   = lipgloss.Color("8") // grey
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Arrow   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}{
	Arrow:   lipgloss.NewStyle().Foreground(ColorInfo),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
}

// Status line prefixes.
const (
	IconTick    = "✔"
	IconCross   = "✖"
	IconArrow   = "==>"
	IconSparkle = "✨"
)

// Step formats a status line announcing a step, e.g. "==> ESLint...".
func Step(text string) string {
	return fmt.Sprintf("%s %s", Styles.Arrow.Render(IconArrow), text)
}

// Success writes the green all-good line.
func Success(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", Styles.Success.Render(IconTick+" All good!"), IconSparkle)
}

// Failure writes the red failure line. Details, when given, name what failed.
func Failure(w io.Writer, details ...string) {
	fmt.Fprintln(w, Styles.Error.Render(IconCross+" Failed!"))
	for _, d := range details {
		fmt.Fprintf(w, "  %s %s\n", Styles.Muted.Render("-"), d)
	}
}

// Error writes err followed by any advice it carries.
func Error(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", Styles.Error.Render(IconCross), err.Error())

	var herr humane.Error
	if errors.As(err, &herr) {
		for _, advice := range herr.Advice() {
			fmt.Fprintf(w, "  %s %s\n", Styles.Muted.Render("hint:"), advice)
		}
	}
}
