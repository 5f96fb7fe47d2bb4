package magetasks

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// out receives all task output. Tests swap it for a buffer.
var out io.Writer = os.Stdout

var (
	h1Style   = lipgloss.NewStyle().Bold(true)
	h2Style   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// PrintH1Header prints a top-level header with decoration.
func PrintH1Header(title string) {
	const width = 80
	padding := max((width-lipgloss.Width(title))/2, 0)
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", width))
	fmt.Fprintln(out, strings.Repeat(" ", padding)+h1Style.Render(title))
	fmt.Fprintln(out, strings.Repeat("=", width))
	fmt.Fprintln(out)
}

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, h2Style.Render("=== "+title+" ==="))
	fmt.Fprintln(out)
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) { fmt.Fprintln(out, okStyle.Render("✅ "+msg)) }

// PrintWarning prints a warning message.
func PrintWarning(msg string) { fmt.Fprintln(out, warnStyle.Render("⚠️  "+msg)) }

// PrintError prints an error message.
func PrintError(msg string) { fmt.Fprintln(out, errStyle.Render("❌ "+msg)) }

// PrintInfo prints an info message.
func PrintInfo(msg string) { fmt.Fprintln(out, "ℹ️  "+msg) }
