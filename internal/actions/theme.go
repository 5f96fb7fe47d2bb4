package actions

import "github.com/charmbracelet/lipgloss"

// Theme defines the styles and icons of terminal output.
type Theme struct {
	Name    string
	Group   lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Debug   lipgloss.Style
	Output  lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons prefixes warning, error, debug and output lines.
type ThemeIcons struct {
	Group  string
	Warn   string
	Fail   string
	Debug  string
	Output string
}

// DefaultTheme returns a color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Group:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")), // blue
		Info:    lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Debug:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Output:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Icons: ThemeIcons{
			Group:  "▸",
			Warn:   "⚠",
			Fail:   "✗",
			Debug:  "·",
			Output: "→",
		},
	}
}

// MonoTheme returns a theme without colors.
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Group:   lipgloss.NewStyle().Bold(true),
		Info:    lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Debug:   lipgloss.NewStyle(),
		Output:  lipgloss.NewStyle(),
		Icons: ThemeIcons{
			Group:  ">",
			Warn:   "!",
			Fail:   "x",
			Debug:  "-",
			Output: "=",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonoTheme()
	}
	return DefaultTheme()
}
