package cli

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/neuralwired/notify"
)

var (
	pathStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle = lipgloss.NewStyle().Faint(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	flashStyles = map[notify.Type]lipgloss.Style{
		notify.TypeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		notify.TypeError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		notify.TypeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		notify.TypeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}

	titleCase = cases.Title(language.English)
)

// flashLine formats a flash message as "[Success] message".
func flashLine(msg string, typ notify.Type) string {
	style, ok := flashStyles[typ]
	if !ok {
		style = flashStyles[notify.TypeInfo]
	}
	return style.Render("["+titleCase.String(string(typ))+"]") + " " + msg
}
