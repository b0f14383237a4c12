package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/constants"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	moodColors = map[constants.MoodCategory]lipgloss.Color{
		constants.MoodPositive: lipgloss.Color("42"),
		constants.MoodNeutral:  lipgloss.Color("75"),
		constants.MoodNegative: lipgloss.Color("203"),
	}
)

// MoodStyle colours a mood name by its category.
func MoodStyle(c constants.MoodCategory) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(moodColors[c])
}

// Label renders "name: value" with a bold name.
func Label(name, value string) string {
	return LabelStyle.Render(name+":") + " " + value
}
