package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#60A5FA")
	chartColor   = lipgloss.Color("#C084FC")
	accentColor  = lipgloss.Color("#34D399")
	warningColor = lipgloss.Color("#FBBF24")
	errorColor   = lipgloss.Color("#F87171")
	mutedColor   = lipgloss.Color("#6272A4")
	fgColor      = lipgloss.Color("#F8F8F2")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1)

	// Panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 2)

	chartPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(chartColor).
			Padding(0, 1)

	chartTitleStyle = lipgloss.NewStyle().
			Foreground(chartColor).
			Bold(true)

	counterLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	counterValueStyle = lipgloss.NewStyle().
				Foreground(fgColor).
				Bold(true)

	// List item styles
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true).
				PaddingLeft(1)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			PaddingLeft(3)

	// Status badges
	pendingStyle  = lipgloss.NewStyle().Foreground(warningColor)
	resolvedStyle = lipgloss.NewStyle().Foreground(accentColor)
	otherStyle    = lipgloss.NewStyle().Foreground(primaryColor)

	// Help/Status bar
	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)

// statusBadge colors a status by how far along it is.
func statusBadge(status string) string {
	switch status {
	case "Pending":
		return pendingStyle.Render(status)
	case "Resolved":
		return resolvedStyle.Render(status)
	default:
		return otherStyle.Render(status)
	}
}
