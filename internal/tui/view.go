package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vilaca/issue-dashboard/internal/domain"
	"github.com/vilaca/issue-dashboard/internal/service"
	"github.com/vilaca/issue-dashboard/internal/state"
	"github.com/vilaca/issue-dashboard/internal/stats"
)

// maxBarWidth is the length of the longest bar in a text chart.
const maxBarWidth = 30

// View renders the UI
func (m Model) View() string {
	snap := m.ctrl.Snapshot()

	if snap.Phase == state.PhaseLoading {
		return fmt.Sprintf("\n  %s Loading Dashboard...\n", m.spinner.View())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🛠️  Admin Dashboard"))
	b.WriteString("\n\n")

	if snap.Phase == state.PhaseFailed {
		b.WriteString(errorStyle.Render("❌ " + snap.ErrorMessage))
		b.WriteString("\n")
		if service.IsAccessDenied(m.ctrl.Err()) {
			b.WriteString(helpStyle.Render(fmt.Sprintf("Returning home in %s...", m.pipeline.RedirectDelay())))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(RenderSummary(stats.Summarize(snap.Issues)))
	b.WriteString("\n\n")
	b.WriteString(m.renderIssueList(snap.Issues))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString(m.renderHelpBar())
	return b.String()
}

// RenderSummary renders the counters and the two text charts.
func RenderSummary(summary stats.Summary) string {
	counters := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCounter("Total Issues", summary.Total),
		renderCounter("Pending Issues", summary.Pending),
		renderCounter("Resolved Issues", summary.Resolved),
	)

	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		chartPanelStyle.Render(renderBarChart("Issues by Status", summary.StatusChart)),
		chartPanelStyle.Render(renderBarChart("Issues by Category", summary.CategoryChart)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, counters, charts)
}

func renderCounter(label string, value int) string {
	return panelStyle.Render(counterLabelStyle.Render(label) + "\n" + counterValueStyle.Render(fmt.Sprintf("%d", value)))
}

// renderBarChart draws one horizontal bar per label, colored like the web charts.
func renderBarChart(title string, chart stats.ChartData) string {
	var b strings.Builder
	b.WriteString(chartTitleStyle.Render(title))
	b.WriteString("\n")

	if len(chart.Labels) == 0 || len(chart.Datasets) == 0 {
		b.WriteString(counterLabelStyle.Render("no data"))
		return b.String()
	}

	series := chart.Datasets[0]
	labelWidth, maxValue := 0, 0
	for i, label := range chart.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(label))
		maxValue = max(maxValue, series.Data[i])
	}

	for i, label := range chart.Labels {
		value := series.Data[i]
		width := 0
		if maxValue > 0 {
			width = value * maxBarWidth / maxValue
		}
		if value > 0 && width == 0 {
			width = 1
		}

		bar := strings.Repeat("█", width)
		if len(series.BackgroundColor) > 0 {
			color := series.BackgroundColor[i%len(series.BackgroundColor)]
			bar = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(bar)
		}
		b.WriteString(fmt.Sprintf("%-*s %s %d\n", labelWidth, label, bar, value))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderIssueList(issues []domain.Issue) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Current Issues"))
	b.WriteString("\n")

	if len(issues) == 0 {
		b.WriteString(counterLabelStyle.Render("  No issues to manage."))
		b.WriteString("\n")
		return b.String()
	}

	for i, is := range issues {
		line := fmt.Sprintf("%s  [%s]  %s  · %s",
			is.Title, statusBadge(is.NormalizedStatus()), is.NormalizedCategory(), is.ReporterName())
		if i == m.selectedIndex {
			b.WriteString(selectedItemStyle.Render("▸ " + line))
		} else {
			b.WriteString(normalItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	case m.busy:
		return m.spinner.View() + " " + statusStyle.Render(m.status) + "\n"
	case m.status != "":
		return statusStyle.Render(m.status) + "\n"
	default:
		return ""
	}
}

func (m Model) renderHelpBar() string {
	return helpStyle.Render("↑/↓ select • s cycle status • d delete • q quit")
}
