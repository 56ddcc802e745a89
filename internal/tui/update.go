package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vilaca/issue-dashboard/internal/domain"
	"github.com/vilaca/issue-dashboard/internal/service"
	"github.com/vilaca/issue-dashboard/internal/state"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.ctrl.Phase() != state.PhaseLoading && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadDoneMsg:
		m.clampSelection()
		return m, nil

	case navigateMsg:
		m.navigatedTo = msg.route
		return m, tea.Quit

	case issueUpdatedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = "Status set to " + msg.status
		return m, nil

	case issueDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = "Issue deleted"
		m.clampSelection()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}

	case "down", "j":
		if m.selectedIndex < len(m.ctrl.Issues())-1 {
			m.selectedIndex++
		}

	case "s":
		issue, ok := m.selectedIssue()
		if !ok || m.busy {
			return m, nil
		}
		next := service.NextStatus(issue.Status)
		m.busy = true
		m.status = "Updating status..."
		return m, tea.Batch(m.spinner.Tick, m.updateStatus(issue.ID, next))

	case "d":
		issue, ok := m.selectedIssue()
		if !ok || m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Deleting issue..."
		return m, tea.Batch(m.spinner.Tick, m.deleteIssue(issue.ID))
	}

	return m, nil
}

// selectedIssue returns the highlighted issue once the dashboard is ready.
func (m Model) selectedIssue() (domain.Issue, bool) {
	if m.ctrl.Phase() != state.PhaseReady {
		return domain.Issue{}, false
	}
	issues := m.ctrl.Issues()
	if m.selectedIndex < 0 || m.selectedIndex >= len(issues) {
		return domain.Issue{}, false
	}
	return issues[m.selectedIndex], true
}

func (m *Model) clampSelection() {
	n := len(m.ctrl.Issues())
	if m.selectedIndex >= n {
		m.selectedIndex = n - 1
	}
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
}
