// Package tui is the interactive terminal rendition of the admin dashboard.
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vilaca/issue-dashboard/internal/service"
	"github.com/vilaca/issue-dashboard/internal/state"
)

// Model represents the TUI state. The issue collection itself lives in the controller.
type Model struct {
	ctrl       *state.Controller
	pipeline   *service.LoadPipeline
	issues     *service.IssueService
	credential string
	timeout    time.Duration
	nav        *navigation

	// UI state
	spinner       spinner.Model
	selectedIndex int
	width         int
	height        int
	busy          bool
	status        string
	err           error
	navigatedTo   string
}

// Config holds what a Model needs.
type Config struct {
	Controller     *state.Controller
	Pipeline       *service.LoadPipeline
	Issues         *service.IssueService
	Credential     string
	RequestTimeout time.Duration
}

// NewModel creates the model for one mount. Closing cfg.Controller ends it.
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	nav := newNavigation()
	cfg.Controller.OnTeardown(nav.close)

	return Model{
		ctrl:       cfg.Controller,
		pipeline:   cfg.Pipeline,
		issues:     cfg.Issues,
		credential: cfg.Credential,
		timeout:    timeout,
		nav:        nav,
		spinner:    s,
	}
}

// Init starts the load, the spinner and the wait for a navigation request.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadIssues,
		m.waitForNavigation,
	)
}

// Messages
type (
	loadDoneMsg struct{}

	navigateMsg struct {
		route string
	}

	issueUpdatedMsg struct {
		id     string
		status string
		err    error
	}

	issueDeletedMsg struct {
		id  string
		err error
	}
)

// Commands
func (m Model) loadIssues() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	m.ctrl.OnTeardown(cancel)

	m.pipeline.Run(ctx, m.ctrl, m.credential, m.nav)
	return loadDoneMsg{}
}

func (m Model) waitForNavigation() tea.Msg {
	route, ok := <-m.nav.ch
	if !ok {
		return nil
	}
	return navigateMsg{route: route}
}

func (m Model) updateStatus(id, status string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		_, err := m.issues.UpdateStatus(ctx, m.ctrl, m.credential, id, status)
		return issueUpdatedMsg{id: id, status: status, err: err}
	}
}

func (m Model) deleteIssue(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		err := m.issues.Delete(ctx, m.ctrl, m.credential, id)
		return issueDeletedMsg{id: id, err: err}
	}
}

// NavigatedTo returns the route the dashboard navigated to before quitting, if any.
func (m Model) NavigatedTo() string {
	return m.navigatedTo
}

// navigation hands a navigation request from the load pipeline's timer to the event loop.
type navigation struct {
	mu     sync.Mutex
	ch     chan string
	closed bool
}

func newNavigation() *navigation {
	return &navigation{ch: make(chan string, 1)}
}

// Navigate implements service.Navigator. Requests after close are dropped.
func (n *navigation) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	select {
	case n.ch <- route:
	default:
	}
}

func (n *navigation) close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.closed {
		n.closed = true
		close(n.ch)
	}
}
