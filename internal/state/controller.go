// Package state owns the authoritative issue collection of one dashboard mount
// and applies load results and reconciliation events to it.
package state

import (
	"sync"

	"github.com/vilaca/issue-dashboard/internal/domain"
	"github.com/vilaca/issue-dashboard/internal/stats"
)

// Phase is the lifecycle of the initial data load.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "Loading"
	case PhaseReady:
		return "Ready"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Snapshot is a consistent, caller-owned copy of the controller state.
type Snapshot struct {
	Phase        Phase          `json:"phase"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	Issues       []domain.Issue `json:"issues"`
}

// Controller is the single writer of a mount's issue collection.
// Writes after Close are ignored.
type Controller struct {
	mu       sync.RWMutex
	issues   []domain.Issue
	phase    Phase
	errMsg   string
	err      error
	started  bool
	closed   bool
	teardown []func()
}

// New returns a controller in the Loading phase with an empty collection.
func New() *Controller {
	return &Controller{phase: PhaseLoading}
}

// BeginLoad reports whether the caller may start the initial load.
// It returns true exactly once per controller.
func (c *Controller) BeginLoad() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started || c.closed {
		return false
	}
	c.started = true
	return true
}

// OnLoadSucceeded replaces the collection and marks the mount ready.
func (c *Controller) OnLoadSucceeded(issues []domain.Issue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.issues = append([]domain.Issue(nil), issues...)
	c.phase = PhaseReady
	c.errMsg = ""
	c.err = nil
}

// OnLoadFailed marks the mount failed. The collection is left as is.
func (c *Controller) OnLoadFailed(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.phase = PhaseFailed
	c.err = err
	if err != nil {
		c.errMsg = err.Error()
	}
}

// OnIssueUpdated replaces the issue with the same ID, keeping its position.
// An unknown ID leaves the collection unchanged; nothing is inserted.
func (c *Controller) OnIssueUpdated(updated domain.Issue) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.phase != PhaseReady {
		return false
	}
	for i := range c.issues {
		if c.issues[i].ID == updated.ID {
			c.issues[i] = updated
			return true
		}
	}
	return false
}

// OnIssueDeleted removes the issue with the given ID, if present.
func (c *Controller) OnIssueDeleted(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.phase != PhaseReady {
		return false
	}
	for i := range c.issues {
		if c.issues[i].ID == id {
			c.issues = append(c.issues[:i], c.issues[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		Phase:        c.phase,
		ErrorMessage: c.errMsg,
		Issues:       append([]domain.Issue{}, c.issues...),
	}
}

// Issues returns a copy of the current collection.
func (c *Controller) Issues() []domain.Issue {
	return c.Snapshot().Issues
}

// Phase returns the current load phase.
func (c *Controller) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// ErrorMessage returns the failure message; empty unless the phase is Failed.
func (c *Controller) ErrorMessage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// Err returns the error passed to OnLoadFailed, or nil.
func (c *Controller) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Summary aggregates the current collection. It is recomputed on every call.
func (c *Controller) Summary() stats.Summary {
	return stats.Summarize(c.Issues())
}

// OnTeardown registers fn to run when the controller is closed.
// If the controller is already closed, fn runs immediately.
func (c *Controller) OnTeardown(fn func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		fn()
		return
	}
	c.teardown = append(c.teardown, fn)
	c.mu.Unlock()
}

// Close tears the controller down and runs the registered teardown hooks.
// Calling Close more than once is safe.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	hooks := c.teardown
	c.teardown = nil
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
