package service

import (
	"context"
	"sync"
	"time"

	"github.com/vilaca/issue-dashboard/internal/domain"
)

// mockClient is a test double for api.IssueClient.
// Follows FIRST principles - Independent tests.
type mockClient struct {
	listFunc   func(ctx context.Context, credential string) ([]domain.Issue, error)
	updateFunc func(ctx context.Context, credential, id, status string) (*domain.Issue, error)
	deleteFunc func(ctx context.Context, credential, id string) error
}

func (m *mockClient) ListIssues(ctx context.Context, credential string) ([]domain.Issue, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, credential)
	}
	return nil, nil
}

func (m *mockClient) UpdateIssueStatus(ctx context.Context, credential, id, status string) (*domain.Issue, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, credential, id, status)
	}
	return nil, nil
}

func (m *mockClient) DeleteIssue(ctx context.Context, credential, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, credential, id)
	}
	return nil
}

// fakeScheduler records scheduled tasks and fires them on demand.
type fakeScheduler struct {
	mu        sync.Mutex
	delays    []time.Duration
	tasks     []func()
	cancelled int
}

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := len(s.tasks)
	s.delays = append(s.delays, d)
	s.tasks = append(s.tasks, fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.tasks[idx] != nil {
			s.tasks[idx] = nil
			s.cancelled++
		}
	}
}

// fireAll runs every task that has not been cancelled.
func (s *fakeScheduler) fireAll() {
	s.mu.Lock()
	tasks := append([]func(){}, s.tasks...)
	for i := range s.tasks {
		s.tasks[i] = nil
	}
	s.mu.Unlock()

	for _, fn := range tasks {
		if fn != nil {
			fn()
		}
	}
}

func (s *fakeScheduler) scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.delays)
}

// recordingNavigator collects navigation targets.
type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNavigator) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}
