package api

import (
	"context"

	"github.com/vilaca/issue-dashboard/internal/domain"
)

// IssueClient defines the backend operations the dashboard consumes.
// The bearer credential is passed explicitly on every call; the client never stores it.
type IssueClient interface {
	// ListIssues returns every issue visible to the credential, in backend order.
	ListIssues(ctx context.Context, credential string) ([]domain.Issue, error)

	// UpdateIssueStatus sets the status of one issue and returns the updated record.
	UpdateIssueStatus(ctx context.Context, credential, id, status string) (*domain.Issue, error)

	// DeleteIssue removes one issue.
	DeleteIssue(ctx context.Context, credential, id string) error
}

// ClientConfig holds common configuration for API clients.
type ClientConfig struct {
	BaseURL               string
	MaxConcurrentRequests int
}
