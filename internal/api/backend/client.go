package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/vilaca/issue-dashboard/internal/api"
	"github.com/vilaca/issue-dashboard/internal/domain"
)

// maxErrorBody caps how much of an error response is kept in a StatusError.
const maxErrorBody = 1024

// Client implements api.IssueClient against the issue backend's admin REST API.
type Client struct {
	*api.BaseClient
}

// NewClient creates a new backend client.
// Uses dependency injection for HTTPClient (IoC).
func NewClient(config api.ClientConfig, httpClient api.HTTPClient) *Client {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &Client{BaseClient: api.NewBaseClient(config, httpClient)}
}

// ListIssues retrieves all issues from the admin endpoint.
func (c *Client) ListIssues(ctx context.Context, credential string) ([]domain.Issue, error) {
	endpoint := fmt.Sprintf("%s/admin/issues", c.BaseURL)

	var issues []domain.Issue
	if err := c.doRequest(ctx, http.MethodGet, endpoint, credential, nil, &issues); err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	if issues == nil {
		issues = []domain.Issue{}
	}
	return issues, nil
}

// UpdateIssueStatus changes the status of a single issue.
func (c *Client) UpdateIssueStatus(ctx context.Context, credential, id, status string) (*domain.Issue, error) {
	endpoint := fmt.Sprintf("%s/admin/issues/%s", c.BaseURL, url.PathEscape(id))

	var updated domain.Issue
	payload := statusUpdate{Status: status}
	if err := c.doRequest(ctx, http.MethodPut, endpoint, credential, payload, &updated); err != nil {
		return nil, fmt.Errorf("failed to update issue %s: %w", id, err)
	}

	if updated.ID == "" {
		return nil, fmt.Errorf("failed to update issue %s: response has no id", id)
	}
	return &updated, nil
}

// DeleteIssue deletes a single issue.
func (c *Client) DeleteIssue(ctx context.Context, credential, id string) error {
	endpoint := fmt.Sprintf("%s/admin/issues/%s", c.BaseURL, url.PathEscape(id))

	if err := c.doRequest(ctx, http.MethodDelete, endpoint, credential, nil, nil); err != nil {
		return fmt.Errorf("failed to delete issue %s: %w", id, err)
	}
	return nil
}

// doRequest performs an HTTP request to the backend API.
// A nil result skips decoding the response body.
func (c *Client) doRequest(ctx context.Context, method, endpoint, credential string, payload, result interface{}) error {
	return c.DoRateLimited(ctx, func() error {
		var body io.Reader
		if payload != nil {
			encoded, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("failed to encode request: %w", err)
			}
			body = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		if credential != "" {
			req.Header.Set("Authorization", "Bearer "+credential)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return &api.StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
		}

		if result == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	})
}

type statusUpdate struct {
	Status string `json:"status"`
}
