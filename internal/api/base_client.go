package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// MaxConcurrentRequests limits concurrent backend requests when the config does not set it.
const MaxConcurrentRequests = 5

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

// StatusCode extracts the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// IsForbidden reports whether err is a 403 from the backend.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// BaseClient contains common fields and functionality for API clients.
type BaseClient struct {
	BaseURL    string
	HTTPClient HTTPClient
	Semaphore  chan struct{} // Limits concurrent requests
}

// NewBaseClient creates a new base client with rate limiting.
func NewBaseClient(config ClientConfig, httpClient HTTPClient) *BaseClient {
	limit := config.MaxConcurrentRequests
	if limit <= 0 {
		limit = MaxConcurrentRequests
	}
	return &BaseClient{
		BaseURL:    config.BaseURL,
		HTTPClient: httpClient,
		Semaphore:  make(chan struct{}, limit),
	}
}

// DoRateLimited runs fn while holding a request slot.
func (c *BaseClient) DoRateLimited(ctx context.Context, fn func() error) error {
	select {
	case c.Semaphore <- struct{}{}:
		defer func() { <-c.Semaphore }()
	case <-ctx.Done():
		return ctx.Err()
	}

	return fn()
}
