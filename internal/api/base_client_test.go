package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

// TestStatusCode tests status extraction through wrapped errors.
func TestStatusCode(t *testing.T) {
	err := fmt.Errorf("failed to list issues: %w", &StatusError{StatusCode: http.StatusForbidden})

	if got := StatusCode(err); got != http.StatusForbidden {
		t.Errorf("expected 403, got %d", got)
	}
	if !IsForbidden(err) {
		t.Error("expected IsForbidden to be true")
	}
	if StatusCode(errors.New("dial tcp: connection refused")) != 0 {
		t.Error("expected 0 for errors without a status")
	}
}

// TestStatusError_Error tests the message format.
func TestStatusError_Error(t *testing.T) {
	if got := (&StatusError{StatusCode: 500}).Error(); got != "API returned status 500" {
		t.Errorf("unexpected message %q", got)
	}
	if got := (&StatusError{StatusCode: 403, Body: "forbidden"}).Error(); got != "API returned status 403: forbidden" {
		t.Errorf("unexpected message %q", got)
	}
}

// TestNewBaseClient_DefaultLimit tests the semaphore default.
func TestNewBaseClient_DefaultLimit(t *testing.T) {
	client := NewBaseClient(ClientConfig{BaseURL: "http://backend"}, http.DefaultClient)

	if cap(client.Semaphore) != MaxConcurrentRequests {
		t.Errorf("expected semaphore capacity %d, got %d", MaxConcurrentRequests, cap(client.Semaphore))
	}
}

// TestDoRateLimited_ContextCancelled tests that a full semaphore respects cancellation.
func TestDoRateLimited_ContextCancelled(t *testing.T) {
	// Arrange
	client := NewBaseClient(ClientConfig{MaxConcurrentRequests: 1}, http.DefaultClient)
	client.Semaphore <- struct{}{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	called := false
	err := client.DoRateLimited(ctx, func() error {
		called = true
		return nil
	})

	// Assert
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("expected fn not to run")
	}
}
