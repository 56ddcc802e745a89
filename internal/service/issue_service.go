package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vilaca/issue-dashboard/internal/api"
	"github.com/vilaca/issue-dashboard/internal/domain"
	"github.com/vilaca/issue-dashboard/internal/state"
)

// ErrUnknownStatus is returned when an admin picks a status outside the offered set.
var ErrUnknownStatus = errors.New("unknown status")

// IssueService performs per-issue admin actions against the backend and
// reconciles the outcome into the mount's state controller.
type IssueService struct {
	client api.IssueClient
	logger *zap.Logger
}

// NewIssueService creates a new issue service.
func NewIssueService(client api.IssueClient, logger *zap.Logger) *IssueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IssueService{client: client, logger: logger}
}

// UpdateStatus changes an issue's status on the backend, then applies the
// returned record to ctrl. A backend failure leaves ctrl untouched.
func (s *IssueService) UpdateStatus(ctx context.Context, ctrl *state.Controller, credential, id, status string) (*domain.Issue, error) {
	if !ValidStatus(status) {
		// An issue already carrying an unlisted status may be resubmitted unchanged.
		if current, ok := findIssue(ctrl, id); ok && current.Status == status {
			return &current, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	updated, err := s.client.UpdateIssueStatus(ctx, credential, id, status)
	if err != nil {
		s.logger.Warn("status update failed", zap.String("issue", id), zap.Error(err))
		return nil, err
	}

	if !ctrl.OnIssueUpdated(*updated) {
		s.logger.Debug("updated issue not in collection", zap.String("issue", updated.ID))
	}
	s.logger.Info("issue status updated", zap.String("issue", updated.ID), zap.String("status", updated.Status))
	return updated, nil
}

// Delete removes an issue on the backend, then from ctrl.
func (s *IssueService) Delete(ctx context.Context, ctrl *state.Controller, credential, id string) error {
	if err := s.client.DeleteIssue(ctx, credential, id); err != nil {
		s.logger.Warn("issue delete failed", zap.String("issue", id), zap.Error(err))
		return err
	}

	if !ctrl.OnIssueDeleted(id) {
		s.logger.Debug("deleted issue not in collection", zap.String("issue", id))
	}
	s.logger.Info("issue deleted", zap.String("issue", id))
	return nil
}

// NextStatus returns the status that follows current in domain.KnownStatuses, wrapping around.
// Unknown statuses advance to the first known one.
func NextStatus(current string) string {
	current = domain.NormalizeStatus(current)
	for i, s := range domain.KnownStatuses {
		if s == current {
			return domain.KnownStatuses[(i+1)%len(domain.KnownStatuses)]
		}
	}
	return domain.KnownStatuses[0]
}

// ValidStatus reports whether status is one an admin may set.
func ValidStatus(status string) bool {
	for _, s := range domain.KnownStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func findIssue(ctrl *state.Controller, id string) (domain.Issue, bool) {
	for _, is := range ctrl.Issues() {
		if is.ID == id {
			return is, true
		}
	}
	return domain.Issue{}, false
}
