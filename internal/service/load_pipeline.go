package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/vilaca/issue-dashboard/internal/api"
	"github.com/vilaca/issue-dashboard/internal/domain"
	"github.com/vilaca/issue-dashboard/internal/state"
)

// DefaultRedirectDelay is how long an access-denied message stays visible before navigating home.
const DefaultRedirectDelay = 2 * time.Second

// ErrorKind classifies a failed load.
type ErrorKind int

const (
	// KindLoadFailure covers network errors, malformed responses and non-403 statuses.
	KindLoadFailure ErrorKind = iota
	// KindAccessDenied means the backend refused the credential with 403.
	KindAccessDenied
)

func (k ErrorKind) String() string {
	if k == KindAccessDenied {
		return "AccessDenied"
	}
	return "LoadFailure"
}

// LoadError is the classified outcome of a failed load. Its message is user-facing.
type LoadError struct {
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	if e.Kind == KindAccessDenied {
		return "Access denied: Admins only."
	}
	return "Failed to load issues."
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ClassifyLoadError maps any load failure onto the two error kinds.
func ClassifyLoadError(err error) *LoadError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	if api.IsForbidden(err) {
		return &LoadError{Kind: KindAccessDenied, Err: err}
	}
	return &LoadError{Kind: KindLoadFailure, Err: err}
}

// IsAccessDenied reports whether err is a load failure caused by a 403.
func IsAccessDenied(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr) && loadErr.Kind == KindAccessDenied
}

// LoadIssues performs the authorized fetch and returns the issues exactly as received.
func LoadIssues(ctx context.Context, client api.IssueClient, credential string) ([]domain.Issue, *LoadError) {
	issues, err := client.ListIssues(ctx, credential)
	if err != nil {
		return nil, ClassifyLoadError(err)
	}
	return issues, nil
}

// Navigator performs the navigation side effect of an access-denied load.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

// Scheduler runs fn once after d. The returned func cancels it if it has not fired yet.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

// Schedule implements Scheduler.
func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// LoadPipelineConfig holds configuration for creating a LoadPipeline.
type LoadPipelineConfig struct {
	Client        api.IssueClient
	Logger        *zap.Logger
	Scheduler     Scheduler
	HomeRoute     string
	RedirectDelay time.Duration
}

// LoadPipeline drives the initial load of a mount into its state controller.
type LoadPipeline struct {
	client        api.IssueClient
	logger        *zap.Logger
	scheduler     Scheduler
	homeRoute     string
	redirectDelay time.Duration
}

// NewLoadPipeline creates a load pipeline, filling in defaults for unset fields.
func NewLoadPipeline(cfg LoadPipelineConfig) *LoadPipeline {
	p := &LoadPipeline{
		client:        cfg.Client,
		logger:        cfg.Logger,
		scheduler:     cfg.Scheduler,
		homeRoute:     cfg.HomeRoute,
		redirectDelay: cfg.RedirectDelay,
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.scheduler == nil {
		p.scheduler = TimerScheduler{}
	}
	if p.homeRoute == "" {
		p.homeRoute = "/"
	}
	if p.redirectDelay <= 0 {
		p.redirectDelay = DefaultRedirectDelay
	}
	return p
}

// Run loads the issues for ctrl once. Later calls for the same controller do nothing.
// A result that arrives after ctrl was closed is discarded.
func (p *LoadPipeline) Run(ctx context.Context, ctrl *state.Controller, credential string, nav Navigator) {
	if !ctrl.BeginLoad() {
		p.logger.Debug("load already started for this mount")
		return
	}

	started := time.Now()
	issues, loadErr := LoadIssues(ctx, p.client, credential)

	if ctrl.Closed() {
		p.logger.Debug("discarding load result after teardown")
		return
	}

	if loadErr != nil {
		p.logger.Warn("issue load failed",
			zap.Stringer("kind", loadErr.Kind),
			zap.Error(loadErr.Err),
			zap.Duration("took", time.Since(started)))
		ctrl.OnLoadFailed(loadErr)

		if loadErr.Kind == KindAccessDenied && nav != nil {
			route := p.homeRoute
			cancel := p.scheduler.Schedule(p.redirectDelay, func() {
				p.logger.Info("navigating away after access denied", zap.String("route", route))
				nav.Navigate(route)
			})
			ctrl.OnTeardown(cancel)
		}
		return
	}

	p.logger.Info("issues loaded",
		zap.Int("count", len(issues)),
		zap.Duration("took", time.Since(started)))
	ctrl.OnLoadSucceeded(issues)
}

// HomeRoute returns the navigation target used on access denied.
func (p *LoadPipeline) HomeRoute() string {
	return p.homeRoute
}

// RedirectDelay returns how long the access-denied message is shown before navigating.
func (p *LoadPipeline) RedirectDelay() time.Duration {
	return p.redirectDelay
}
