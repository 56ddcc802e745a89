package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vilaca/issue-dashboard/internal/logging"
	"github.com/vilaca/issue-dashboard/internal/service"
	"github.com/vilaca/issue-dashboard/internal/state"
)

// defaultRequestTimeout bounds each backend call made on behalf of a request.
const defaultRequestTimeout = 30 * time.Second

// Handler handles HTTP requests for the dashboard.
// Each handler method has a Single Responsibility (SRP).
type Handler struct {
	renderer       Renderer
	logger         *zap.Logger
	sessions       *SessionManager
	mounts         *service.MountStore
	pipeline       *service.LoadPipeline
	issues         *service.IssueService
	requestTimeout time.Duration
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	Renderer       Renderer
	Logger         *zap.Logger
	Sessions       *SessionManager
	Mounts         *service.MountStore
	Pipeline       *service.LoadPipeline
	Issues         *service.IssueService
	RequestTimeout time.Duration
}

// NewHandler creates a new Handler with injected dependencies (Dependency Inversion Principle).
// This follows IoC (Inversion of Control) by accepting dependencies rather than creating them.
func NewHandler(cfg HandlerConfig) *Handler {
	h := &Handler{
		renderer:       cfg.Renderer,
		logger:         cfg.Logger,
		sessions:       cfg.Sessions,
		mounts:         cfg.Mounts,
		pipeline:       cfg.Pipeline,
		issues:         cfg.Issues,
		requestTimeout: cfg.RequestTimeout,
	}
	if h.renderer == nil {
		h.renderer = NewHTMLRenderer()
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.requestTimeout <= 0 {
		h.requestTimeout = defaultRequestTimeout
	}
	return h
}

// Routes returns the router with middleware and all dashboard routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware(h.logger))

	r.Get("/", h.handleHome)
	r.Post("/session", h.handleSignIn)
	r.Post("/session/logout", h.handleSignOut)

	r.Route("/dashboard", func(dr chi.Router) {
		dr.Get("/", h.handleDashboard)
		dr.Post("/reload", h.handleReload)
		dr.Post("/issues/{id}/status", h.handleUpdateStatus)
		dr.Post("/issues/{id}/delete", h.handleDelete)
	})

	r.Get("/api/dashboard", h.handleDashboardAPI)
	r.Get("/api/health", h.handleHealth)

	return r
}

// handleHealth serves the health check endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.renderer.RenderHealth(w); err != nil {
		h.logger.Error("failed to render health", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// handleHome is the navigation target. Arriving here unmounts the browser's dashboard.
func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(r)
	h.unmount(sess)
	flashes := sess.Flashes()

	if err := sess.Save(w, r); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderHome(w, HomeView{SignedIn: sess.SignedIn(), Flashes: flashes}); err != nil {
		h.logger.Error("failed to render home", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// handleSignIn stores the submitted credential and opens a fresh dashboard.
func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	credential := strings.TrimSpace(r.PostForm.Get("credential"))
	credential = strings.TrimPrefix(credential, "Bearer ")

	sess := h.sessions.Get(r)
	h.unmount(sess)
	sess.SetCredential(credential)
	h.saveAndRedirect(w, r, sess, "/dashboard")
}

// handleSignOut clears the credential and tears down the mount.
func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(r)
	h.unmount(sess)
	sess.Clear()
	h.saveAndRedirect(w, r, sess, "/")
}

// handleDashboard renders the browser's mount, creating it and starting its load on first visit.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(r)
	mount := h.mountFor(sess)

	if route, ok := mount.PendingNavigation(); ok {
		h.unmount(sess)
		h.saveAndRedirect(w, r, sess, route)
		return
	}

	view := h.viewFor(mount)
	view.Flashes = sess.Flashes()
	if err := sess.Save(w, r); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.RenderDashboard(w, view); err != nil {
		h.logger.Error("failed to render dashboard", zap.String("mount", mount.ID), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// handleDashboardAPI returns the same view as JSON.
func (h *Handler) handleDashboardAPI(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(r)
	mount := h.mountFor(sess)
	if err := sess.Save(w, r); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := h.renderer.RenderDashboardJSON(w, h.viewFor(mount)); err != nil {
		h.logger.Error("failed to render dashboard json", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// handleReload tears down the current mount so the next visit loads again.
func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(r)
	h.unmount(sess)
	h.saveAndRedirect(w, r, sess, "/dashboard")
}

// handleUpdateStatus changes one issue's status and reconciles it into the mount.
func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	status := r.PostForm.Get("status")

	sess := h.sessions.Get(r)
	mount, ok := h.readyMount(sess)
	if !ok {
		h.saveAndRedirect(w, r, sess, "/dashboard")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if _, err := h.issues.UpdateStatus(ctx, mount.Controller, mount.Credential, id, status); err != nil {
		if errors.Is(err, service.ErrUnknownStatus) {
			sess.AddFlash("Unknown status: " + status)
		} else {
			sess.AddFlash("Failed to update issue status.")
		}
	}
	h.saveAndRedirect(w, r, sess, "/dashboard")
}

// handleDelete deletes one issue and removes it from the mount.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess := h.sessions.Get(r)
	mount, ok := h.readyMount(sess)
	if !ok {
		h.saveAndRedirect(w, r, sess, "/dashboard")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if err := h.issues.Delete(ctx, mount.Controller, mount.Credential, id); err != nil {
		sess.AddFlash("Failed to delete issue.")
	}
	h.saveAndRedirect(w, r, sess, "/dashboard")
}

// mountFor returns the session's mount, creating one and starting its load when there is none.
func (h *Handler) mountFor(sess *Session) *service.Mount {
	if id := sess.MountID(); id != "" {
		if m, ok := h.mounts.Get(id); ok {
			return m
		}
	}

	m := h.mounts.Create(sess.Credential())
	sess.SetMountID(m.ID)
	h.startLoad(m)
	return m
}

// readyMount returns the session's existing mount if its load succeeded.
func (h *Handler) readyMount(sess *Session) (*service.Mount, bool) {
	id := sess.MountID()
	if id == "" {
		return nil, false
	}
	m, ok := h.mounts.Get(id)
	if !ok || m.Controller.Phase() != state.PhaseReady {
		return nil, false
	}
	return m, true
}

// startLoad runs the load pipeline in the background. Tearing the mount down cancels the fetch.
func (h *Handler) startLoad(m *service.Mount) {
	ctx, cancel := context.WithTimeout(context.Background(), h.requestTimeout)
	m.Controller.OnTeardown(cancel)

	go func() {
		defer cancel()
		h.pipeline.Run(ctx, m.Controller, m.Credential, m)
	}()
}

func (h *Handler) unmount(sess *Session) {
	if id := sess.MountID(); id != "" {
		h.mounts.Remove(id)
		sess.SetMountID("")
	}
}

func (h *Handler) viewFor(m *service.Mount) DashboardView {
	snap := m.Controller.Snapshot()
	view := NewDashboardView(m.ID, snap)
	view.HomeRoute = h.pipeline.HomeRoute()
	view.RedirectDelay = h.pipeline.RedirectDelay()
	view.AccessDenied = snap.Phase == state.PhaseFailed && service.IsAccessDenied(m.Controller.Err())
	return view
}

func (h *Handler) saveAndRedirect(w http.ResponseWriter, r *http.Request, sess *Session, target string) {
	if err := sess.Save(w, r); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
