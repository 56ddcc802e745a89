package dashboard

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/vilaca/issue-dashboard/internal/domain"
	"github.com/vilaca/issue-dashboard/internal/state"
)

func readyView(issues ...domain.Issue) DashboardView {
	return NewDashboardView("mount-1", state.Snapshot{Phase: state.PhaseReady, Issues: issues})
}

// TestHTMLRenderer_RenderHome tests the home page rendering.
// Follows AAA (Arrange, Act, Assert) pattern.
func TestHTMLRenderer_RenderHome(t *testing.T) {
	// Arrange
	renderer := NewHTMLRenderer()
	buf := &bytes.Buffer{}

	// Act
	err := renderer.RenderHome(buf, HomeView{Flashes: []string{"Signed out <now>"}})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "<!DOCTYPE html>") {
		t.Errorf("expected output to contain '<!DOCTYPE html>', got %q", output)
	}
	if !strings.Contains(output, `action="/session"`) {
		t.Error("expected credential form")
	}
	if !strings.Contains(output, "Signed out &lt;now&gt;") {
		t.Error("expected escaped flash message")
	}
	if strings.Contains(output, "/session/logout") {
		t.Error("expected no sign out button when signed out")
	}
}

// TestHTMLRenderer_RenderHealth tests the health check rendering.
// Follows AAA (Arrange, Act, Assert) pattern.
func TestHTMLRenderer_RenderHealth(t *testing.T) {
	// Arrange
	renderer := NewHTMLRenderer()
	buf := &bytes.Buffer{}

	// Act
	err := renderer.RenderHealth(buf)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := `{"status":"ok"}`
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

// TestHTMLRenderer_RenderDashboard_Loading tests the loading screen.
func TestHTMLRenderer_RenderDashboard_Loading(t *testing.T) {
	buf := &bytes.Buffer{}

	err := NewHTMLRenderer().RenderDashboard(buf, NewDashboardView("m", state.Snapshot{Phase: state.PhaseLoading}))

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Loading Dashboard...") {
		t.Error("expected loading message")
	}
	if !strings.Contains(output, `content="1;url=/dashboard"`) {
		t.Error("expected loading page to refresh itself")
	}
	if strings.Contains(output, "Total Issues") {
		t.Error("expected no counters while loading")
	}
}

// TestHTMLRenderer_RenderDashboard_Ready tests counters, charts and issue rows.
func TestHTMLRenderer_RenderDashboard_Ready(t *testing.T) {
	// Arrange
	view := readyView(
		domain.Issue{ID: "1", Title: "Pothole", Status: "Pending", Category: "Road"},
		domain.Issue{ID: "2", Title: "Leak", Status: "Resolved", Category: "Water"},
		domain.Issue{ID: "3", Title: "Noise"},
	)
	buf := &bytes.Buffer{}

	// Act
	err := NewHTMLRenderer().RenderDashboard(buf, view)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	for _, want := range []string{
		`id="total-issues">3<`,
		`id="pending-issues">2<`,
		`id="resolved-issues">1<`,
		`id="status-chart"`,
		`"labels":["Pending","Resolved"]`,
		`"labels":["Road","Water","Uncategorized"]`,
		`"label":"# of Issues"`,
		`data-category="Uncategorized"`,
		`action="/dashboard/issues/3/status"`,
		`action="/dashboard/issues/3/delete"`,
		"Current Issues",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(output, "No issues to manage.") {
		t.Error("expected no empty state with issues present")
	}
}

// TestHTMLRenderer_RenderDashboard_Empty tests the empty state.
func TestHTMLRenderer_RenderDashboard_Empty(t *testing.T) {
	buf := &bytes.Buffer{}

	if err := NewHTMLRenderer().RenderDashboard(buf, readyView()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "No issues to manage.") {
		t.Error("expected empty state")
	}
	if !strings.Contains(output, `id="total-issues">0<`) {
		t.Error("expected zero total")
	}
}

// TestHTMLRenderer_RenderDashboard_AccessDenied tests the banner and the delayed redirect home.
func TestHTMLRenderer_RenderDashboard_AccessDenied(t *testing.T) {
	view := NewDashboardView("m", state.Snapshot{Phase: state.PhaseFailed, ErrorMessage: "Access denied: Admins only."})
	view.AccessDenied = true
	view.HomeRoute = "/"
	view.RedirectDelay = 2 * time.Second
	buf := &bytes.Buffer{}

	if err := NewHTMLRenderer().RenderDashboard(buf, view); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "❌ Access denied: Admins only.") {
		t.Error("expected access denied banner")
	}
	if !strings.Contains(output, `content="2;url=/"`) {
		t.Error("expected refresh to home after 2 seconds")
	}
}

// TestHTMLRenderer_RenderDashboard_LoadFailure tests that other failures do not redirect.
func TestHTMLRenderer_RenderDashboard_LoadFailure(t *testing.T) {
	view := NewDashboardView("m", state.Snapshot{Phase: state.PhaseFailed, ErrorMessage: "Failed to load issues."})
	buf := &bytes.Buffer{}

	if err := NewHTMLRenderer().RenderDashboard(buf, view); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "❌ Failed to load issues.") {
		t.Error("expected failure banner")
	}
	if strings.Contains(output, `http-equiv="refresh"`) {
		t.Error("expected no refresh on load failure")
	}
	if !strings.Contains(output, "No issues to manage.") {
		t.Error("expected empty collection to be rendered")
	}
}

// TestHTMLRenderer_EscapesIssueFields tests XSS handling of passthrough fields.
func TestHTMLRenderer_EscapesIssueFields(t *testing.T) {
	view := readyView(domain.Issue{
		ID:          "1",
		Title:       `<script>alert("t")</script>`,
		Description: `<b>ok</b><script>alert("d")</script>`,
		Category:    `<img src=x onerror=alert(1)>`,
	})
	buf := &bytes.Buffer{}

	if err := NewHTMLRenderer().RenderDashboard(buf, view); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	if strings.Contains(output, `<script>alert(`) {
		t.Error("expected scripts to be escaped or stripped")
	}
	if strings.Contains(output, "<img src=x") {
		t.Error("expected category to be escaped")
	}
	if !strings.Contains(output, "<b>ok</b>") {
		t.Error("expected safe description formatting to be kept")
	}
}

// TestHTMLRenderer_RenderDashboardJSON tests the JSON shape.
func TestHTMLRenderer_RenderDashboardJSON(t *testing.T) {
	// Arrange
	view := readyView(
		domain.Issue{ID: "1", Status: "Pending"},
		domain.Issue{ID: "2", Status: "Resolved", Category: "Road"},
	)
	buf := &bytes.Buffer{}

	// Act
	err := NewHTMLRenderer().RenderDashboardJSON(buf, view)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var got struct {
		Mount          string           `json:"mount"`
		Phase          string           `json:"phase"`
		Issues         []domain.Issue   `json:"issues"`
		Total          int              `json:"total"`
		Pending        int              `json:"pending"`
		Resolved       int              `json:"resolved"`
		CategoryCounts map[string]int   `json:"categoryCounts"`
		StatusChart    *json.RawMessage `json:"statusChart"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if got.Mount != "mount-1" || got.Phase != "Ready" {
		t.Errorf("unexpected mount/phase %q/%q", got.Mount, got.Phase)
	}
	if got.Total != 2 || got.Pending != 1 || got.Resolved != 1 || len(got.Issues) != 2 {
		t.Errorf("unexpected totals %+v", got)
	}
	if got.CategoryCounts["Uncategorized"] != 1 || got.CategoryCounts["Road"] != 1 {
		t.Errorf("unexpected category counts %v", got.CategoryCounts)
	}
	if got.StatusChart == nil {
		t.Error("expected status chart")
	}
}

// TestStatusOptions tests that an unknown current status stays selectable.
func TestStatusOptions(t *testing.T) {
	got := statusOptions("Closed")

	if !strings.Contains(got, `<option value="Closed" selected>`) {
		t.Errorf("expected current status selected, got %q", got)
	}
	if !strings.Contains(got, `<option value="In Progress">`) {
		t.Errorf("expected known statuses offered, got %q", got)
	}
}

func TestRedirectSeconds(t *testing.T) {
	tests := map[time.Duration]int{
		0:                       0,
		2 * time.Second:         2,
		1500 * time.Millisecond: 2,
	}
	for d, want := range tests {
		if got := redirectSeconds(d); got != want {
			t.Errorf("redirectSeconds(%v) = %d, want %d", d, got, want)
		}
	}
}
