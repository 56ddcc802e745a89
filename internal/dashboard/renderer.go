package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/vilaca/issue-dashboard/internal/domain"
	"github.com/vilaca/issue-dashboard/internal/state"
	"github.com/vilaca/issue-dashboard/internal/stats"
)

// Renderer handles rendering responses to HTTP clients.
// This interface follows Interface Segregation Principle (SOLID-I).
type Renderer interface {
	RenderHome(w io.Writer, view HomeView) error
	RenderDashboard(w io.Writer, view DashboardView) error
	RenderDashboardJSON(w io.Writer, view DashboardView) error
	RenderHealth(w io.Writer) error
}

// HomeView is what the home page shows.
type HomeView struct {
	SignedIn bool
	Flashes  []string
}

// DashboardView is one render of a mount.
type DashboardView struct {
	MountID       string
	Snapshot      state.Snapshot
	Summary       stats.Summary
	AccessDenied  bool
	HomeRoute     string
	RedirectDelay time.Duration
	Flashes       []string
}

// NewDashboardView derives the summary from snap so counters and charts match the rendered issues.
func NewDashboardView(mountID string, snap state.Snapshot) DashboardView {
	return DashboardView{
		MountID:  mountID,
		Snapshot: snap,
		Summary:  stats.Summarize(snap.Issues),
	}
}

// HTMLRenderer implements Renderer for HTML responses.
type HTMLRenderer struct {
	// All HTML is embedded in methods, no external templates needed
}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

func (r *HTMLRenderer) RenderHealth(w io.Writer) error {
	_, err := w.Write([]byte(`{"status":"ok"}`))
	return err
}

// RenderHome renders the navigation target: credential form and link to the dashboard.
func (r *HTMLRenderer) RenderHome(w io.Writer, view HomeView) error {
	var sb strings.Builder

	sb.WriteString(htmlHead("Home", ""))
	sb.WriteString(`
<body>
	<div class="container">
		<h1>🛠️ Issue Dashboard</h1>
		`)
	sb.WriteString(buildNavigation(view.SignedIn))
	writeFlashes(&sb, view.Flashes)

	sb.WriteString(`
		<div class="card">
			<h2>Admin access</h2>`)
	if view.SignedIn {
		sb.WriteString(`
			<p class="meta-text">A credential is stored for this browser session.</p>
			<p><a href="/dashboard">Open the dashboard →</a></p>`)
	} else {
		sb.WriteString(`
			<p class="meta-text">Paste an admin bearer token to manage reported issues.</p>`)
	}
	sb.WriteString(`
			<form class="credential-form" method="POST" action="/session">
				<label for="credential">Bearer token</label>
				<textarea id="credential" name="credential" required></textarea>
				<button type="submit">Save and open dashboard</button>
			</form>
		</div>
	</div>
`)
	sb.WriteString(htmlFooter())

	_, err := w.Write([]byte(sb.String()))
	return err
}

// RenderDashboard renders the loading screen, or the dashboard with its error banner when the load failed.
func (r *HTMLRenderer) RenderDashboard(w io.Writer, view DashboardView) error {
	html, err := r.buildDashboardHTML(view)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(html))
	return err
}

// dashboardJSON is the shape of GET /api/dashboard.
type dashboardJSON struct {
	Mount        string         `json:"mount"`
	Phase        state.Phase    `json:"phase"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	Issues       []domain.Issue `json:"issues"`
	stats.Summary
}

func (r *HTMLRenderer) RenderDashboardJSON(w io.Writer, view DashboardView) error {
	issues := view.Snapshot.Issues
	if issues == nil {
		issues = []domain.Issue{}
	}
	return json.NewEncoder(w).Encode(dashboardJSON{
		Mount:        view.MountID,
		Phase:        view.Snapshot.Phase,
		ErrorMessage: view.Snapshot.ErrorMessage,
		Issues:       issues,
		Summary:      view.Summary,
	})
}

// buildDashboardHTML constructs the HTML for one dashboard mount.
// Follows SLAP - operates at single level of abstraction.
func (r *HTMLRenderer) buildDashboardHTML(view DashboardView) (string, error) {
	var sb strings.Builder
	snap := view.Snapshot

	switch {
	case snap.Phase == state.PhaseLoading:
		sb.WriteString(htmlHead("Loading", refreshMeta(1, "/dashboard")))
	case snap.Phase == state.PhaseFailed && view.AccessDenied:
		sb.WriteString(htmlHead("Admin Dashboard", refreshMeta(redirectSeconds(view.RedirectDelay), view.HomeRoute)))
	default:
		sb.WriteString(htmlHead("Admin Dashboard", `<script src="`+chartJSURL+`"></script>`))
	}

	sb.WriteString(`
<body>
	<div class="container">
		`)

	if snap.Phase == state.PhaseLoading {
		sb.WriteString(loadingSpinner("Loading Dashboard..."))
		sb.WriteString(`
	</div>
`)
		sb.WriteString(htmlFooter())
		return sb.String(), nil
	}

	sb.WriteString(buildNavigation(true))
	sb.WriteString(`
		<h1>🛠️ Admin Dashboard</h1>
`)

	if snap.Phase == state.PhaseFailed {
		sb.WriteString(fmt.Sprintf(`		<div class="banner error">❌ %s</div>
`, escapeHTML(snap.ErrorMessage)))
	}
	writeFlashes(&sb, view.Flashes)

	r.writeCounters(&sb, view.Summary)
	if err := r.writeCharts(&sb, view.Summary); err != nil {
		return "", err
	}
	r.writeIssues(&sb, snap.Issues)

	sb.WriteString(`
		<form method="POST" action="/dashboard/reload"><button type="submit">Reload</button></form>
	</div>
`)
	if len(snap.Issues) > 0 {
		sb.WriteString(filterScript())
	}
	sb.WriteString(htmlFooter())
	return sb.String(), nil
}

func (r *HTMLRenderer) writeCounters(sb *strings.Builder, summary stats.Summary) {
	sb.WriteString(fmt.Sprintf(`		<div class="stats-grid">
			<div class="card"><div class="stat-label">Total Issues</div><div class="stat-value" id="total-issues">%d</div></div>
			<div class="card"><div class="stat-label">Pending Issues</div><div class="stat-value" id="pending-issues">%d</div></div>
			<div class="card"><div class="stat-label">Resolved Issues</div><div class="stat-value" id="resolved-issues">%d</div></div>
		</div>
`, summary.Total, summary.Pending, summary.Resolved))
}

// writeCharts embeds the prepared datasets as JSON; encoding/json escapes <, > and & for script context.
func (r *HTMLRenderer) writeCharts(sb *strings.Builder, summary stats.Summary) error {
	statusData, err := json.Marshal(summary.StatusChart)
	if err != nil {
		return fmt.Errorf("failed to encode status chart: %w", err)
	}
	categoryData, err := json.Marshal(summary.CategoryChart)
	if err != nil {
		return fmt.Errorf("failed to encode category chart: %w", err)
	}

	sb.WriteString(fmt.Sprintf(`		<div class="charts-grid">
			<div class="card">
				<div class="chart-title">Issues by Status</div>
				<div class="chart-box"><canvas id="status-chart"></canvas></div>
			</div>
			<div class="card">
				<div class="chart-title">Issues by Category</div>
				<div class="chart-box"><canvas id="category-chart"></canvas></div>
			</div>
		</div>
		<script>
			(function() {
				if (typeof Chart === 'undefined') return;
				const opts = { responsive: true, maintainAspectRatio: false };
				new Chart(document.getElementById('status-chart'), { type: 'pie', data: %s, options: opts });
				new Chart(document.getElementById('category-chart'), { type: 'bar', data: %s, options: opts });
			})();
		</script>
`, statusData, categoryData))
	return nil
}

func (r *HTMLRenderer) writeIssues(sb *strings.Builder, issues []domain.Issue) {
	sb.WriteString(`		<h2>Current Issues</h2>
`)
	if len(issues) == 0 {
		sb.WriteString(`		<p class="empty">No issues to manage.</p>
`)
		return
	}

	sb.WriteString(`		<div class="filters">
			<div class="filter-group">
				<label for="filter-status">Status</label>
				<select id="filter-status"><option value="">All</option></select>
			</div>
			<div class="filter-group">
				<label for="filter-category">Category</label>
				<select id="filter-category"><option value="">All</option></select>
			</div>
			<div class="filter-count"></div>
		</div>
		<table class="issues-table" id="issues-table">
			<thead>
				<tr><th>Issue</th><th>Category</th><th>Status</th><th>Reported</th><th>Actions</th></tr>
			</thead>
			<tbody>
`)
	for _, is := range issues {
		r.writeIssueRow(sb, is)
	}
	sb.WriteString(`			</tbody>
		</table>
`)
}

// writeIssueRow writes a single issue row to the string builder.
func (r *HTMLRenderer) writeIssueRow(sb *strings.Builder, is domain.Issue) {
	status := is.NormalizedStatus()
	category := is.NormalizedCategory()
	action := "/dashboard/issues/" + url.PathEscape(is.ID)

	reported := escapeHTML(is.ReporterName())
	if !is.CreatedAt.IsZero() {
		reported += "<br><span class=\"meta-text\">" + is.CreatedAt.Format("2006-01-02 15:04") + "</span>"
	}

	location := ""
	if is.Location != "" {
		location = fmt.Sprintf(`<div class="meta-text">📍 %s</div>`, escapeHTML(is.Location))
	}

	sb.WriteString(fmt.Sprintf(`				<tr data-status="%s" data-category="%s" data-id="%s">
					<td>
						<div class="issue-title">%s</div>
						<div class="issue-description">%s</div>
						%s
					</td>
					<td>%s</td>
					<td><span class="status-badge %s">%s</span></td>
					<td>%s</td>
					<td>
						<div class="issue-actions">
							<form method="POST" action="%s/status">
								<select name="status" aria-label="Status">%s</select>
								<button type="submit">Update</button>
							</form>
							<form method="POST" action="%s/delete" onsubmit="return confirm('Delete this issue?');">
								<button type="submit" class="danger">Delete</button>
							</form>
						</div>
					</td>
				</tr>
`,
		escapeHTML(status), escapeHTML(category), escapeHTML(is.ID),
		escapeHTML(is.Title), sanitizeDescription(is.Description), location,
		escapeHTML(category),
		statusClass(status), escapeHTML(status),
		reported,
		escapeHTML(action), statusOptions(status),
		escapeHTML(action)))
}

// statusOptions lists the known statuses, plus current when it is not one of them.
func statusOptions(current string) string {
	var sb strings.Builder
	options := domain.KnownStatuses
	known := false
	for _, s := range options {
		if s == current {
			known = true
		}
	}
	if !known {
		options = append([]string{current}, options...)
	}

	for _, s := range options {
		selected := ""
		if s == current {
			selected = " selected"
		}
		sb.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`, escapeHTML(s), selected, escapeHTML(s)))
	}
	return sb.String()
}

func writeFlashes(sb *strings.Builder, flashes []string) {
	for _, f := range flashes {
		sb.WriteString(fmt.Sprintf(`
		<div class="banner info">%s</div>`, escapeHTML(f)))
	}
}

// redirectSeconds rounds d up to whole seconds for a meta refresh.
func redirectSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}
