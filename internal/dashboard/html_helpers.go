package dashboard

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// chartJSURL is the Chart.js build the dashboard charts are drawn with.
const chartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"

// descriptionPolicy allows the basic formatting reporters paste into descriptions.
var descriptionPolicy = bluemonday.UGCPolicy()

// htmlHead returns the common HTML head section with proper meta tags.
// extra is written verbatim before </head>.
func htmlHead(title, extra string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en" data-theme="dark">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0, viewport-fit=cover">
	<meta name="description" content="Review, triage and resolve reported issues">

	<!-- Favicon -->
	<link rel="icon" type="image/svg+xml" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='0.9em' font-size='90'>🛠️</text></svg>">

	<title>%s - Issue Dashboard</title>
	%s
	%s
</head>`, escapeHTML(title), commonCSS(), extra)
}

// refreshMeta returns a meta refresh tag that reloads url after seconds.
func refreshMeta(seconds int, url string) string {
	return fmt.Sprintf(`<meta http-equiv="refresh" content="%d;url=%s">`, seconds, escapeHTML(url))
}

// commonCSS returns the shared CSS styles used across all pages.
func commonCSS() string {
	return `<style>
		/* CSS Variables for theming */
		:root {
			--bg-primary: #f5f5f5;
			--bg-secondary: white;
			--text-primary: #333;
			--text-secondary: #666;
			--link-color: #0066cc;
			--button-bg: #0066cc;
			--button-hover: #0052a3;
			--border-color: #e0e0e0;
			--shadow: rgba(0,0,0,0.1);
			--accent: #2563eb;
			--chart-accent: #7c3aed;
			--error-bg: #f8d7da;
			--error-text: #721c24;
			--resolved-bg: #d4edda;
			--resolved-text: #155724;
			--progress-bg: #d1ecf1;
			--progress-text: #0c5460;
			--pending-bg: #fff3cd;
			--pending-text: #856404;
			--other-bg: #e2e3e5;
			--other-text: #383d41;
		}

		[data-theme="dark"] {
			--bg-primary: #111827;
			--bg-secondary: #1f2937;
			--text-primary: #f3f4f6;
			--text-secondary: #9ca3af;
			--link-color: #60a5fa;
			--button-bg: #3b82f6;
			--button-hover: #2563eb;
			--border-color: #374151;
			--shadow: rgba(0,0,0,0.4);
			--accent: #60a5fa;
			--chart-accent: #c084fc;
			--error-bg: #f87171;
			--error-text: #7f1d1d;
			--resolved-bg: #1e4620;
			--resolved-text: #90ee90;
			--progress-bg: #1a3a4a;
			--progress-text: #5dade2;
			--pending-bg: #4a3a1a;
			--pending-text: #ffd966;
			--other-bg: #2a2a2a;
			--other-text: #bbb;
		}

		/* Base styles */
		* {
			box-sizing: border-box;
			margin: 0;
			padding: 0;
		}

		body {
			font-family: system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
			padding: 20px;
			background: var(--bg-primary);
			color: var(--text-primary);
			transition: background-color 0.3s, color 0.3s;
			line-height: 1.6;
		}

		.container {
			max-width: 1280px;
			margin: 0 auto;
		}

		h1 {
			color: var(--accent);
			margin-bottom: 30px;
			font-size: 2.5rem;
			font-weight: 800;
			text-align: center;
		}

		h2 {
			color: var(--accent);
			font-size: 1.8rem;
			font-weight: 700;
			text-align: center;
			margin-bottom: 20px;
		}

		/* Navigation */
		.nav {
			margin-bottom: 30px;
			display: flex;
			align-items: center;
			gap: 15px;
			flex-wrap: wrap;
		}

		.nav a {
			color: var(--link-color);
			text-decoration: none;
		}

		.nav a:hover {
			text-decoration: underline;
		}

		.nav form {
			display: inline;
		}

		button, .button {
			padding: 8px 16px;
			background: var(--button-bg);
			color: white;
			border: none;
			border-radius: 4px;
			cursor: pointer;
			font-size: 14px;
			font-weight: 500;
			transition: background-color 0.3s, transform 0.1s;
		}

		button:hover {
			background: var(--button-hover);
		}

		button:active {
			transform: scale(0.98);
		}

		button.danger {
			background: #dc2626;
		}

		button.danger:hover {
			background: #b91c1c;
		}

		.card {
			background: var(--bg-secondary);
			padding: 24px;
			border-radius: 8px;
			box-shadow: 0 2px 8px var(--shadow);
			border: 1px solid var(--border-color);
		}

		/* Banners */
		.banner {
			padding: 10px 16px;
			border-radius: 6px;
			margin-bottom: 24px;
			text-align: center;
			font-weight: 500;
		}

		.banner.error {
			background: var(--error-bg);
			color: var(--error-text);
		}

		.banner.info {
			background: var(--progress-bg);
			color: var(--progress-text);
		}

		/* Counters */
		.stats-grid {
			display: grid;
			grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
			gap: 24px;
			margin-bottom: 40px;
		}

		.stat-label {
			color: var(--text-secondary);
		}

		.stat-value {
			font-size: 2.2rem;
			font-weight: 700;
		}

		/* Charts */
		.charts-grid {
			display: grid;
			grid-template-columns: repeat(auto-fit, minmax(360px, 1fr));
			gap: 24px;
			margin-bottom: 40px;
		}

		.chart-title {
			color: var(--chart-accent);
			font-size: 1.2rem;
			font-weight: 700;
			text-align: center;
			margin-bottom: 16px;
		}

		.chart-box {
			position: relative;
			height: 300px;
		}

		/* Status Badges */
		.status-badge {
			padding: 4px 10px;
			border-radius: 4px;
			font-size: 12px;
			font-weight: 500;
			text-transform: uppercase;
			display: inline-block;
		}

		.status-badge.pending {
			background: var(--pending-bg);
			color: var(--pending-text);
		}

		.status-badge.in-progress {
			background: var(--progress-bg);
			color: var(--progress-text);
		}

		.status-badge.resolved {
			background: var(--resolved-bg);
			color: var(--resolved-text);
		}

		.status-badge.other {
			background: var(--other-bg);
			color: var(--other-text);
		}

		/* Issues table */
		.issues-table {
			width: 100%;
			border-collapse: collapse;
			background: var(--bg-secondary);
			border-radius: 8px;
			overflow: hidden;
		}

		.issues-table th, .issues-table td {
			padding: 12px;
			text-align: left;
			border-bottom: 1px solid var(--border-color);
			vertical-align: top;
		}

		.issues-table th {
			font-size: 12px;
			text-transform: uppercase;
			color: var(--text-secondary);
		}

		.issue-title {
			font-weight: 600;
		}

		.issue-description {
			color: var(--text-secondary);
			font-size: 14px;
			margin-top: 4px;
		}

		.issue-actions {
			display: flex;
			gap: 8px;
			flex-wrap: wrap;
		}

		.issue-actions select {
			padding: 6px 8px;
			border: 1px solid var(--border-color);
			border-radius: 4px;
			background: var(--bg-primary);
			color: var(--text-primary);
		}

		/* Filters */
		.filters {
			background: var(--bg-secondary);
			padding: 20px;
			border-radius: 8px;
			box-shadow: 0 2px 4px var(--shadow);
			margin-bottom: 20px;
			display: flex;
			flex-wrap: wrap;
			gap: 15px;
			align-items: center;
		}

		.filter-group {
			display: flex;
			flex-direction: column;
			gap: 5px;
			min-width: 200px;
		}

		.filter-group label {
			font-size: 12px;
			font-weight: 500;
			color: var(--text-secondary);
			text-transform: uppercase;
		}

		.filter-group select {
			padding: 8px 12px;
			border: 1px solid var(--border-color);
			border-radius: 4px;
			font-size: 14px;
			background: var(--bg-primary);
			color: var(--text-primary);
			cursor: pointer;
		}

		.filter-count {
			margin-left: auto;
			font-size: 14px;
			color: var(--text-secondary);
			font-weight: 500;
		}

		/* Empty State */
		.empty {
			text-align: center;
			padding: 40px;
			color: var(--text-secondary);
			font-size: 18px;
		}

		.meta-text {
			color: var(--text-secondary);
			font-size: 14px;
		}

		/* Home form */
		.credential-form {
			display: flex;
			flex-direction: column;
			gap: 12px;
			max-width: 560px;
		}

		.credential-form textarea {
			padding: 8px 12px;
			border: 1px solid var(--border-color);
			border-radius: 4px;
			background: var(--bg-primary);
			color: var(--text-primary);
			font-family: monospace;
			min-height: 90px;
		}

		/* Loading */
		.loading-screen {
			min-height: 70vh;
			display: flex;
			flex-direction: column;
			align-items: center;
			justify-content: center;
			gap: 20px;
		}

		.loading-spinner {
			width: 60px;
			height: 60px;
			border: 5px solid rgba(255, 255, 255, 0.3);
			border-top-color: var(--link-color);
			border-radius: 50%;
			animation: spin 0.8s linear infinite;
		}

		@keyframes spin {
			to { transform: rotate(360deg); }
		}
	</style>`
}

// loadingSpinner returns the HTML for the loading screen.
func loadingSpinner(message string) string {
	return fmt.Sprintf(`<div class="loading-screen">
		<div class="loading-spinner"></div>
		<p>%s</p>
	</div>`, escapeHTML(message))
}

// themeToggleScript returns the common theme toggle JavaScript.
func themeToggleScript() string {
	return `<script>
		function toggleTheme() {
			const html = document.documentElement;
			const currentTheme = html.getAttribute('data-theme');
			const newTheme = currentTheme === 'dark' ? 'light' : 'dark';
			html.setAttribute('data-theme', newTheme);
			localStorage.setItem('theme', newTheme);
			updateToggleButton(newTheme);
		}

		function updateToggleButton(theme) {
			const button = document.querySelector('.theme-toggle');
			if (button) {
				button.textContent = theme === 'dark' ? '☀️ Light Mode' : '🌙 Dark Mode';
				button.setAttribute('aria-label', theme === 'dark' ? 'Switch to light mode' : 'Switch to dark mode');
			}
		}

		// Initialize theme from localStorage
		(function() {
			const savedTheme = localStorage.getItem('theme') || 'dark';
			document.documentElement.setAttribute('data-theme', savedTheme);
			updateToggleButton(savedTheme);
		})();
	</script>`
}

// filterScript returns the issue table filtering JavaScript.
// Rows carry data-status and data-category attributes.
func filterScript() string {
	return `<script>
		function setupFilters(tableId, filters) {
			const table = document.getElementById(tableId);
			if (!table) return;

			const rows = table.querySelectorAll('tbody tr');

			filters.forEach(filter => populateDropdown(filter, rows));

			filters.forEach(filter => {
				const select = document.getElementById(filter.inputId);
				if (!select) return;
				select.addEventListener('change', () => filterTable(rows, filters));
			});

			updateCount(rows);
		}

		function populateDropdown(filter, rows) {
			const select = document.getElementById(filter.inputId);
			if (!select) return;

			const uniqueValues = new Set();
			rows.forEach(row => {
				const value = row.getAttribute('data-' + filter.attr);
				if (value && value.trim() !== '') {
					uniqueValues.add(value.trim());
				}
			});

			const sortedValues = Array.from(uniqueValues).sort((a, b) =>
				a.toLowerCase().localeCompare(b.toLowerCase())
			);

			select.innerHTML = '<option value="">All</option>';
			sortedValues.forEach(value => {
				const option = document.createElement('option');
				option.value = value;
				option.textContent = value;
				select.appendChild(option);
			});
		}

		function filterTable(rows, filters) {
			const filterValues = {};
			filters.forEach(filter => {
				const select = document.getElementById(filter.inputId);
				if (select) {
					filterValues[filter.attr] = select.value.toLowerCase();
				}
			});

			rows.forEach(row => {
				let show = true;
				for (const [attr, value] of Object.entries(filterValues)) {
					if (value === '') continue;
					const rowValue = (row.getAttribute('data-' + attr) || '').toLowerCase();
					if (rowValue !== value) {
						show = false;
						break;
					}
				}
				row.style.display = show ? '' : 'none';
			});

			updateCount(rows);
		}

		function updateCount(rows) {
			const visibleCount = Array.from(rows).filter(row => row.style.display !== 'none').length;
			const countElement = document.querySelector('.filter-count');
			if (countElement) {
				countElement.textContent = visibleCount + ' of ' + rows.length + ' issues';
			}
		}

		setupFilters('issues-table', [
			{ inputId: 'filter-status', attr: 'status' },
			{ inputId: 'filter-category', attr: 'category' }
		]);
	</script>`
}

// htmlFooter returns the common HTML footer with all scripts.
func htmlFooter() string {
	return themeToggleScript() + `
</body>
</html>`
}

// buildNavigation returns the common navigation bar HTML.
func buildNavigation(signedIn bool) string {
	var sb strings.Builder
	sb.WriteString(`<div class="nav">
			<a href="/">Home</a>
			<a href="/dashboard">Dashboard</a>
			<a href="/api/dashboard">API (JSON)</a>`)
	if signedIn {
		sb.WriteString(`
			<form method="POST" action="/session/logout"><button type="submit">Sign out</button></form>`)
	}
	sb.WriteString(`
			<button class="theme-toggle" onclick="toggleTheme()" aria-label="Toggle theme">🌙 Dark Mode</button>
		</div>`)
	return sb.String()
}

// escapeHTML escapes special HTML characters to prevent XSS.
func escapeHTML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}

// sanitizeDescription keeps safe formatting in reporter-supplied text and strips the rest.
func sanitizeDescription(s string) string {
	return descriptionPolicy.Sanitize(s)
}

// statusClass maps a status onto its badge class.
func statusClass(status string) string {
	switch strings.ToLower(status) {
	case "pending":
		return "pending"
	case "in progress":
		return "in-progress"
	case "resolved":
		return "resolved"
	default:
		return "other"
	}
}
