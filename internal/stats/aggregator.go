// Package stats derives dashboard analytics from an issue collection.
// Every function is pure: it reads a snapshot and returns fresh values.
package stats

import "github.com/vilaca/issue-dashboard/internal/domain"

// Summary is the derived view rendered by the dashboard.
type Summary struct {
	Total          int            `json:"total"`
	Pending        int            `json:"pending"`
	Resolved       int            `json:"resolved"`
	StatusCounts   map[string]int `json:"statusCounts"`
	CategoryCounts map[string]int `json:"categoryCounts"`
	StatusChart    ChartData      `json:"statusChart"`
	CategoryChart  ChartData      `json:"categoryChart"`
}

// CountByStatus counts issues per normalized status.
// Only statuses present in the collection get a key.
func CountByStatus(issues []domain.Issue) map[string]int {
	_, counts := tally(issues, domain.Issue.NormalizedStatus)
	return counts
}

// CountByCategory counts issues per normalized category.
func CountByCategory(issues []domain.Issue) map[string]int {
	_, counts := tally(issues, domain.Issue.NormalizedCategory)
	return counts
}

// TotalCount returns the number of issues in the collection.
func TotalCount(issues []domain.Issue) int {
	return len(issues)
}

// PendingCount reads the Pending bucket, defaulting to 0.
func PendingCount(statusCounts map[string]int) int {
	return statusCounts[domain.StatusPending]
}

// ResolvedCount reads the Resolved bucket, defaulting to 0.
func ResolvedCount(statusCounts map[string]int) int {
	return statusCounts[domain.StatusResolved]
}

// Summarize computes every aggregate in one pass per dimension.
func Summarize(issues []domain.Issue) Summary {
	statusKeys, statusCounts := tally(issues, domain.Issue.NormalizedStatus)
	categoryKeys, categoryCounts := tally(issues, domain.Issue.NormalizedCategory)

	return Summary{
		Total:          TotalCount(issues),
		Pending:        PendingCount(statusCounts),
		Resolved:       ResolvedCount(statusCounts),
		StatusCounts:   statusCounts,
		CategoryCounts: categoryCounts,
		StatusChart:    pieChart(statusKeys, statusCounts),
		CategoryChart:  barChart(categoryKeys, categoryCounts),
	}
}

// tally buckets issues by key and also returns the keys in first-occurrence order.
func tally(issues []domain.Issue, key func(domain.Issue) string) ([]string, map[string]int) {
	counts := make(map[string]int)
	var keys []string
	for _, issue := range issues {
		k := key(issue)
		if _, seen := counts[k]; !seen {
			keys = append(keys, k)
		}
		counts[k]++
	}
	return keys, counts
}
