package stats

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vilaca/issue-dashboard/internal/domain"
)

func sampleIssues() []domain.Issue {
	return []domain.Issue{
		{ID: "1", Status: domain.StatusPending, Category: "Road"},
		{ID: "2", Status: domain.StatusResolved, Category: "Water"},
	}
}

// TestSummarize_TwoIssues tests the basic load scenario.
// Follows AAA (Arrange, Act, Assert) pattern.
func TestSummarize_TwoIssues(t *testing.T) {
	// Arrange
	issues := sampleIssues()

	// Act
	summary := Summarize(issues)

	// Assert
	if summary.Total != 2 {
		t.Errorf("expected total 2, got %d", summary.Total)
	}
	if summary.Pending != 1 {
		t.Errorf("expected pending 1, got %d", summary.Pending)
	}
	if summary.Resolved != 1 {
		t.Errorf("expected resolved 1, got %d", summary.Resolved)
	}
	if diff := cmp.Diff(map[string]int{"Pending": 1, "Resolved": 1}, summary.StatusCounts); diff != "" {
		t.Errorf("status counts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int{"Road": 1, "Water": 1}, summary.CategoryCounts); diff != "" {
		t.Errorf("category counts mismatch (-want +got):\n%s", diff)
	}
}

// TestCountByStatus_Normalization tests that missing values land in the default buckets.
func TestCountByStatus_Normalization(t *testing.T) {
	// Arrange
	issues := []domain.Issue{
		{ID: "1"},
		{ID: "2", Status: domain.StatusPending},
		{ID: "3", Status: "Escalated", Category: "Road"},
	}

	// Act
	statuses := CountByStatus(issues)
	categories := CountByCategory(issues)

	// Assert
	if diff := cmp.Diff(map[string]int{"Pending": 2, "Escalated": 1}, statuses); diff != "" {
		t.Errorf("status counts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int{"Uncategorized": 2, "Road": 1}, categories); diff != "" {
		t.Errorf("category counts mismatch (-want +got):\n%s", diff)
	}
}

// TestSummarize_SumsMatchTotal tests that every bucket map accounts for every issue.
func TestSummarize_SumsMatchTotal(t *testing.T) {
	issues := []domain.Issue{
		{ID: "1", Status: "Pending", Category: "Road"},
		{ID: "2", Status: "Resolved", Category: "Road"},
		{ID: "3", Status: "In Progress"},
		{ID: "4", Category: "Water"},
		{ID: "5", Status: "Resolved", Category: "Electricity"},
	}

	summary := Summarize(issues)

	if got := sum(summary.StatusCounts); got != summary.Total || got != len(issues) {
		t.Errorf("status counts sum %d, total %d, len %d", got, summary.Total, len(issues))
	}
	if got := sum(summary.CategoryCounts); got != summary.Total {
		t.Errorf("category counts sum %d, total %d", got, summary.Total)
	}
}

// TestSummarize_Idempotent tests that repeated aggregation of a snapshot is stable.
func TestSummarize_Idempotent(t *testing.T) {
	issues := sampleIssues()

	first := Summarize(issues)
	second := Summarize(issues)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("summaries differ (-first +second):\n%s", diff)
	}
}

// TestSummarize_Empty tests that counters default to zero and no buckets are invented.
func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	if summary.Total != 0 || summary.Pending != 0 || summary.Resolved != 0 {
		t.Errorf("expected zero counters, got %+v", summary)
	}
	if len(summary.StatusCounts) != 0 {
		t.Errorf("expected no status buckets, got %v", summary.StatusCounts)
	}
	if summary.StatusChart.Labels == nil {
		t.Error("expected empty, non-nil chart labels")
	}
}

// TestSummarize_NoZeroPadding tests that a status with no issues has no key.
func TestSummarize_NoZeroPadding(t *testing.T) {
	issues := []domain.Issue{{ID: "1", Status: domain.StatusResolved}}

	summary := Summarize(issues)

	if _, ok := summary.StatusCounts[domain.StatusPending]; ok {
		t.Error("expected no Pending key")
	}
	if summary.Pending != 0 {
		t.Errorf("expected pending 0, got %d", summary.Pending)
	}
}

// TestSummarize_DoesNotMutateInput tests that the aggregator only reads its input.
func TestSummarize_DoesNotMutateInput(t *testing.T) {
	issues := []domain.Issue{{ID: "1"}}

	Summarize(issues)

	if issues[0].Status != "" || issues[0].Category != "" {
		t.Errorf("expected input untouched, got %+v", issues[0])
	}
}

func sum(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
