package domain

// Issue status values reported by the backend. The status domain is open:
// any other string is carried through unchanged.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// CategoryUncategorized is the bucket for issues without a category.
const CategoryUncategorized = "Uncategorized"

// KnownStatuses lists the statuses an admin can pick from, in workflow order.
var KnownStatuses = []string{StatusPending, StatusInProgress, StatusResolved}
