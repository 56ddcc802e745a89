package mockapi

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/vilaca/issue-dashboard/internal/domain"
)

// ErrNotFound is returned for ids the store does not hold.
var ErrNotFound = errors.New("issue not found")

// Store holds issues in insertion order.
type Store struct {
	mu     sync.RWMutex
	issues []domain.Issue
	nextID int
	now    func() time.Time
}

// NewStore creates a store holding a copy of issues.
func NewStore(issues []domain.Issue) *Store {
	s := &Store{now: time.Now}
	for _, is := range issues {
		s.Add(is)
	}
	return s
}

// Add appends issue, assigning an id when it has none, and returns the stored record.
func (s *Store) Add(issue domain.Issue) domain.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	if issue.ID == "" {
		issue.ID = strconv.Itoa(s.nextID)
	}
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = domain.NewTimestamp(s.now().UTC())
	}
	s.issues = append(s.issues, issue)
	return issue
}

// List returns a copy of every issue.
func (s *Store) List() []domain.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Issue, len(s.issues))
	copy(out, s.issues)
	return out
}

// UpdateStatus sets the status of the issue with id and returns the updated record.
func (s *Store) UpdateStatus(id, status string) (domain.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.issues {
		if s.issues[i].ID == id {
			s.issues[i].Status = status
			s.issues[i].UpdatedAt = domain.NewTimestamp(s.now().UTC())
			return s.issues[i], nil
		}
	}
	return domain.Issue{}, ErrNotFound
}

// Delete removes the issue with id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.issues {
		if s.issues[i].ID == id {
			s.issues = append(s.issues[:i], s.issues[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// SeedIssues returns sample civic issues, one of them without status or category.
func SeedIssues() []domain.Issue {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []domain.Issue{
		{
			ID:          "65f1a0c2e4b0a1b2c3d4e501",
			Title:       "Pothole on Main Street",
			Description: "Large pothole near the bus stop, cars swerving into the bike lane.",
			Category:    "Road",
			Status:      domain.StatusPending,
			Location:    "Main St & 3rd Ave",
			Reporter:    &domain.Reporter{ID: "u1", Name: "Asha Patel", Email: "asha@example.com"},
			CreatedAt:   domain.NewTimestamp(base),
		},
		{
			ID:          "65f1a0c2e4b0a1b2c3d4e502",
			Title:       "Burst water pipe",
			Description: "Water has been running down the street since last night.",
			Category:    "Water",
			Status:      domain.StatusInProgress,
			Location:    "Lakeview Road 14",
			Reporter:    &domain.Reporter{ID: "u2", Name: "Tom Okafor", Email: "tom@example.com"},
			CreatedAt:   domain.NewTimestamp(base.Add(3 * time.Hour)),
		},
		{
			ID:          "65f1a0c2e4b0a1b2c3d4e503",
			Title:       "Streetlight out",
			Description: "The light at the park entrance has been off for a week.",
			Category:    "Electricity",
			Status:      domain.StatusResolved,
			Location:    "Riverside Park",
			CreatedAt:   domain.NewTimestamp(base.Add(26 * time.Hour)),
		},
		{
			ID:          "65f1a0c2e4b0a1b2c3d4e504",
			Title:       "Overflowing bins",
			Description: "Bins by the market <b>not collected</b> for two collection days.",
			Category:    "Sanitation",
			Status:      domain.StatusPending,
			Location:    "Central Market",
			Reporter:    &domain.Reporter{ID: "u3", Name: "Mei Lin", Email: "mei@example.com"},
			CreatedAt:   domain.NewTimestamp(base.Add(50 * time.Hour)),
		},
		{
			ID:          "65f1a0c2e4b0a1b2c3d4e505",
			Title:       "Fallen tree branch",
			Description: "Branch blocking half of the footpath.",
			Location:    "Elm Street 7",
			CreatedAt:   domain.NewTimestamp(base.Add(72 * time.Hour)),
		},
		{
			ID:          "65f1a0c2e4b0a1b2c3d4e506",
			Title:       "Sunken manhole cover",
			Description: "Manhole cover sits two inches below the road surface.",
			Category:    "Road",
			Status:      domain.StatusResolved,
			Location:    "Station Road",
			Reporter:    &domain.Reporter{ID: "u1", Name: "Asha Patel", Email: "asha@example.com"},
			CreatedAt:   domain.NewTimestamp(base.Add(96 * time.Hour)),
		},
	}
}
