package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Issue represents a user-submitted issue as returned by the backend.
// Only ID, Status and Category are inspected; the rest is passthrough data.
type Issue struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Status      string    `json:"status,omitempty"`
	Location    string    `json:"location,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Reporter    *Reporter `json:"user,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// Reporter is the user who submitted an issue.
type Reporter struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts either a populated user object or a bare user id.
func (r *Reporter) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Reporter{ID: id}
		return nil
	}
	if len(data) == 0 || data[0] != '{' {
		*r = Reporter{}
		return nil
	}

	type plain Reporter
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Reporter(p)
	return nil
}

// timestampLayouts are tried in order when decoding a Timestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Timestamp is a backend time that decodes leniently. A value in an
// unrecognized format decodes to the zero time instead of failing.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON accepts RFC 3339 and common date-time strings, or epoch milliseconds.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '"' {
		var millis int64
		if err := json.Unmarshal(data, &millis); err == nil {
			t.Time = time.UnixMilli(millis).UTC()
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// NormalizedStatus returns the status used for aggregation.
func (i Issue) NormalizedStatus() string {
	return NormalizeStatus(i.Status)
}

// NormalizedCategory returns the category used for aggregation.
func (i Issue) NormalizedCategory() string {
	return NormalizeCategory(i.Category)
}

// NormalizeStatus maps a missing status (absent, null or empty) to StatusPending.
func NormalizeStatus(status string) string {
	if status == "" {
		return StatusPending
	}
	return status
}

// NormalizeCategory maps a missing category (absent, null or empty) to CategoryUncategorized.
func NormalizeCategory(category string) string {
	if category == "" {
		return CategoryUncategorized
	}
	return category
}

// ReporterName returns the reporter's display name, or "Anonymous".
func (i Issue) ReporterName() string {
	if i.Reporter == nil || i.Reporter.Name == "" {
		return "Anonymous"
	}
	return i.Reporter.Name
}
