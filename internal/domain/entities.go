package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind distinguishes where a tracked title originates from.
type Kind string

const (
	KindManga  Kind = "manga"
	KindManhwa Kind = "manhwa"
	KindManhua Kind = "manhua"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindManga, KindManhwa, KindManhua:
		return true
	}
	return false
}

// Status represents the reading state of a title.
type Status string

const (
	StatusReading    Status = "reading"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on-hold"
	StatusDropped    Status = "dropped"
	StatusPlanToRead Status = "plan-to-read"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusReading, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToRead:
		return true
	}
	return false
}

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusReading:
		return "Reading"
	case StatusCompleted:
		return "Completed"
	case StatusOnHold:
		return "On Hold"
	case StatusDropped:
		return "Dropped"
	case StatusPlanToRead:
		return "Plan to Read"
	default:
		return string(s)
	}
}

// Title represents a tracked manga/manhwa/manhua entry.
type Title struct {
	ID              string     `json:"id"`                       // Opaque unique identifier
	Name            string     `json:"name"`                     // Display name
	Kind            Kind       `json:"kind"`                     // manga, manhwa or manhua
	Status          Status     `json:"status"`                   // Reading state
	CurrentProgress int        `json:"currentProgress"`          // Chapters read so far
	TotalUnits      *int       `json:"totalUnits,omitempty"`     // nil = unknown length
	Rating          *float64   `json:"rating,omitempty"`         // 0-10 scale, nil = unrated
	Tags            []string   `json:"tags"`                     // Display order preserved
	Notes           string     `json:"notes,omitempty"`          // Free text
	Author          string     `json:"author,omitempty"`         // Author/artist name
	StartedAt       time.Time  `json:"startedAt"`                // When the user started reading
	FinishedAt      *time.Time `json:"finishedAt,omitempty"`     // When completed
	LastProgressAt  *time.Time `json:"lastProgressAt,omitempty"` // Last progress advance
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"` // Refreshed on every mutation
}

// HasKnownLength reports whether the total chapter count is known.
func (t Title) HasKnownLength() bool {
	return t.TotalUnits != nil && *t.TotalUnits > 0
}

// IsCaughtUp reports whether progress has reached the known length.
func (t Title) IsCaughtUp() bool {
	return t.HasKnownLength() && t.CurrentProgress >= *t.TotalUnits
}

// HasTag reports whether the title carries the given tag, case-insensitively.
func (t Title) HasTag(name string) bool {
	for _, tag := range t.Tags {
		if strings.EqualFold(tag, name) {
			return true
		}
	}
	return false
}

// FormattedProgress returns progress in a human-readable format, e.g. "12/200" or "12/?".
func (t Title) FormattedProgress() string {
	if t.HasKnownLength() {
		return fmt.Sprintf("%d/%d", t.CurrentProgress, *t.TotalUnits)
	}
	return fmt.Sprintf("%d/?", t.CurrentProgress)
}

// ReadingSession represents a timed reading interval, optionally bound to a title.
type ReadingSession struct {
	ID        string     `json:"id"`
	TitleID   string     `json:"titleId,omitempty"` // Empty = untracked reading
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"` // nil while active
	UnitsRead int        `json:"unitsRead"`         // Set only at session end
	Active    bool       `json:"active"`
}

// Duration returns the closed session's length, or zero while still active.
func (s ReadingSession) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Bookmark marks a chapter position within a title.
type Bookmark struct {
	ID        string    `json:"id"`
	TitleID   string    `json:"titleId"`
	Position  int       `json:"position"` // Chapter number
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryAction identifies what kind of user action a history entry records.
type HistoryAction string

const (
	ActionAdded          HistoryAction = "added"
	ActionRead           HistoryAction = "read"
	ActionUpdated        HistoryAction = "updated"
	ActionCompleted      HistoryAction = "completed"
	ActionDeleted        HistoryAction = "deleted"
	ActionProgressUpdate HistoryAction = "progress_update"
)

// HistoryDetails carries the per-action payload of a history entry.
// Only the fields relevant to the action are populated.
type HistoryDetails struct {
	TitleName       string   `json:"titleName,omitempty"`
	Units           int      `json:"units,omitempty"`           // Chapters read/advanced
	Chapter         int      `json:"chapter,omitempty"`         // Progress position after the action
	DurationSeconds int      `json:"durationSeconds,omitempty"` // Session length for read actions
	Fields          []string `json:"fields,omitempty"`          // Field names touched by an update
}

// HistoryEntry is an audit record of a user action for the activity feed.
type HistoryEntry struct {
	ID        string         `json:"id"`
	TitleID   string         `json:"titleId,omitempty"`
	Action    HistoryAction  `json:"action"`
	Details   HistoryDetails `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}

// Settings holds user preferences persisted alongside the collections.
type Settings struct {
	DailyGoal     int    `json:"dailyGoal"` // Target chapters per day
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}
