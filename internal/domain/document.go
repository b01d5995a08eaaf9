package domain

// HistoryLimit caps the history collection at the most recent entries.
const HistoryLimit = 100

// Document is the entire persisted library: one JSON blob under a single key.
type Document struct {
	Manga           []Title          `json:"manga"`
	ReadingSessions []ReadingSession `json:"readingSessions"`
	Settings        Settings         `json:"settings"`
	Tags            []string         `json:"tags"`
	Bookmarks       []Bookmark       `json:"bookmarks"`
	History         []HistoryEntry   `json:"history"`
}

// DefaultSettings returns the settings applied to a fresh document.
func DefaultSettings() Settings {
	return Settings{
		DailyGoal:     5,
		Theme:         "dark",
		Notifications: true,
	}
}

// DefaultTags is the seed tag catalog for a fresh document.
// The catalog is user-extensible afterwards.
func DefaultTags() []string {
	return []string{"action", "romance", "fantasy", "comedy", "drama", "slice-of-life"}
}

// NewDocument returns an empty document with seeded settings and tags.
func NewDocument() *Document {
	return &Document{
		Manga:           []Title{},
		ReadingSessions: []ReadingSession{},
		Settings:        DefaultSettings(),
		Tags:            DefaultTags(),
		Bookmarks:       []Bookmark{},
		History:         []HistoryEntry{},
	}
}
