package library

import "github.com/okabe/tankobon/internal/domain"

// Title returns the title with the given id.
func (s *Service) Title(id string) (domain.Title, error) {
	idx := s.titleIndex(id)
	if idx < 0 {
		return domain.Title{}, domain.ErrTitleNotFound
	}
	return s.doc.Manga[idx], nil
}

// Titles returns all tracked titles in insertion order.
func (s *Service) Titles() []domain.Title {
	out := make([]domain.Title, len(s.doc.Manga))
	copy(out, s.doc.Manga)
	return out
}

// ActiveSession returns the session with active=true, if any.
func (s *Service) ActiveSession() (domain.ReadingSession, bool) {
	for i := range s.doc.ReadingSessions {
		if s.doc.ReadingSessions[i].Active {
			return s.doc.ReadingSessions[i], true
		}
	}
	return domain.ReadingSession{}, false
}

// Sessions returns all reading sessions, open and closed.
func (s *Service) Sessions() []domain.ReadingSession {
	out := make([]domain.ReadingSession, len(s.doc.ReadingSessions))
	copy(out, s.doc.ReadingSessions)
	return out
}

// Bookmarks returns the bookmarks for a title, or every bookmark when
// titleID is empty.
func (s *Service) Bookmarks(titleID string) []domain.Bookmark {
	var out []domain.Bookmark
	for _, b := range s.doc.Bookmarks {
		if titleID == "" || b.TitleID == titleID {
			out = append(out, b)
		}
	}
	return out
}

// RecentHistory returns up to limit entries, newest first.
func (s *Service) RecentHistory(limit int) []domain.HistoryEntry {
	if limit <= 0 || limit > len(s.doc.History) {
		limit = len(s.doc.History)
	}
	out := make([]domain.HistoryEntry, limit)
	copy(out, s.doc.History[:limit])
	return out
}

// Tags returns the tag catalog.
func (s *Service) Tags() []string {
	out := make([]string, len(s.doc.Tags))
	copy(out, s.doc.Tags)
	return out
}

// Settings returns the persisted user settings.
func (s *Service) Settings() domain.Settings {
	return s.doc.Settings
}
