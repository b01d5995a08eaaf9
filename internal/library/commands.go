package library

import (
	"strings"

	"github.com/okabe/tankobon/internal/domain"
)

// TitleInput holds the caller-supplied fields for a new title.
// Zero values fall back to defaults (kind=manga, status=reading).
type TitleInput struct {
	Name            string
	Kind            domain.Kind
	Status          domain.Status
	CurrentProgress int
	TotalUnits      *int
	Rating          *float64
	Tags            []string
	Notes           string
	Author          string
}

// TitleUpdate is a partial update; nil fields are left untouched.
type TitleUpdate struct {
	Name            *string
	Kind            *domain.Kind
	Status          *domain.Status
	CurrentProgress *int
	TotalUnits      *int
	Rating          *float64
	Tags            []string
	Notes           *string
	Author          *string
}

// CreateTitle adds a new title with a fresh id and stamped timestamps.
// Names are not required to be unique.
func (s *Service) CreateTitle(input TitleInput) domain.Title {
	now := s.now()

	title := domain.Title{
		ID:              s.newID(),
		Name:            input.Name,
		Kind:            input.Kind,
		Status:          input.Status,
		CurrentProgress: input.CurrentProgress,
		TotalUnits:      input.TotalUnits,
		Rating:          input.Rating,
		Tags:            input.Tags,
		Notes:           input.Notes,
		Author:          input.Author,
		StartedAt:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if title.Kind == "" {
		title.Kind = domain.KindManga
	}
	if title.Status == "" {
		title.Status = domain.StatusReading
	}
	if title.Tags == nil {
		title.Tags = []string{}
	}

	s.doc.Manga = append(s.doc.Manga, title)
	s.persist()
	s.logger.Debug("created title", "id", title.ID, "name", title.Name)
	return title
}

// UpdateTitle merges the set fields of patch into the title and refreshes
// updatedAt. Progress set through here is applied as-is: no clamping and no
// automatic status transition (see AdvanceProgress for the guarded path).
func (s *Service) UpdateTitle(id string, patch TitleUpdate) (domain.Title, error) {
	idx := s.titleIndex(id)
	if idx < 0 {
		return domain.Title{}, domain.ErrTitleNotFound
	}

	t := &s.doc.Manga[idx]
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Kind != nil {
		t.Kind = *patch.Kind
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.CurrentProgress != nil {
		t.CurrentProgress = *patch.CurrentProgress
	}
	if patch.TotalUnits != nil {
		t.TotalUnits = patch.TotalUnits
	}
	if patch.Rating != nil {
		t.Rating = patch.Rating
	}
	if patch.Tags != nil {
		t.Tags = patch.Tags
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.Author != nil {
		t.Author = *patch.Author
	}
	t.UpdatedAt = s.now()

	s.persist()
	s.logger.Debug("updated title", "id", id)
	return *t, nil
}

// DeleteTitle removes the title and returns the removed record.
func (s *Service) DeleteTitle(id string) (domain.Title, error) {
	idx := s.titleIndex(id)
	if idx < 0 {
		return domain.Title{}, domain.ErrTitleNotFound
	}

	removed := s.doc.Manga[idx]
	s.doc.Manga = append(s.doc.Manga[:idx], s.doc.Manga[idx+1:]...)
	s.persist()
	s.logger.Debug("deleted title", "id", id, "name", removed.Name)
	return removed, nil
}

// AdvanceProgress bumps a title's progress by delta chapters. This is the
// guarded "quick update" path: progress is capped at the known length and
// reaching it marks the title completed.
func (s *Service) AdvanceProgress(id string, delta int) (domain.Title, error) {
	idx := s.titleIndex(id)
	if idx < 0 {
		return domain.Title{}, domain.ErrTitleNotFound
	}

	now := s.now()
	t := &s.doc.Manga[idx]
	t.CurrentProgress += delta
	if t.CurrentProgress < 0 {
		t.CurrentProgress = 0
	}
	if t.HasKnownLength() && t.CurrentProgress > *t.TotalUnits {
		t.CurrentProgress = *t.TotalUnits
	}
	t.LastProgressAt = &now
	t.UpdatedAt = now

	action := domain.ActionProgressUpdate
	if t.IsCaughtUp() && t.Status != domain.StatusCompleted {
		t.Status = domain.StatusCompleted
		t.FinishedAt = &now
		action = domain.ActionCompleted
	}

	title := *t
	s.RecordHistory(id, action, domain.HistoryDetails{
		TitleName: title.Name,
		Units:     delta,
		Chapter:   title.CurrentProgress,
	})
	return title, nil
}

// StartSession opens a new active reading session, optionally bound to a
// title. The store itself does not reject a second active session; the
// single-active invariant is enforced by the session timer on top.
func (s *Service) StartSession(titleID string) domain.ReadingSession {
	session := domain.ReadingSession{
		ID:        s.newID(),
		TitleID:   titleID,
		StartedAt: s.now(),
		Active:    true,
	}
	s.doc.ReadingSessions = append(s.doc.ReadingSessions, session)
	s.persist()
	s.logger.Debug("started session", "id", session.ID, "titleID", titleID)
	return session
}

// EndSession closes the session and records how many chapters were read.
// When the session is bound to a title and unitsRead is positive, the
// title's progress advances by exactly unitsRead in the same mutation.
func (s *Service) EndSession(id string, unitsRead int) (domain.ReadingSession, error) {
	idx := -1
	for i := range s.doc.ReadingSessions {
		if s.doc.ReadingSessions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ReadingSession{}, domain.ErrSessionNotFound
	}

	now := s.now()
	sess := &s.doc.ReadingSessions[idx]
	sess.Active = false
	sess.EndedAt = &now
	sess.UnitsRead = unitsRead

	if unitsRead > 0 && sess.TitleID != "" {
		if tIdx := s.titleIndex(sess.TitleID); tIdx >= 0 {
			t := &s.doc.Manga[tIdx]
			t.CurrentProgress += unitsRead
			t.LastProgressAt = &now
			t.UpdatedAt = now
			if t.IsCaughtUp() && t.Status != domain.StatusCompleted {
				t.Status = domain.StatusCompleted
				t.FinishedAt = &now
			}
		}
	}

	s.persist()
	s.logger.Debug("ended session", "id", id, "unitsRead", unitsRead)
	return *sess, nil
}

// AddBookmark saves a chapter position for a title.
func (s *Service) AddBookmark(titleID string, position int, note string) domain.Bookmark {
	bookmark := domain.Bookmark{
		ID:        s.newID(),
		TitleID:   titleID,
		Position:  position,
		Note:      note,
		CreatedAt: s.now(),
	}
	s.doc.Bookmarks = append(s.doc.Bookmarks, bookmark)
	s.persist()
	return bookmark
}

// RemoveBookmark deletes the bookmark and returns the removed record.
func (s *Service) RemoveBookmark(id string) (domain.Bookmark, error) {
	for i := range s.doc.Bookmarks {
		if s.doc.Bookmarks[i].ID == id {
			removed := s.doc.Bookmarks[i]
			s.doc.Bookmarks = append(s.doc.Bookmarks[:i], s.doc.Bookmarks[i+1:]...)
			s.persist()
			return removed, nil
		}
	}
	return domain.Bookmark{}, domain.ErrBookmarkNotFound
}

// RecordHistory prepends an entry to the activity feed, keeping only the
// most recent domain.HistoryLimit entries.
func (s *Service) RecordHistory(titleID string, action domain.HistoryAction, details domain.HistoryDetails) domain.HistoryEntry {
	entry := domain.HistoryEntry{
		ID:        s.newID(),
		TitleID:   titleID,
		Action:    action,
		Details:   details,
		Timestamp: s.now(),
	}

	s.doc.History = append([]domain.HistoryEntry{entry}, s.doc.History...)
	if len(s.doc.History) > domain.HistoryLimit {
		s.doc.History = s.doc.History[:domain.HistoryLimit]
	}
	s.persist()
	return entry
}

// AddTag appends a tag to the catalog, ignoring duplicates case-insensitively.
func (s *Service) AddTag(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.Tags()
	}
	for _, tag := range s.doc.Tags {
		if strings.EqualFold(tag, name) {
			return s.Tags()
		}
	}
	s.doc.Tags = append(s.doc.Tags, name)
	s.persist()
	return s.Tags()
}

// UpdateSettings replaces the persisted settings.
func (s *Service) UpdateSettings(settings domain.Settings) domain.Settings {
	s.doc.Settings = settings
	s.persist()
	return s.doc.Settings
}

func (s *Service) titleIndex(id string) int {
	for i := range s.doc.Manga {
		if s.doc.Manga[i].ID == id {
			return i
		}
	}
	return -1
}
