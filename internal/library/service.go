package library

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/okabe/tankobon/internal/domain"
)

// documentKey is the single blob-store key the whole library lives under.
const documentKey = "tankobonData"

// Service is the record store: it owns every collection (titles, sessions,
// bookmarks, history, tags, settings) and is the sole writer to persistent
// storage. All operations are synchronous local-state transitions followed
// by a best-effort persist; callers drive it from a single goroutine.
type Service struct {
	blob   domain.BlobStore
	logger *slog.Logger

	doc *domain.Document

	now   func() time.Time
	newID func() string
}

// Option customizes a Service, mainly for tests.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDFunc overrides the id generator.
func WithIDFunc(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService loads the persisted document from the blob store, or starts a
// fresh seeded one when nothing is stored yet.
func NewService(blob domain.BlobStore, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		blob:   blob,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = s.load()
	return s
}

func (s *Service) load() *domain.Document {
	data, ok := s.blob.Get(documentKey)
	if !ok {
		s.logger.Info("no stored library, starting fresh")
		return domain.NewDocument()
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Error("failed to decode stored library, starting fresh", "error", err)
		return domain.NewDocument()
	}
	normalize(&doc)
	return &doc
}

// persist writes the entire document to the blob store. Failures are logged
// and the in-memory mutation stands; the worst case is that changes do not
// survive a restart.
func (s *Service) persist() {
	data, err := json.Marshal(s.doc)
	if err != nil {
		s.logger.Error("failed to encode library", "error", err)
		return
	}
	if err := s.blob.Set(documentKey, data); err != nil {
		s.logger.Error("failed to persist library", "error", err)
	}
}

// normalize repairs a decoded document so downstream code never sees nil
// collections or a zero daily goal.
func normalize(doc *domain.Document) {
	if doc.Manga == nil {
		doc.Manga = []domain.Title{}
	}
	if doc.ReadingSessions == nil {
		doc.ReadingSessions = []domain.ReadingSession{}
	}
	if doc.Bookmarks == nil {
		doc.Bookmarks = []domain.Bookmark{}
	}
	if doc.History == nil {
		doc.History = []domain.HistoryEntry{}
	}
	if doc.Tags == nil {
		doc.Tags = domain.DefaultTags()
	}
	if doc.Settings.DailyGoal <= 0 {
		doc.Settings.DailyGoal = domain.DefaultSettings().DailyGoal
	}
}

// ExportJSON returns the whole document as indented JSON for backups.
func (s *Service) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s.doc, "", "  ")
}

// ImportJSON replaces the whole document with a previously exported backup.
func (s *Service) ImportJSON(data []byte) error {
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	normalize(&doc)
	s.doc = &doc
	s.persist()
	s.logger.Info("imported library",
		"titles", len(doc.Manga),
		"sessions", len(doc.ReadingSessions))
	return nil
}
