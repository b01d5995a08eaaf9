// Package search provides query/filter operations over the library.
package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/okabe/tankobon/internal/domain"
	"github.com/okabe/tankobon/internal/library"
)

// Filters narrows search results. Zero-valued fields are ignored.
type Filters struct {
	Status domain.Status // Exact status match
	Kind   domain.Kind   // Exact kind match
	Tags   []string      // Match titles carrying any of these tags
}

// Service searches the library. It never mutates the store.
type Service struct {
	lib    *library.Service
	logger *slog.Logger
}

// NewService creates a new search service.
func NewService(lib *library.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{lib: lib, logger: logger}
}

// Search returns the titles matching query and filters. A non-empty query
// is matched case-insensitively as a substring of name, author and tags;
// filters narrow the result further with exact predicates.
func (s *Service) Search(query string, filters Filters) []domain.Title {
	query = strings.ToLower(strings.TrimSpace(query))

	var results []domain.Title
	for _, title := range s.lib.Titles() {
		if query != "" && !matchesQuery(title, query) {
			continue
		}
		if filters.Status != "" && title.Status != filters.Status {
			continue
		}
		if filters.Kind != "" && title.Kind != filters.Kind {
			continue
		}
		if len(filters.Tags) > 0 && !matchesAnyTag(title, filters.Tags) {
			continue
		}
		results = append(results, title)
	}

	s.logger.Debug("search complete", "query", query, "results", len(results))
	return results
}

// Rank returns titles fuzzy-ranked against query, best match first.
// Used by the omnibar where typo tolerance beats strict substrings.
func (s *Service) Rank(query string) []domain.Title {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	titles := s.lib.Titles()
	names := make([]string, len(titles))
	for i, t := range titles {
		names[i] = t.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	results := make([]domain.Title, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, titles[r.OriginalIndex])
	}
	return results
}

func matchesQuery(t domain.Title, query string) bool {
	if strings.Contains(strings.ToLower(t.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Author), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func matchesAnyTag(t domain.Title, tags []string) bool {
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}
