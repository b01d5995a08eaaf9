package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/okabe/tankobon/internal/domain"
)

// TitleIndex implements fuzzy.Source for zero-allocation incremental
// filtering of the library list as the user types.
type TitleIndex struct {
	titles     []domain.Title
	lowerNames []string // Pre-computed lowercase names
}

// NewTitleIndex builds a filter index over the given titles.
func NewTitleIndex(titles []domain.Title) *TitleIndex {
	names := make([]string, len(titles))
	for i, t := range titles {
		names[i] = strings.ToLower(t.Name)
	}
	return &TitleIndex{titles: titles, lowerNames: names}
}

// String returns the lowercase name at index i (implements fuzzy.Source).
func (idx *TitleIndex) String(i int) string { return idx.lowerNames[i] }

// Len returns the number of indexed titles (implements fuzzy.Source).
func (idx *TitleIndex) Len() int { return len(idx.titles) }

// Match is a filter hit with character positions for highlighting.
type Match struct {
	Title          domain.Title
	MatchedIndexes []int
	Score          int
}

// Filter returns index entries matching query, best first. An empty query
// returns every title unranked.
func (idx *TitleIndex) Filter(query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(idx.titles))
		for i, t := range idx.titles {
			out[i] = Match{Title: t}
		}
		return out
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), idx)
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = Match{
			Title:          idx.titles[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return out
}
