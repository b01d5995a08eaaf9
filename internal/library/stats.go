package library

import (
	"time"

	"github.com/okabe/tankobon/internal/domain"
)

// Statistics summarizes the library for the stats view.
type Statistics struct {
	TitleCount     int
	CountsByStatus map[domain.Status]int

	TotalProgress int // Chapters read across all titles

	CompletedSessions     int
	AverageSessionMinutes float64 // 0 when no closed sessions

	// Chapters read in rolling windows, summed over closed sessions
	// by when they ended.
	UnitsToday      int
	UnitsLast7Days  int
	UnitsLast30Days int

	DailyGoal   int
	GoalReached bool
}

// Statistics computes aggregate counts over the whole library.
func (s *Service) Statistics() Statistics {
	now := s.now()

	stats := Statistics{
		TitleCount:     len(s.doc.Manga),
		CountsByStatus: make(map[domain.Status]int),
		DailyGoal:      s.doc.Settings.DailyGoal,
	}

	for _, t := range s.doc.Manga {
		stats.CountsByStatus[t.Status]++
		stats.TotalProgress += t.CurrentProgress
	}

	var totalDuration time.Duration
	for _, sess := range s.doc.ReadingSessions {
		if sess.Active || sess.EndedAt == nil {
			continue
		}
		stats.CompletedSessions++
		totalDuration += sess.Duration()

		ended := *sess.EndedAt
		if sameDay(ended, now) {
			stats.UnitsToday += sess.UnitsRead
		}
		if ended.After(now.AddDate(0, 0, -7)) {
			stats.UnitsLast7Days += sess.UnitsRead
		}
		if ended.After(now.AddDate(0, 0, -30)) {
			stats.UnitsLast30Days += sess.UnitsRead
		}
	}

	if stats.CompletedSessions > 0 {
		stats.AverageSessionMinutes = totalDuration.Minutes() / float64(stats.CompletedSessions)
	}
	stats.GoalReached = stats.DailyGoal > 0 && stats.UnitsToday >= stats.DailyGoal

	return stats
}

// sameDay reports whether a and b fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
