package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okabe/tankobon/internal/domain"
	"github.com/okabe/tankobon/internal/tui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.State {
	case StateStats:
		b.WriteString(m.renderStats())
	case StateHistory:
		b.WriteString(m.renderHistory())
	case StateHelp:
		b.WriteString(m.renderHelp())
	case StateConfirmDelete:
		b.WriteString(m.renderLibrary())
		b.WriteString("\n")
		if title, ok := m.selectedTitle(); ok {
			b.WriteString(styles.ErrorStyle.Render(
				fmt.Sprintf("delete %q? (y/n)", title.Name)))
		}
	case StateAddingTitle, StateStoppingTimer, StateBookmarking:
		b.WriteString(m.renderLibrary())
		b.WriteString("\n")
		b.WriteString(styles.AccentStyle.Render(m.Input.Placeholder+": ") + m.Input.View())
	default:
		b.WriteString(m.renderLibrary())
	}

	b.WriteString("\n")
	b.WriteString(m.renderTimerBar())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []struct {
		label string
		state ApplicationState
	}{
		{"1:Library", StateLibrary},
		{"2:Stats", StateStats},
		{"3:History", StateHistory},
	}

	parts := make([]string, len(tabs))
	for i, tab := range tabs {
		if m.State == tab.state {
			parts[i] = styles.HighlightStyle.Render(tab.label)
		} else {
			parts[i] = styles.DimStyle.Render(tab.label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderLibrary() string {
	var b strings.Builder

	if m.State == StateFiltering || m.Filter.Value() != "" {
		b.WriteString(m.Filter.View())
		b.WriteString("\n")
	}

	if len(m.Matches) == 0 {
		b.WriteString(styles.DimStyle.Render("no titles — press 'a' to add one"))
		return b.String()
	}

	for i, match := range m.Matches {
		t := match.Title
		line := fmt.Sprintf("%s %-30s %8s  %s",
			statusIndicator(t.Status),
			truncate(t.Name, 30),
			t.FormattedProgress(),
			styles.DimStyle.Render(string(t.Kind)))

		if i == m.Cursor {
			b.WriteString(styles.SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderStats() string {
	stats := m.Library.Statistics()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Statistics"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Titles: %d   Chapters read: %d\n",
		stats.TitleCount, stats.TotalProgress))

	order := []domain.Status{
		domain.StatusReading,
		domain.StatusCompleted,
		domain.StatusOnHold,
		domain.StatusDropped,
		domain.StatusPlanToRead,
	}
	for _, status := range order {
		if count := stats.CountsByStatus[status]; count > 0 {
			b.WriteString(fmt.Sprintf("    %s %s: %d\n",
				statusIndicator(status), status, count))
		}
	}

	b.WriteString(fmt.Sprintf("\n  Sessions: %d closed, avg %.1f min\n",
		stats.CompletedSessions, stats.AverageSessionMinutes))
	b.WriteString(fmt.Sprintf("  Read today: %d   7 days: %d   30 days: %d\n",
		stats.UnitsToday, stats.UnitsLast7Days, stats.UnitsLast30Days))

	goal := fmt.Sprintf("  Daily goal: %d/%d", stats.UnitsToday, stats.DailyGoal)
	if stats.GoalReached {
		b.WriteString(styles.SuccessStyle.Render(goal + " ✓"))
	} else {
		b.WriteString(styles.SubtitleStyle.Render(goal))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderHistory() string {
	entries := m.Library.RecentHistory(20)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Recent Activity"))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(styles.DimStyle.Render("nothing yet"))
		return b.String()
	}

	for _, entry := range entries {
		b.WriteString(fmt.Sprintf("  %s  %-15s %s\n",
			styles.DimStyle.Render(entry.Timestamp.Format("Jan 02 15:04")),
			entry.Action,
			describeHistory(entry)))
	}
	return b.String()
}

func describeHistory(entry domain.HistoryEntry) string {
	d := entry.Details
	switch entry.Action {
	case domain.ActionRead:
		return fmt.Sprintf("%s — %d chapters in %dm", d.TitleName, d.Units, d.DurationSeconds/60)
	case domain.ActionProgressUpdate, domain.ActionCompleted:
		return fmt.Sprintf("%s — at ch.%d", d.TitleName, d.Chapter)
	default:
		return d.TitleName
	}
}

func (m Model) renderHelp() string {
	keys := [][2]string{
		{"j/k", "move"},
		{"/", "filter titles"},
		{"a", "add title"},
		{"d", "delete title"},
		{"+", "mark chapter read"},
		{"s", "start/stop reading session"},
		{"b", "bookmark a chapter"},
		{"1/2/3", "library / stats / history"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.AccentStyle.Render(fmt.Sprintf("%-6s", k[0])), k[1]))
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("press any key to close"))
	return b.String()
}

// renderTimerBar shows the active reading session, if any.
func (m Model) renderTimerBar() string {
	active, ok := m.Timer.Active()
	if !ok {
		return styles.DimStyle.Render("  no session — press 's' to start reading")
	}

	elapsed := m.Timer.ElapsedSeconds()
	label := fmt.Sprintf("▶ reading %02d:%02d", elapsed/60, elapsed%60)
	if active.TitleID != "" {
		if title, err := m.Library.Title(active.TitleID); err == nil {
			label += "  " + title.Name
		}
	}
	return styles.TimerBarStyle.Render(label)
}

func (m Model) renderStatusLine() string {
	if m.StatusMsg == "" {
		return styles.DimStyle.Render("  ? for help")
	}
	if m.StatusIsErr {
		return styles.ErrorStyle.Render("  " + m.StatusMsg)
	}
	return styles.SubtitleStyle.Render("  " + m.StatusMsg)
}

func statusIndicator(s domain.Status) string {
	switch s {
	case domain.StatusReading:
		return styles.ReadingStyle.Render(styles.ReadingChar)
	case domain.StatusCompleted:
		return styles.CompletedStyle.Render(styles.CompletedChar)
	case domain.StatusOnHold:
		return styles.OnHoldStyle.Render(styles.OnHoldChar)
	case domain.StatusDropped:
		return styles.DroppedStyle.Render(styles.DroppedChar)
	default:
		return styles.PlannedStyle.Render(styles.PlannedChar)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
