package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okabe/tankobon/internal/domain"
	"github.com/okabe/tankobon/internal/library"
	"github.com/okabe/tankobon/internal/search"
	"github.com/okabe/tankobon/internal/session"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLibrary ApplicationState = iota
	StateStats
	StateHistory
	StateFiltering     // typing into the list filter
	StateAddingTitle   // typing a new title name
	StateStoppingTimer // prompting for chapters read
	StateBookmarking   // prompting for a chapter position
	StateConfirmDelete
	StateHelp
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Library *library.Service
	Timer   *session.Timer
	Search  *search.Service

	Keys  KeyMap
	State ApplicationState

	// Library list state
	Cursor  int
	Matches []search.Match
	Filter  textinput.Model

	// Shared prompt input for add/stop/bookmark flows
	Input textinput.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates the TUI model over the given services.
func NewModel(lib *library.Service, timer *session.Timer, searchSvc *search.Service) Model {
	filter := textinput.New()
	filter.Placeholder = "filter titles..."
	filter.Prompt = "/ "
	filter.CharLimit = 64

	input := textinput.New()
	input.CharLimit = 128

	m := Model{
		Library: lib,
		Timer:   timer,
		Search:  searchSvc,
		Keys:    DefaultKeyMap(),
		State:   StateLibrary,
		Filter:  filter,
		Input:   input,
	}
	m.refreshTitles()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// refreshTitles rebuilds the filtered library list after any mutation.
func (m *Model) refreshTitles() {
	index := search.NewTitleIndex(m.Library.Titles())
	m.Matches = index.Filter(m.Filter.Value())
	if m.Cursor >= len(m.Matches) {
		m.Cursor = len(m.Matches) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// selectedTitle returns the title under the cursor, if any.
func (m Model) selectedTitle() (domain.Title, bool) {
	if len(m.Matches) == 0 || m.Cursor >= len(m.Matches) {
		return domain.Title{}, false
	}
	return m.Matches[m.Cursor].Title, true
}

func (m *Model) setStatus(msg string) {
	m.StatusMsg = msg
	m.StatusIsErr = false
}

func (m *Model) setError(msg string) {
	m.StatusMsg = msg
	m.StatusIsErr = true
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case TickMsg:
		// Redraw for the elapsed-time display and reschedule.
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateFiltering:
		return m.handleFilterKey(msg)
	case StateAddingTitle, StateStoppingTimer, StateBookmarking:
		return m.handlePromptKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmKey(msg)
	case StateHelp:
		m.State = StateLibrary
		return m, nil
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.State = StateHelp

	case key.Matches(msg, m.Keys.Library):
		m.State = StateLibrary

	case key.Matches(msg, m.Keys.Stats):
		m.State = StateStats

	case key.Matches(msg, m.Keys.History):
		m.State = StateHistory

	case key.Matches(msg, m.Keys.Up):
		if m.State == StateLibrary && m.Cursor > 0 {
			m.Cursor--
		}

	case key.Matches(msg, m.Keys.Down):
		if m.State == StateLibrary && m.Cursor < len(m.Matches)-1 {
			m.Cursor++
		}

	case key.Matches(msg, m.Keys.Filter):
		if m.State == StateLibrary {
			m.State = StateFiltering
			m.Filter.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, m.Keys.Add):
		m.State = StateAddingTitle
		m.Input.Placeholder = "title name"
		m.Input.SetValue("")
		m.Input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.Keys.Delete):
		if _, ok := m.selectedTitle(); ok {
			m.State = StateConfirmDelete
		}

	case key.Matches(msg, m.Keys.Advance):
		if title, ok := m.selectedTitle(); ok {
			updated, err := m.Library.AdvanceProgress(title.ID, 1)
			if err != nil {
				m.setError(err.Error())
				break
			}
			m.setStatus(fmt.Sprintf("%s → %s", updated.Name, updated.FormattedProgress()))
			m.refreshTitles()
		}

	case key.Matches(msg, m.Keys.Timer):
		return m.toggleTimer()

	case key.Matches(msg, m.Keys.Bookmark):
		if _, ok := m.selectedTitle(); ok {
			m.State = StateBookmarking
			m.Input.Placeholder = "chapter number"
			m.Input.SetValue("")
			m.Input.Focus()
			return m, textinput.Blink
		}
	}

	return m, nil
}

// toggleTimer starts a session bound to the selected title, or prompts for
// chapters read when one is already running.
func (m Model) toggleTimer() (tea.Model, tea.Cmd) {
	if _, active := m.Timer.Active(); active {
		m.State = StateStoppingTimer
		m.Input.Placeholder = "chapters read"
		m.Input.SetValue("")
		m.Input.Focus()
		return m, textinput.Blink
	}

	var titleID string
	if title, ok := m.selectedTitle(); ok && m.State == StateLibrary {
		titleID = title.ID
	}
	if _, err := m.Timer.Start(titleID); err != nil {
		m.setError(err.Error())
		return m, nil
	}
	m.setStatus("reading session started")
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Escape):
		m.State = StateLibrary
		m.Filter.Blur()
		m.Filter.SetValue("")
		m.refreshTitles()
		return m, nil

	case key.Matches(msg, m.Keys.Enter):
		m.State = StateLibrary
		m.Filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	m.refreshTitles()
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Escape):
		m.State = StateLibrary
		m.Input.Blur()
		return m, nil

	case key.Matches(msg, m.Keys.Enter):
		return m.submitPrompt()
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.Input.Value())
	state := m.State
	m.State = StateLibrary
	m.Input.Blur()

	switch state {
	case StateAddingTitle:
		if value == "" {
			return m, nil
		}
		title := m.Library.CreateTitle(library.TitleInput{Name: value})
		m.Library.RecordHistory(title.ID, domain.ActionAdded, domain.HistoryDetails{
			TitleName: title.Name,
		})
		m.setStatus(fmt.Sprintf("added %q", title.Name))
		m.refreshTitles()

	case StateStoppingTimer:
		units, err := strconv.Atoi(value)
		if err != nil || units < 0 {
			units = 0
		}
		closed, err := m.Timer.Stop(units)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.setStatus(fmt.Sprintf("session saved: %d chapters in %s",
			closed.UnitsRead, closed.Duration().Round(time.Second)))
		m.refreshTitles()

	case StateBookmarking:
		title, ok := m.selectedTitle()
		if !ok {
			return m, nil
		}
		position, err := strconv.Atoi(value)
		if err != nil {
			m.setError("chapter must be a number")
			return m, nil
		}
		m.Library.AddBookmark(title.ID, position, "")
		m.setStatus(fmt.Sprintf("bookmarked %s ch.%d", title.Name, position))
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		m.State = StateLibrary
		title, ok := m.selectedTitle()
		if !ok {
			return m, nil
		}
		removed, err := m.Library.DeleteTitle(title.ID)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.Library.RecordHistory(removed.ID, domain.ActionDeleted, domain.HistoryDetails{
			TitleName: removed.Name,
		})
		m.setStatus(fmt.Sprintf("deleted %q", removed.Name))
		m.refreshTitles()

	case key.Matches(msg, m.Keys.Deny):
		m.State = StateLibrary
	}
	return m, nil
}
