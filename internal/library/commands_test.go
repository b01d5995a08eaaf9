package library

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okabe/tankobon/internal/domain"
	"github.com/okabe/tankobon/internal/log"
)

// stubBlob records write attempts and can be told to fail them.
type stubBlob struct {
	data     map[string][]byte
	setCalls int
	failSet  bool
}

func newStubBlob() *stubBlob {
	return &stubBlob{data: make(map[string][]byte)}
}

func (b *stubBlob) Get(key string) ([]byte, bool) {
	v, ok := b.data[key]
	return v, ok
}

func (b *stubBlob) Set(key string, value []byte) error {
	b.setCalls++
	if b.failSet {
		return errors.New("disk full")
	}
	b.data[key] = value
	return nil
}

func (b *stubBlob) Close() error { return nil }

// testClock is a manually advanced time source.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService(t *testing.T) (*Service, *stubBlob, *testClock) {
	t.Helper()
	blob := newStubBlob()
	clock := newTestClock()
	svc := NewService(blob, log.NullLogger(), WithClock(clock.Now))
	return svc, blob, clock
}

func TestService_CreateTitle_Defaults(t *testing.T) {
	svc, blob, clock := newTestService(t)

	title := svc.CreateTitle(TitleInput{Name: "Berserk"})

	assert.NotEmpty(t, title.ID)
	assert.Equal(t, domain.KindManga, title.Kind)
	assert.Equal(t, domain.StatusReading, title.Status)
	assert.Equal(t, 0, title.CurrentProgress)
	assert.NotNil(t, title.Tags)
	assert.Empty(t, title.Tags)
	assert.Equal(t, clock.Now(), title.CreatedAt)
	assert.Equal(t, clock.Now(), title.UpdatedAt)
	assert.Equal(t, clock.Now(), title.StartedAt)
	assert.Equal(t, 1, blob.setCalls, "create must persist")
}

func TestService_CreateTitle_UniqueIDs(t *testing.T) {
	svc, _, _ := newTestService(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		title := svc.CreateTitle(TitleInput{Name: fmt.Sprintf("title %d", i)})
		assert.False(t, seen[title.ID], "duplicate id %s", title.ID)
		seen[title.ID] = true
	}
}

func TestService_CreateTitle_DuplicateNamesAllowed(t *testing.T) {
	svc, _, _ := newTestService(t)

	a := svc.CreateTitle(TitleInput{Name: "One Piece"})
	b := svc.CreateTitle(TitleInput{Name: "One Piece"})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, svc.Titles(), 2)
}

func TestService_UpdateTitle_MergesAndRefreshesUpdatedAt(t *testing.T) {
	svc, _, clock := newTestService(t)

	created := svc.CreateTitle(TitleInput{Name: "Vinland Saga", Author: "Yukimura"})
	clock.Advance(time.Minute)

	status := domain.StatusOnHold
	updated, err := svc.UpdateTitle(created.ID, TitleUpdate{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOnHold, updated.Status)
	assert.Equal(t, "Yukimura", updated.Author, "untouched fields survive")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt),
		"updatedAt must be strictly greater after an update")

	got, err := svc.Title(created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOnHold, got.Status)
}

func TestService_UpdateTitle_NoClampNoAutoComplete(t *testing.T) {
	svc, _, _ := newTestService(t)

	total := 10
	created := svc.CreateTitle(TitleInput{Name: "Short Run", TotalUnits: &total})

	// The free-form update path applies values as-is, even past the
	// known length, and never flips the status.
	progress := 25
	updated, err := svc.UpdateTitle(created.ID, TitleUpdate{CurrentProgress: &progress})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.CurrentProgress)
	assert.Equal(t, domain.StatusReading, updated.Status)
}

func TestService_UpdateTitle_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	name := "x"
	_, err := svc.UpdateTitle("missing", TitleUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrTitleNotFound)
}

func TestService_DeleteTitle(t *testing.T) {
	svc, _, _ := newTestService(t)

	created := svc.CreateTitle(TitleInput{Name: "Dropped Series"})

	removed, err := svc.DeleteTitle(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = svc.Title(created.ID)
	assert.ErrorIs(t, err, domain.ErrTitleNotFound)

	_, err = svc.DeleteTitle(created.ID)
	assert.ErrorIs(t, err, domain.ErrTitleNotFound)
}

func TestService_AdvanceProgress_CapsAndCompletes(t *testing.T) {
	svc, _, clock := newTestService(t)

	total := 3
	created := svc.CreateTitle(TitleInput{Name: "Miniseries", TotalUnits: &total})
	clock.Advance(time.Hour)

	updated, err := svc.AdvanceProgress(created.ID, 5)
	require.NoError(t, err)

	assert.Equal(t, 3, updated.CurrentProgress, "quick update caps at the known length")
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	require.NotNil(t, updated.FinishedAt)
	assert.Equal(t, clock.Now(), *updated.FinishedAt)
	require.NotNil(t, updated.LastProgressAt)

	history := svc.RecentHistory(1)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionCompleted, history[0].Action)
	assert.Equal(t, created.ID, history[0].TitleID)
}

func TestService_AdvanceProgress_RecordsProgressUpdate(t *testing.T) {
	svc, _, _ := newTestService(t)

	created := svc.CreateTitle(TitleInput{Name: "Endless", CurrentProgress: 7})

	updated, err := svc.AdvanceProgress(created.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.CurrentProgress, "unknown length is never capped")
	assert.Equal(t, domain.StatusReading, updated.Status)

	history := svc.RecentHistory(1)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionProgressUpdate, history[0].Action)
	assert.Equal(t, 2, history[0].Details.Units)
	assert.Equal(t, 9, history[0].Details.Chapter)
}

func TestService_StartSession_NoGuardAtStoreLevel(t *testing.T) {
	svc, _, _ := newTestService(t)

	first := svc.StartSession("")
	second := svc.StartSession("")

	// The store deliberately accepts overlapping sessions; the timer
	// component is responsible for the single-active invariant.
	assert.True(t, first.Active)
	assert.True(t, second.Active)
	assert.Len(t, svc.Sessions(), 2)
}

func TestService_EndSession_AdvancesBoundTitle(t *testing.T) {
	svc, _, clock := newTestService(t)

	created := svc.CreateTitle(TitleInput{Name: "Kingdom", CurrentProgress: 10})
	sess := svc.StartSession(created.ID)
	clock.Advance(30 * time.Minute)

	closed, err := svc.EndSession(sess.ID, 4)
	require.NoError(t, err)

	assert.False(t, closed.Active)
	require.NotNil(t, closed.EndedAt)
	assert.Equal(t, 4, closed.UnitsRead)
	assert.Equal(t, 30*time.Minute, closed.Duration())

	title, err := svc.Title(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 14, title.CurrentProgress, "progress advances by exactly unitsRead")
	require.NotNil(t, title.LastProgressAt)
	assert.Equal(t, clock.Now(), *title.LastProgressAt)
}

func TestService_EndSession_ZeroUnitsLeavesTitleAlone(t *testing.T) {
	svc, _, clock := newTestService(t)

	created := svc.CreateTitle(TitleInput{Name: "Skim Read", CurrentProgress: 5})
	sess := svc.StartSession(created.ID)
	clock.Advance(time.Minute)

	_, err := svc.EndSession(sess.ID, 0)
	require.NoError(t, err)

	title, err := svc.Title(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, title.CurrentProgress)
	assert.Nil(t, title.LastProgressAt)
}

func TestService_EndSession_UnboundSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	sess := svc.StartSession("")
	closed, err := svc.EndSession(sess.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, closed.UnitsRead)
}

func TestService_EndSession_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.EndSession("missing", 1)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestService_EndSession_CompletesAtKnownLength(t *testing.T) {
	svc, _, _ := newTestService(t)

	total := 12
	created := svc.CreateTitle(TitleInput{Name: "Final Stretch", CurrentProgress: 10, TotalUnits: &total})
	sess := svc.StartSession(created.ID)

	_, err := svc.EndSession(sess.ID, 2)
	require.NoError(t, err)

	title, err := svc.Title(created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, title.Status)
	assert.NotNil(t, title.FinishedAt)
}

func TestService_RecordHistory_CapsAtLimitNewestFirst(t *testing.T) {
	svc, _, clock := newTestService(t)

	for i := 0; i < domain.HistoryLimit+1; i++ {
		clock.Advance(time.Second)
		svc.RecordHistory("", domain.ActionUpdated, domain.HistoryDetails{
			TitleName: fmt.Sprintf("entry %d", i),
		})
	}

	history := svc.RecentHistory(0)
	require.Len(t, history, domain.HistoryLimit)
	assert.Equal(t, fmt.Sprintf("entry %d", domain.HistoryLimit), history[0].Details.TitleName,
		"newest entry first")
	assert.Equal(t, "entry 1", history[len(history)-1].Details.TitleName,
		"oldest entry truncated from the tail")
}

func TestService_Bookmarks(t *testing.T) {
	svc, _, _ := newTestService(t)

	created := svc.CreateTitle(TitleInput{Name: "Witch Hat Atelier"})
	bookmark := svc.AddBookmark(created.ID, 42, "the exam arc")

	marks := svc.Bookmarks(created.ID)
	require.Len(t, marks, 1)
	assert.Equal(t, 42, marks[0].Position)
	assert.Equal(t, "the exam arc", marks[0].Note)

	removed, err := svc.RemoveBookmark(bookmark.ID)
	require.NoError(t, err)
	assert.Equal(t, bookmark.ID, removed.ID)
	assert.Empty(t, svc.Bookmarks(created.ID))

	_, err = svc.RemoveBookmark(bookmark.ID)
	assert.ErrorIs(t, err, domain.ErrBookmarkNotFound)
}

func TestService_AddTag_Dedupes(t *testing.T) {
	svc, _, _ := newTestService(t)

	base := len(svc.Tags())
	svc.AddTag("isekai")
	svc.AddTag("Isekai")
	svc.AddTag("  ")

	tags := svc.Tags()
	assert.Len(t, tags, base+1)
	assert.Equal(t, "isekai", tags[len(tags)-1])
}

func TestService_UpdateSettings(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.Equal(t, 5, svc.Settings().DailyGoal, "seeded default")

	updated := svc.UpdateSettings(domain.Settings{DailyGoal: 12, Theme: "light", Notifications: false})
	assert.Equal(t, 12, updated.DailyGoal)
	assert.Equal(t, "light", svc.Settings().Theme)
}

func TestService_PersistFailure_KeepsInMemoryMutation(t *testing.T) {
	svc, blob, _ := newTestService(t)
	blob.failSet = true

	title := svc.CreateTitle(TitleInput{Name: "Unlucky"})

	// Fire-and-forget persistence: the write failed but the in-memory
	// state remains the source of truth for the process lifetime.
	got, err := svc.Title(title.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unlucky", got.Name)
	assert.Equal(t, 1, blob.setCalls, "write was attempted")
}
