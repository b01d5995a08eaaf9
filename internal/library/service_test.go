package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okabe/tankobon/internal/domain"
	"github.com/okabe/tankobon/internal/log"
)

func TestNewService_FreshStoreIsSeeded(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.Empty(t, svc.Titles())
	assert.Equal(t, domain.DefaultTags(), svc.Tags())
	assert.Equal(t, domain.DefaultSettings(), svc.Settings())
}

func TestNewService_LoadsPersistedDocument(t *testing.T) {
	blob := newStubBlob()

	first := NewService(blob, log.NullLogger())
	created := first.CreateTitle(TitleInput{Name: "Frieren"})

	// A second service over the same blob sees the persisted state.
	second := NewService(blob, log.NullLogger())
	got, err := second.Title(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Frieren", got.Name)
}

func TestNewService_CorruptBlobStartsFresh(t *testing.T) {
	blob := newStubBlob()
	blob.data[documentKey] = []byte("{not json")

	svc := NewService(blob, log.NullLogger())
	assert.Empty(t, svc.Titles())
	assert.Equal(t, domain.DefaultTags(), svc.Tags())
}

func TestService_ExportImportRoundtrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := svc.CreateTitle(TitleInput{Name: "Dungeon Meshi", Author: "Kui"})
	svc.AddBookmark(created.ID, 14, "")

	data, err := svc.ExportJSON()
	require.NoError(t, err)

	restored, _, _ := newTestService(t)
	require.NoError(t, restored.ImportJSON(data))

	got, err := restored.Title(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dungeon Meshi", got.Name)
	assert.Len(t, restored.Bookmarks(created.ID), 1)
}

func TestService_ImportJSON_RejectsGarbage(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.CreateTitle(TitleInput{Name: "Keeper"})

	err := svc.ImportJSON([]byte("not a document"))
	assert.Error(t, err)
	assert.Len(t, svc.Titles(), 1, "failed import leaves the library untouched")
}

func TestService_RecentHistory_Limit(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i := 0; i < 5; i++ {
		svc.RecordHistory("", domain.ActionUpdated, domain.HistoryDetails{})
	}

	assert.Len(t, svc.RecentHistory(3), 3)
	assert.Len(t, svc.RecentHistory(0), 5, "non-positive limit returns everything")
	assert.Len(t, svc.RecentHistory(50), 5)
}
