package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiwei666/CineTrack/internal/model"
	"github.com/baiwei666/CineTrack/internal/store"
)

func openTemp(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cinetrack.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpenSeedsWhenEmpty(t *testing.T) {
	s, _ := openTemp(t)
	recs := s.Records()
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Title)
	}
}

func TestOpenReloadsPersistedSnapshot(t *testing.T) {
	s, path := openTemp(t)
	added, err := s.Add(model.WatchRecord{Title: "Dune", MediaKind: model.KindMovie})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	require.NoError(t, s.Close())

	s2, err := store.Open(path)
	require.NoError(t, err)
	defer s2.Close()
	recs := s2.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "Dune", recs[0].Title)
}

func TestAddPrepends(t *testing.T) {
	s := store.NewInMemory(nil)
	_, err := s.Add(model.WatchRecord{ID: "a", Title: "First"})
	require.NoError(t, err)
	_, err = s.Add(model.WatchRecord{ID: "b", Title: "Second"})
	require.NoError(t, err)
	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].ID)
	assert.Equal(t, "a", recs[1].ID)
}

func TestReplaceUnknownIDIsNoOp(t *testing.T) {
	s := store.NewInMemory([]model.WatchRecord{{ID: "a", Title: "Old"}})
	found, err := s.Replace(model.WatchRecord{ID: "missing", Title: "New"})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "Old", s.Records()[0].Title)

	found, err = s.Replace(model.WatchRecord{ID: "a", Title: "New"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "New", s.Records()[0].Title)
}

func TestRemove(t *testing.T) {
	s := store.NewInMemory([]model.WatchRecord{{ID: "a"}, {ID: "b"}})
	found, err := s.Remove("a")
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, s.Records(), 1)

	found, err = s.Remove("a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveAllSkipsEmptySnapshot(t *testing.T) {
	s, path := openTemp(t)
	require.NotEmpty(t, s.Records())

	// Clearing the in-memory list must not clobber the snapshot on disk.
	require.NoError(t, s.SaveAll(nil))
	assert.Empty(t, s.Records())
	require.NoError(t, s.Close())

	s2, err := store.Open(path)
	require.NoError(t, err)
	defer s2.Close()
	assert.Len(t, s2.Records(), 2)
}

func TestImportMergeExistingIDWins(t *testing.T) {
	s := store.NewInMemory([]model.WatchRecord{{ID: "a", Title: "Kept"}})
	payload := []byte(`[
		{"id":"a","title":"Clobbered","mediaKind":"Movie"},
		{"id":"b","title":"Fresh","mediaKind":"Series"},
		{"id":"c","title":"Also Fresh","mediaKind":"Movie"}
	]`)
	n, err := s.Import(payload)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recs := s.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "b", recs[0].ID)
	assert.Equal(t, "c", recs[1].ID)
	assert.Equal(t, "Kept", recs[2].Title)
}

func TestImportRejectsBadPayload(t *testing.T) {
	s := store.NewInMemory(nil)

	_, err := s.Import([]byte(`{"not":"a list"}`))
	assert.ErrorIs(t, err, store.ErrBadImport)

	// First element with neither a title nor an id is not a record list.
	_, err = s.Import([]byte(`[{"mediaKind":"Movie"}]`))
	assert.ErrorIs(t, err, store.ErrBadImport)

	// Title alone is enough.
	n, err := s.Import([]byte(`[{"title":"Okja"}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImportAllDuplicates(t *testing.T) {
	s := store.NewInMemory([]model.WatchRecord{{ID: "a", Title: "Kept"}})
	n, err := s.Import([]byte(`[{"id":"a","title":"Dup"}]`))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, s.Records(), 1)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := store.NewInMemory([]model.WatchRecord{
		{ID: "a", Title: "盗梦空间", OriginalTitle: "Inception", MediaKind: model.KindMovie, PersonalRating: 9, Tags: []string{"科幻"}, Actors: []string{"Leonardo DiCaprio"}},
		{ID: "b", Title: "绝命毒师", MediaKind: model.KindSeries, Episodes: 62, Tags: []string{"犯罪"}, Actors: []string{}},
	})
	exported, err := src.Export()
	require.NoError(t, err)

	dst := store.NewInMemory(nil)
	n, err := dst.Import(exported)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, src.Records(), dst.Records())

	again, err := dst.Export()
	require.NoError(t, err)
	assert.Equal(t, string(exported), string(again))
}

func TestSettingsRoundTrip(t *testing.T) {
	s, path := openTemp(t)
	defaults := model.AppSettings{AIProvider: model.ProviderMock, AIModel: "gpt-3.5-turbo"}

	// Nothing on disk yet: defaults pass through.
	assert.Equal(t, defaults, s.LoadSettings(defaults))

	saved := model.AppSettings{TMDBAPIKey: "tk", AIProvider: model.ProviderOpenAI, AIAPIKey: "ak", AIModel: "gpt-4o"}
	require.NoError(t, s.SaveSettings(saved))
	require.NoError(t, s.Close())

	s2, err := store.Open(path)
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, saved, s2.LoadSettings(defaults))
}

func TestOpenFailsOnCorruptFile(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.SaveSettings(model.AppSettings{AIProvider: model.ProviderGemini}))
	require.NoError(t, s.Close())

	// Truncate the file so bolt cannot open it at all.
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	_, err := store.Open(path)
	assert.Error(t, err)
}
