package lookup_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiwei666/CineTrack/internal/lookup"
	"github.com/baiwei666/CineTrack/internal/model"
)

type fakeSearcher struct {
	calls atomic.Int32
	fn    func(query string) ([]model.Candidate, error)
}

func (f *fakeSearcher) SearchTitles(_ context.Context, query string) ([]model.Candidate, error) {
	f.calls.Add(1)
	return f.fn(query)
}

func candidatesFor(query string) []model.Candidate {
	return []model.Candidate{{ExternalID: "1", Title: query}}
}

func TestSuggesterCollapsesKeystrokes(t *testing.T) {
	fs := &fakeSearcher{fn: func(q string) ([]model.Candidate, error) {
		return candidatesFor(q), nil
	}}
	s := lookup.NewSuggester(fs, 20*time.Millisecond)
	defer s.Stop()

	for _, q := range []string{"in", "inc", "ince", "incep"} {
		s.Input(q)
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		got := s.Suggestions()
		return len(got) == 1 && got[0].Title == "incep"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), fs.calls.Load())
}

func TestSuggesterClearsShortQuery(t *testing.T) {
	fs := &fakeSearcher{fn: func(q string) ([]model.Candidate, error) {
		return candidatesFor(q), nil
	}}
	s := lookup.NewSuggester(fs, 5*time.Millisecond)
	defer s.Stop()

	s.Input("dune")
	require.Eventually(t, func() bool {
		return len(s.Suggestions()) == 1
	}, time.Second, 5*time.Millisecond)

	// One rune or less clears immediately, no call made.
	before := fs.calls.Load()
	s.Input("d")
	assert.Empty(t, s.Suggestions())
	assert.Equal(t, before, fs.calls.Load())

	s.Input("")
	assert.Empty(t, s.Suggestions())
}

func TestSuggesterDropsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	fs := &fakeSearcher{fn: func(q string) ([]model.Candidate, error) {
		if q == "slow" {
			<-release
		}
		return candidatesFor(q), nil
	}}
	s := lookup.NewSuggester(fs, 5*time.Millisecond)
	defer s.Stop()

	s.Input("slow")
	require.Eventually(t, func() bool {
		return fs.calls.Load() == 1
	}, time.Second, time.Millisecond)

	s.Input("fast")
	require.Eventually(t, func() bool {
		got := s.Suggestions()
		return len(got) == 1 && got[0].Title == "fast"
	}, time.Second, 5*time.Millisecond)

	// The older search returns after the newer one: its result must be
	// discarded, not swapped in.
	close(release)
	time.Sleep(50 * time.Millisecond)
	got := s.Suggestions()
	require.Len(t, got, 1)
	assert.Equal(t, "fast", got[0].Title)
}

func TestSuggesterSearchErrorClearsList(t *testing.T) {
	fail := atomic.Bool{}
	fs := &fakeSearcher{fn: func(q string) ([]model.Candidate, error) {
		if fail.Load() {
			return nil, errors.New("upstream down")
		}
		return candidatesFor(q), nil
	}}
	s := lookup.NewSuggester(fs, 5*time.Millisecond)
	defer s.Stop()

	s.Input("dune")
	require.Eventually(t, func() bool {
		return len(s.Suggestions()) == 1
	}, time.Second, 5*time.Millisecond)

	fail.Store(true)
	s.Input("dune part two")
	require.Eventually(t, func() bool {
		return len(s.Suggestions()) == 0
	}, time.Second, 5*time.Millisecond)
}

type fakeSeasonFetcher struct {
	calls atomic.Int32
	fn    func(externalID string, season int) (model.SeasonDetails, error)
}

func (f *fakeSeasonFetcher) FetchSeasonDetails(_ context.Context, externalID string, season int) (model.SeasonDetails, error) {
	f.calls.Add(1)
	return f.fn(externalID, season)
}

func TestSeasonWatcherFetchesAndClears(t *testing.T) {
	ff := &fakeSeasonFetcher{fn: func(id string, season int) (model.SeasonDetails, error) {
		return model.SeasonDetails{Overview: "s" + id, Year: 2008 + season}, nil
	}}
	w := lookup.NewSeasonWatcher(ff, 5*time.Millisecond)
	defer w.Stop()

	_, ok := w.Details()
	assert.False(t, ok)

	w.Update("1396", 2)
	require.Eventually(t, func() bool {
		sd, ok := w.Details()
		return ok && sd.Year == 2010
	}, time.Second, 5*time.Millisecond)

	// Incomplete input clears without a call.
	before := ff.calls.Load()
	w.Update("", 2)
	_, ok = w.Details()
	assert.False(t, ok)
	w.Update("1396", 0)
	_, ok = w.Details()
	assert.False(t, ok)
	assert.Equal(t, before, ff.calls.Load())
}

func TestSeasonWatcherKeepsLastGoodOnError(t *testing.T) {
	fail := atomic.Bool{}
	ff := &fakeSeasonFetcher{fn: func(id string, season int) (model.SeasonDetails, error) {
		if fail.Load() {
			return model.SeasonDetails{}, errors.New("not found")
		}
		return model.SeasonDetails{Overview: "ok"}, nil
	}}
	w := lookup.NewSeasonWatcher(ff, 5*time.Millisecond)
	defer w.Stop()

	w.Update("1396", 1)
	require.Eventually(t, func() bool {
		_, ok := w.Details()
		return ok
	}, time.Second, 5*time.Millisecond)

	fail.Store(true)
	w.Update("1396", 2)
	require.Eventually(t, func() bool {
		return ff.calls.Load() == 2
	}, time.Second, 5*time.Millisecond)

	// A failed refetch leaves the previous details in place.
	sd, ok := w.Details()
	assert.True(t, ok)
	assert.Equal(t, "ok", sd.Overview)
}
