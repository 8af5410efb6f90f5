package lookup

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/baiwei666/CineTrack/internal/model"
	"github.com/baiwei666/CineTrack/pkg/debounce"
)

// SeasonFetcher is the slice of the metadata client the watcher needs.
type SeasonFetcher interface {
	FetchSeasonDetails(ctx context.Context, externalID string, season int) (model.SeasonDetails, error)
}

// SeasonWatcher debounces season-detail refetches triggered by edits to the
// external id or season number. Same last-write-wins policy as the
// suggester.
type SeasonWatcher struct {
	fetcher SeasonFetcher
	deb     *debounce.Debouncer
	seq     atomic.Uint64

	mu     sync.Mutex
	latest model.SeasonDetails
	have   bool
}

func NewSeasonWatcher(f SeasonFetcher, window time.Duration) *SeasonWatcher {
	return &SeasonWatcher{fetcher: f, deb: debounce.New(window)}
}

// Update feeds the current (externalID, season) pair. Incomplete input
// clears the held details without a call.
func (w *SeasonWatcher) Update(externalID string, season int) {
	if externalID == "" || season <= 0 {
		w.deb.Stop()
		w.mu.Lock()
		w.latest, w.have = model.SeasonDetails{}, false
		w.mu.Unlock()
		return
	}
	w.deb.Trigger(func() {
		id := w.seq.Add(1)
		go w.fetch(id, externalID, season)
	})
}

func (w *SeasonWatcher) fetch(id uint64, externalID string, season int) {
	sd, err := w.fetcher.FetchSeasonDetails(context.Background(), externalID, season)
	if err != nil {
		log.Error().Err(err).Str("external_id", externalID).Int("season", season).Msg("season fetch failed")
		return
	}
	if id != w.seq.Load() {
		return
	}
	w.mu.Lock()
	w.latest, w.have = sd, true
	w.mu.Unlock()
}

// Details returns the most recently fetched season details, if any.
func (w *SeasonWatcher) Details() (model.SeasonDetails, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest, w.have
}

// Stop cancels any pending refetch.
func (w *SeasonWatcher) Stop() { w.deb.Stop() }
