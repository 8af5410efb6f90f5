// Package lookup wires the metadata client into the type-as-you-search
// flows: a debounced title suggester and a debounced season-detail watcher.
// In-flight requests are never cancelled, so responses can arrive out of
// order; a sequence counter makes sure a stale response never replaces a
// newer suggestion list.
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

// SearchWindow and SeasonWindow are the quiet windows gating repeated
// keystroke-triggered calls.
const (
	SearchWindow = 500 * time.Millisecond
	SeasonWindow = 600 * time.Millisecond
)

// Searcher is the slice of the metadata client the suggester needs.
type Searcher interface {
	SearchTitles(ctx context.Context, query string) ([]model.Candidate, error)
}

// Suggester turns a stream of keystrokes into at most one search call per
// quiet window. Failures degrade to an empty list; they are logged only.
type Suggester struct {
	searcher Searcher
	deb      *debounce.Debouncer
	seq      atomic.Uint64

	mu     sync.Mutex
	latest []model.Candidate
}

func NewSuggester(s Searcher, window time.Duration) *Suggester {
	return &Suggester{searcher: s, deb: debounce.New(window)}
}

// Input feeds the current query text. Queries of one character or less
// clear the suggestion list immediately without a call.
func (s *Suggester) Input(query string) {
	if len([]rune(query)) <= 1 {
		s.deb.Stop()
		s.mu.Lock()
		s.latest = nil
		s.mu.Unlock()
		return
	}
	s.deb.Trigger(func() {
		id := s.seq.Add(1)
		go s.fetch(id, query)
	})
}

func (s *Suggester) fetch(id uint64, query string) {
	cands, err := s.searcher.SearchTitles(context.Background(), query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("title search failed")
		cands = nil
	}
	// Drop the result if a newer search started meanwhile.
	if id != s.seq.Load() {
		return
	}
	s.mu.Lock()
	s.latest = cands
	s.mu.Unlock()
}

// Suggestions returns the most recent suggestion list.
func (s *Suggester) Suggestions() []model.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Candidate(nil), s.latest...)
}

// Stop cancels any pending search.
func (s *Suggester) Stop() { s.deb.Stop() }
