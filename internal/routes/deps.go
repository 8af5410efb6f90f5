package routes

import (
	"context"
	"sync"

	"github.com/baiwei666/CineTrack/internal/analysis"
	"github.com/baiwei666/CineTrack/internal/model"
	"github.com/baiwei666/CineTrack/internal/store"
	"github.com/baiwei666/CineTrack/pkg/cache"
)

// LookupClient lists the metadata-client methods the handlers rely on.
// tmdb.Client satisfies this interface.
type LookupClient interface {
	SearchTitles(ctx context.Context, query string) ([]model.Candidate, error)
	FetchDetails(ctx context.Context, externalID, kind string) (model.Details, error)
	FetchSeasonDetails(ctx context.Context, externalID string, season int) (model.SeasonDetails, error)
}

// Deps holds the dependencies required by the route handlers. NewLookup
// builds a client for the currently configured API key, so a settings save
// takes effect on the next request.
type Deps struct {
	Store     *store.Store
	Cache     cache.Cache
	Analyzer  *analysis.Orchestrator
	Settings  *Settings
	NewLookup func(apiKey string) LookupClient
}

// Settings is the runtime holder for the mutable settings snapshot.
type Settings struct {
	mu  sync.RWMutex
	cur model.AppSettings
}

func NewSettings(initial model.AppSettings) *Settings {
	return &Settings{cur: initial}
}

func (s *Settings) Current() model.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Settings) Update(v model.AppSettings) {
	s.mu.Lock()
	s.cur = v
	s.mu.Unlock()
}
