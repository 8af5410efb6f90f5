package routes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/baiwei666/CineTrack/internal/model"
	pkghttpx "github.com/baiwei666/CineTrack/pkg/httpx"
)

const searchCacheTTL = 2 * time.Minute

// LookupSearch registers GET /lookup/search?q=
// Failures degrade to an empty candidate list; the caller cannot tell "no
// data" from "error" and is not meant to.
func LookupSearch(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query().Get("q")
		if q == "" {
			pkghttpx.WriteError(w, r, pkghttpx.Validation("query is required", nil))
			return
		}
		cacheKey := "lookup_search:" + q
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		client := d.NewLookup(d.Settings.Current().TMDBAPIKey)
		items, err := client.SearchTitles(ctx, q)
		if err != nil {
			log.Error().Err(err).Str("query", q).Msg("title search failed")
			items = nil
		}
		if items == nil {
			items = []model.Candidate{}
		}
		b, _ := json.Marshal(map[string]any{"items": items, "count": len(items)})
		if err == nil {
			_ = d.Cache.Set(ctx, cacheKey, string(b), searchCacheTTL)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// LookupDetails registers GET /lookup/details?id=&kind=
func LookupDetails(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		id, kind := q.Get("id"), q.Get("kind")
		if id == "" {
			pkghttpx.WriteError(w, r, pkghttpx.Validation("id is required", nil))
			return
		}
		client := d.NewLookup(d.Settings.Current().TMDBAPIKey)
		details, err := client.FetchDetails(r.Context(), id, kind)
		if err != nil {
			log.Error().Err(err).Str("external_id", id).Msg("detail fetch failed")
			pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"details": nil})
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"details": details})
	}
}

// LookupSeason registers GET /lookup/season?id=&season=
func LookupSeason(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		id := q.Get("id")
		season, err := strconv.Atoi(q.Get("season"))
		if id == "" || err != nil || season <= 0 {
			pkghttpx.WriteError(w, r, pkghttpx.Validation("id and a positive season are required", err))
			return
		}
		client := d.NewLookup(d.Settings.Current().TMDBAPIKey)
		sd, err := client.FetchSeasonDetails(r.Context(), id, season)
		if err != nil {
			log.Error().Err(err).Str("external_id", id).Int("season", season).Msg("season fetch failed")
			pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"season": nil})
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"season": sd})
	}
}
