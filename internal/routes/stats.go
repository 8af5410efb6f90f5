package routes

import (
	"net/http"
	"sort"
	"time"

	"github.com/baiwei666/CineTrack/internal/dupes"
	"github.com/baiwei666/CineTrack/internal/stats"
	pkghttpx "github.com/baiwei666/CineTrack/pkg/httpx"
)

// Stats registers GET /stats. The summary is recomputed on every request.
func Stats(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := stats.Compute(d.Store.Records(), time.Now())
		pkghttpx.WriteJSON(w, http.StatusOK, s)
	}
}

// Duplicates registers GET /duplicates: the flagged-id set, sorted for a
// stable response body.
func Duplicates(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flagged := dupes.Flag(d.Store.Records())
		ids := make([]string, 0, len(flagged))
		for id := range flagged {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"ids":   ids,
			"count": len(ids),
		})
	}
}
