package routes

import (
	"encoding/json"
	"net/http"

	"github.com/baiwei666/CineTrack/internal/model"
	"github.com/baiwei666/CineTrack/internal/view"
	pkghttpx "github.com/baiwei666/CineTrack/pkg/httpx"
)

// Records registers GET /records. Query params: search, kind, tag, sort,
// duplicates (truthy enables the duplicates-only view, ignoring the rest).
func Records(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := model.FilterState{
			Search:         q.Get("search"),
			Kind:           q.Get("kind"),
			Tag:            q.Get("tag"),
			Sort:           q.Get("sort"),
			DuplicatesOnly: q.Get("duplicates") == "1" || q.Get("duplicates") == "true",
		}
		items := view.Apply(d.Store.Records(), f)
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"items": items,
			"count": len(items),
			"total": len(d.Store.Records()),
		})
	}
}

// CreateRecord registers POST /records
func CreateRecord(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, he := decodeRecord(r)
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		rec.ID = "" // ids are always generated on create
		saved, err := d.Store.Add(rec)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to persist record", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusCreated, saved)
	}
}

// UpdateRecord registers PUT /records/{id}
func UpdateRecord(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, he := decodeRecord(r)
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		rec.ID = r.PathValue("id")
		found, err := d.Store.Replace(rec)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to persist record", err))
			return
		}
		if !found {
			pkghttpx.WriteError(w, r, pkghttpx.NotFound("record not found", nil))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, rec)
	}
}

// DeleteRecord registers DELETE /records/{id}
func DeleteRecord(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := d.Store.Remove(r.PathValue("id"))
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to persist record", err))
			return
		}
		if !found {
			pkghttpx.WriteError(w, r, pkghttpx.NotFound("record not found", nil))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeRecord(r *http.Request) (model.WatchRecord, *pkghttpx.HTTPError) {
	var rec model.WatchRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		return rec, pkghttpx.BadRequest("invalid record payload", err)
	}
	if rec.Title == "" {
		return rec, pkghttpx.Validation("title is required", nil)
	}
	if rec.MediaKind == "" {
		rec.MediaKind = model.KindMovie
	}
	if _, ok := model.AllowedKinds[rec.MediaKind]; !ok {
		return rec, pkghttpx.Validation("unknown media kind", nil)
	}
	if rec.PersonalRating < 0 || rec.PersonalRating > 10 {
		return rec, pkghttpx.Validation("personal rating must be within [0,10]", nil)
	}
	return rec, nil
}
