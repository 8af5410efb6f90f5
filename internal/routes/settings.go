package routes

import (
	"encoding/json"
	"net/http"

	"github.com/baiwei666/CineTrack/internal/model"
	pkghttpx "github.com/baiwei666/CineTrack/pkg/httpx"
)

// GetSettings registers GET /settings
func GetSettings(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkghttpx.WriteJSON(w, http.StatusOK, d.Settings.Current())
	}
}

// SaveSettings registers PUT /settings: whole-snapshot overwrite,
// persisted immediately.
func SaveSettings(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s model.AppSettings
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid settings payload", err))
			return
		}
		if s.AIProvider == "" {
			s.AIProvider = model.ProviderMock
		}
		if _, ok := model.AllowedProviders[s.AIProvider]; !ok {
			pkghttpx.WriteError(w, r, pkghttpx.Validation("unknown analysis provider", nil))
			return
		}
		if err := d.Store.SaveSettings(s); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to persist settings", err))
			return
		}
		d.Settings.Update(s)
		pkghttpx.WriteJSON(w, http.StatusOK, s)
	}
}
