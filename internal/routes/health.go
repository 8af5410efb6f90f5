package routes

import (
	"net/http"

	pkghttpx "github.com/baiwei666/CineTrack/pkg/httpx"
)

// Health registers GET /health
func Health(_ Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
