package routes

import (
	"errors"
	"net/http"

	"github.com/baiwei666/CineTrack/internal/analysis"
	pkghttpx "github.com/baiwei666/CineTrack/pkg/httpx"
)

// AnalysisStatus registers GET /analysis
func AnalysisStatus(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkghttpx.WriteJSON(w, http.StatusOK, d.Analyzer.Status())
	}
}

// RunAnalysis registers POST /analysis. Pre-flight rejections come back as
// validation errors; a completed run is always 200 with either a Success or
// Failure status body; the two are distinguished by the state field and
// the presence of result vs message, never by string sniffing.
func RunAnalysis(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := d.Analyzer.Run(r.Context(), d.Store.Records(), d.Settings.Current())
		if err != nil {
			switch {
			case errors.Is(err, analysis.ErrNoRecords), errors.Is(err, analysis.ErrNoAPIKey):
				pkghttpx.WriteError(w, r, pkghttpx.Validation(err.Error(), nil))
			case errors.Is(err, analysis.ErrRunning):
				pkghttpx.WriteError(w, r, pkghttpx.Conflict(err.Error(), nil))
			default:
				pkghttpx.WriteError(w, r, pkghttpx.Internal("analysis failed to start", err))
			}
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, st)
	}
}
