package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/baiwei666/CineTrack/internal/store"
	pkghttpx "github.com/baiwei666/CineTrack/pkg/httpx"
)

// maxImportBytes bounds the import payload size.
const maxImportBytes = 16 << 20

// Export registers GET /records/export: the full list, pretty-printed,
// served as a download.
func Export(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := d.Store.Export()
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to export records", err))
			return
		}
		name := fmt.Sprintf("cinetrack_backup_%s.json", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// Import registers POST /records/import: additive merge, existing ids win.
func Import(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("failed to read import payload", err))
			return
		}
		added, err := d.Store.Import(payload)
		if err != nil {
			if errors.Is(err, store.ErrBadImport) {
				pkghttpx.WriteError(w, r, pkghttpx.Validation("file does not look like a record backup", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to import records", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"imported": added,
			"total":    len(d.Store.Records()),
		})
	}
}
