package server

import (
	"net/http"

	"github.com/baiwei666/CineTrack/internal/routes"
)

type Server struct {
	deps routes.Deps
	cors []string
}

func New(d routes.Deps, corsAllowedOrigins []string) *Server {
	return &Server{deps: d, cors: corsAllowedOrigins}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	d := s.deps

	// Endpoints declared here for easy scanning
	mux.HandleFunc("GET /health", routes.Health(d))

	mux.HandleFunc("GET /records", routes.Records(d))
	mux.HandleFunc("POST /records", routes.CreateRecord(d))
	mux.HandleFunc("PUT /records/{id}", routes.UpdateRecord(d))
	mux.HandleFunc("DELETE /records/{id}", routes.DeleteRecord(d))
	mux.HandleFunc("GET /records/export", routes.Export(d))
	mux.HandleFunc("POST /records/import", routes.Import(d))

	mux.HandleFunc("GET /stats", routes.Stats(d))
	mux.HandleFunc("GET /duplicates", routes.Duplicates(d))

	mux.HandleFunc("GET /lookup/search", routes.LookupSearch(d))
	mux.HandleFunc("GET /lookup/details", routes.LookupDetails(d))
	mux.HandleFunc("GET /lookup/season", routes.LookupSeason(d))

	mux.HandleFunc("GET /analysis", routes.AnalysisStatus(d))
	mux.HandleFunc("POST /analysis", routes.RunAnalysis(d))

	mux.HandleFunc("GET /settings", routes.GetSettings(d))
	mux.HandleFunc("PUT /settings", routes.SaveSettings(d))

	return withCorrelationID(withLogging(withCORS(s.cors)(mux)))
}
