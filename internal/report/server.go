package report

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"careerwatch/internal/extract"
)

// Server serves the charts straight from the data directory, re-reading the
// dataset files on each request so a running watcher's appends show up
// without a restart.
type Server struct {
	router  *chi.Mux
	dataDir string
}

func NewServer(dataDir string) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		dataDir: dataDir,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/stats", s.handleStats)
	s.router.Get("/", s.handleTotalJobs)
	s.router.Get("/sources/{name}", s.handleSource)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleTotalJobs(w http.ResponseWriter, r *http.Request) {
	series, err := Load(s.dataDir)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := TotalJobsChart(series).Render(w); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	series, err := Load(s.dataDir)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, sr := range series {
		if sr.Source == name {
			if err := SourcePage(sr).Render(w); err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
	}
	respondError(w, http.StatusNotFound, "unknown source: "+name)
}

type sourceStats struct {
	Source       string `json:"source"`
	Snapshots    int    `json:"snapshots"`
	Areas        int    `json:"areas"`
	FirstCapture string `json:"first_capture,omitempty"`
	LastCapture  string `json:"last_capture,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	series, err := Load(s.dataDir)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats := make([]sourceStats, 0, len(series))
	for _, sr := range series {
		st := sourceStats{
			Source:    sr.Source,
			Snapshots: len(sr.Snapshots),
			Areas:     len(areaLabels(sr)),
		}
		if len(sr.Snapshots) > 0 {
			st.FirstCapture = sr.Snapshots[0].Time.Time().Format(extract.TimeLayout)
			st.LastCapture = sr.Snapshots[len(sr.Snapshots)-1].Time.Time().Format(extract.TimeLayout)
		}
		stats = append(stats, st)
	}
	respondJSON(w, http.StatusOK, stats)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
