// Package server exposes the author page over HTTP: the rendered page, a
// trigger that runs the pipeline and JSON endpoints over the session.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/brogergvhs/biblioscrape/internal/pipeline"
	"github.com/brogergvhs/biblioscrape/internal/render"
	"github.com/brogergvhs/biblioscrape/internal/session"
	"github.com/brogergvhs/biblioscrape/internal/ui"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Runner is the part of the pipeline the server drives.
type Runner interface {
	Run(ctx context.Context) (*session.Snapshot, error)
	State() pipeline.State
	LastError() error
}

type Server struct {
	router  *chi.Mux
	runner  Runner
	session *session.Session
	status  *StatusBoard
	stats   *ui.RunStats
	log     pipeline.Logger
	title   string
	source  string

	running sync.Mutex
}

type Params struct {
	Runner  Runner
	Session *session.Session
	Status  *StatusBoard
	Stats   *ui.RunStats
	Log     pipeline.Logger
	Title   string
	Source  string
}

func New(p Params) *Server {
	if p.Stats == nil {
		p.Stats = &ui.RunStats{}
	}
	if p.Status == nil {
		p.Status = NewStatusBoard()
	}

	s := &Server{
		router:  chi.NewRouter(),
		runner:  p.Runner,
		session: p.Session,
		status:  p.Status,
		stats:   p.Stats,
		log:     p.Log,
		title:   p.Title,
		source:  p.Source,
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)

	s.router.Get("/", s.handleIndex)
	s.router.Post("/scrape", s.handleScrape)
	s.router.Get("/api/authors", s.handleAuthors)
	s.router.Get("/api/stats", s.handleStats)
	s.router.Get("/api/status", s.handleStatus)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		if s.log != nil {
			s.log.Debugf("%s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
		}
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	st := s.status.view()
	page := render.Page{
		Title:          s.title,
		Source:         s.source,
		Interactive:    true,
		TriggerLabel:   st.TriggerLabel,
		TriggerEnabled: st.TriggerEnabled,
		Status:         st.Message,
		StatusLevel:    st.Level.String(),
	}

	if snap := s.session.Current(); snap != nil {
		page.Loaded = true
		page.Stats = snap.Stats
		page.Total = snap.Total()
		page.Authors = snap.Authors
		page.ScrapedAt = snap.ScrapedAt
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WritePage(w, page); err != nil && s.log != nil {
		s.log.Errorf("Page render failed: %v", err)
	}
}

type scrapeResponse struct {
	State   string `json:"state"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Trigger string `json:"trigger"`
	Authors int    `json:"authors,omitempty"`
	Total   int    `json:"total,omitempty"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	if !s.running.TryLock() {
		writeJSON(w, http.StatusConflict, scrapeResponse{
			State:   s.runner.State().String(),
			Message: "a scrape is already running",
			Trigger: pipeline.LabelLoading,
		})
		return
	}
	defer s.running.Unlock()

	snap, err := s.runner.Run(r.Context())
	s.stats.Record(authorCount(snap), err)

	if err != nil {
		writeJSON(w, http.StatusBadGateway, scrapeResponse{
			State:   pipeline.Failed.String(),
			Kind:    pipeline.Classify(err).String(),
			Message: pipeline.Describe(err),
			Trigger: pipeline.LabelRetry,
		})
		return
	}

	writeJSON(w, http.StatusOK, scrapeResponse{
		State:   pipeline.Success.String(),
		Message: pipeline.MsgLoaded,
		Trigger: pipeline.LabelReload,
		Authors: len(snap.Authors),
		Total:   snap.Total(),
	})
}

func (s *Server) handleAuthors(w http.ResponseWriter, r *http.Request) {
	authors := s.session.Filter(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, render.NewAuthorsDocument(authors))
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	snap := s.session.Current()
	if snap == nil {
		writeJSON(w, http.StatusOK, render.NewStatsDocument(nil))
		return
	}
	writeJSON(w, http.StatusOK, render.NewStatsDocument(snap.Stats))
}

type statusResponse struct {
	State          string `json:"state"`
	TriggerLabel   string `json:"trigger"`
	TriggerEnabled bool   `json:"trigger_enabled"`
	Message        string `json:"message"`
	Level          string `json:"level"`
	Error          string `json:"error,omitempty"`
	Runs           int64  `json:"runs"`
	Failures       int64  `json:"failures"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	st := s.status.view()
	resp := statusResponse{
		State:          s.runner.State().String(),
		TriggerLabel:   st.TriggerLabel,
		TriggerEnabled: st.TriggerEnabled,
		Message:        st.Message,
		Level:          st.Level.String(),
		Runs:           s.stats.Runs.Load(),
		Failures:       s.stats.Failures.Load(),
	}
	if err := s.runner.LastError(); err != nil {
		resp.Error = err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

func authorCount(snap *session.Snapshot) int {
	if snap == nil {
		return 0
	}
	return len(snap.Authors)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
