// Package web serves the portfolio JSON API over a local HTTP listener.
// It is the data surface for the presentation layer: enriched projects,
// stale-data flags, category summaries, and search. It never serves HTML.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/corey/folio/internal/app"
	"github.com/corey/folio/internal/domain/keywords"
	"github.com/corey/folio/internal/domain/search"
)

// Server serves the portfolio API over HTTP.
type Server struct {
	provider *app.Provider
	dict     *keywords.Dictionary
	listener net.Listener
	httpSrv  *http.Server
	port     int
	started  time.Time
	stopOnce sync.Once
}

// NewServer creates an HTTP server over the given provider.
func NewServer(provider *app.Provider, dict *keywords.Dictionary) *Server {
	return &Server{provider: provider, dict: dict}
}

// Start begins listening on 127.0.0.1:port. Port 0 binds an ephemeral port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	s.started = time.Now()

	s.httpSrv = &http.Server{Handler: s.Handler()}
	go s.httpSrv.Serve(ln)
	return nil
}

// Handler returns the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/profile", s.handleProfile)
	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("GET /api/projects/search", s.handleSearch)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/suggestions", s.handleSuggestions)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	return mux
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop(timeout time.Duration) {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
	})
}

// Port returns the bound port number.
func (s *Server) Port() int {
	return s.port
}

// URL returns the API base URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.provider.Snapshot()
	writeJSON(w, map[string]any{
		"status":   "ok",
		"uptime":   time.Since(s.started).Round(time.Second).String(),
		"projects": len(state.Repos),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	state := s.provider.Snapshot()
	writeJSON(w, map[string]any{
		"user":       state.User,
		"stale":      state.UserStale,
		"fetched_at": state.UserFetched,
	})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	state := s.provider.Snapshot()
	writeJSON(w, map[string]any{
		"projects":   state.Repos,
		"stale":      state.ReposStale,
		"fetched_at": state.ReposFetched,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	var cats []string
	if raw := r.URL.Query().Get("categories"); raw != "" {
		cats = strings.Split(raw, ",")
	}
	rank := rankerFor(r.URL.Query().Get("sort"))

	state := s.provider.Snapshot()
	results := search.Search(state.Repos, q, cats, s.dict, rank)
	writeJSON(w, map[string]any{
		"projects": results,
		"count":    len(results),
		"stale":    state.ReposStale,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "1" {
		writeJSON(w, search.AllCategories(s.dict))
		return
	}
	state := s.provider.Snapshot()
	writeJSON(w, search.ActiveCategories(state.Repos))
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	state := s.provider.Snapshot()
	writeJSON(w, search.Suggestions(state.Repos, r.URL.Query().Get("q")))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.provider.RefreshUser(r.Context())
	state := s.provider.RefreshRepos(r.Context())
	writeJSON(w, map[string]any{
		"projects":    len(state.Repos),
		"user_stale":  state.UserStale,
		"repos_stale": state.ReposStale,
	})
}

// rankerFor maps a sort query parameter to a comparator.
// Unknown values fall back to relevance.
func rankerFor(sortKey string) search.Ranker {
	switch sortKey {
	case "stars":
		return search.ByStars
	case "recency":
		return search.ByRecency
	case "name":
		return search.ByName
	default:
		return search.ByRelevance
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
