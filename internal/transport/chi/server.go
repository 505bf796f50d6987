// Package chi serves the book search API over HTTP.
package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	healthuc "github.com/kailas-cloud/booksearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/booksearch/internal/usecase/search"
)

// errorResponse is the uniform error body. Message never contains
// database error text.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeSearchFailed = "search_failed"
	codeUnauthorized = "unauthorized"
)

// Server holds the HTTP handlers for the search API.
type Server struct {
	search *searchuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{search: search, health: health, logger: logger}
}

// Routes mounts all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/author/{author_name}", s.SearchAuthors)
	r.Get("/books/{book_name}", s.SearchBooks)
	r.Get("/healthz", s.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// SearchAuthors handles GET /author/{author_name}.
func (s *Server) SearchAuthors(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "author_name")
	date := optionalQuery(r, "publish_by_date")

	rows, err := s.search.ByAuthor(r.Context(), term, date)
	if err != nil {
		s.searchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// SearchBooks handles GET /books/{book_name}.
func (s *Server) SearchBooks(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "book_name")
	date := optionalQuery(r, "publish_by_date")

	rows, err := s.search.ByTitle(r.Context(), term, date)
	if err != nil {
		s.searchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// searchError logs the underlying cause and answers with the uniform
// generic body. Whatever the database said stays out of the response.
func (s *Server) searchError(w http.ResponseWriter, err error) {
	s.logger.Error("search failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeSearchFailed, "search failed")
}

// optionalQuery returns the query parameter value, or nil when the
// parameter is absent from the URL entirely.
func optionalQuery(r *http.Request, name string) *string {
	q := r.URL.Query()
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	return &v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
