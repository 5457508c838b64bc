// Package chi exposes the HTTP API: ingestion, search, lookup, health, metrics.
package chi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/clovermead/semdex/internal/domain"
	documentuc "github.com/clovermead/semdex/internal/usecase/document"
	healthuc "github.com/clovermead/semdex/internal/usecase/health"
	searchuc "github.com/clovermead/semdex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers over the use case services.
type Server struct {
	documents     *documentuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	documents *documentuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		documents: documents,
		search:    search,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMissingInput, http.StatusBadRequest, codeMissingInput),
		sentinelHandler(domain.ErrInvalidID, http.StatusBadRequest, codeInvalidID),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrInvalidEmbeddingShape, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrEmbeddingGenerationFailed, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrQueryEmbeddingFailed, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrPersistenceFailed, http.StatusServiceUnavailable, codeStoreUnavailable),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/ingest", s.Ingest)
	r.Get("/search", s.Search)
	r.Get("/documents/{id}", s.GetDocument)
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
}

type ingestRequest struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type ingestResponse struct {
	ID              string `json:"id"`
	EmbeddingLength int    `json:"embedding_length"`
}

// Ingest handles POST /ingest.
func (s *Server) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.documents.Ingest(r.Context(), req.Text, req.Metadata)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ingestResponse{
		ID:              result.ID,
		EmbeddingLength: result.EmbeddingLength,
	})
}

type searchResult struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
	Score    float64        `json:"score"`
	Warning  string         `json:"warning,omitempty"`
}

type searchPagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type searchResponse struct {
	Results    []searchResult   `json:"results"`
	Pagination searchPagination `json:"pagination"`
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := parseIntParam(r, "page")
	limit := parseIntParam(r, "limit")

	resultPage, err := s.search.Search(r.Context(), query, page, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchPageToResponse(resultPage))
}

type documentResponse struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// GetDocument handles GET /documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := s.documents.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, documentResponse{
		ID:       doc.ID,
		Text:     doc.Text,
		Metadata: doc.Metadata,
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// parseIntParam reads a positive integer query parameter.
// Absent or non-numeric values return 0, letting the service apply defaults.
func parseIntParam(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

func searchPageToResponse(page searchuc.ResultPage) searchResponse {
	results := make([]searchResult, len(page.Results))
	for i, r := range page.Results {
		results[i] = searchResult{
			ID:       r.ID,
			Text:     r.Text,
			Metadata: r.Metadata,
			Score:    r.Score,
			Warning:  r.Warning,
		}
	}
	return searchResponse{
		Results: results,
		Pagination: searchPagination{
			Total: page.Pagination.Total,
			Page:  page.Pagination.Page,
			Limit: page.Pagination.Limit,
			Pages: page.Pagination.Pages,
		},
	}
}
