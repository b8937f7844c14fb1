// Package chi contains the HTTP API server mounted on a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/casavec/propmatch/internal/domain"
	"github.com/casavec/propmatch/internal/domain/match"
	"github.com/casavec/propmatch/internal/domain/property"
	logpkg "github.com/casavec/propmatch/internal/logger"
	healthuc "github.com/casavec/propmatch/internal/usecase/health"
	ingestuc "github.com/casavec/propmatch/internal/usecase/ingest"
	matcheruc "github.com/casavec/propmatch/internal/usecase/matcher"
	searchuc "github.com/casavec/propmatch/internal/usecase/search"
)

const maxBatchSize = 500

// ErrorCode is the machine-readable error identifier in error responses.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodePropertyNotFound ErrorCode = "property_not_found"
	CodeEmbeddingError   ErrorCode = "embedding_provider_error"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FiltersRequest carries the hard constraints of a search or match call.
type FiltersRequest struct {
	Location     string  `json:"location,omitempty"`
	MinPrice     float64 `json:"min_price,omitempty"`
	MaxPrice     float64 `json:"max_price,omitempty"`
	PropertyType string  `json:"property_type,omitempty"`
	Bedrooms     int     `json:"bedrooms,omitempty"`
	Bathrooms    int     `json:"bathrooms,omitempty"`
}

func (f FiltersRequest) toDomain() property.Filters {
	return property.Filters{
		Location:     f.Location,
		MinPrice:     f.MinPrice,
		MaxPrice:     f.MaxPrice,
		PropertyType: f.PropertyType,
		Bedrooms:     f.Bedrooms,
		Bathrooms:    f.Bathrooms,
	}
}

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Query   string         `json:"query,omitempty"`
	Filters FiltersRequest `json:"filters,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}

// MatchRequest is the body of POST /v1/match.
type MatchRequest struct {
	Filters    FiltersRequest `json:"filters,omitempty"`
	MustHave   []string       `json:"must_have,omitempty"`
	NiceToHave []string       `json:"nice_to_have,omitempty"`
	Limit      int            `json:"limit,omitempty"`
}

// IngestRequest is the body of POST /v1/embeddings/process. Each item is
// one raw listing payload in either supported schema shape.
type IngestRequest struct {
	Properties []map[string]any `json:"properties"`
}

// ResultItem is one scored property in a search or match response.
type ResultItem struct {
	PropertyID        string          `json:"property_id"`
	Similarity        float64         `json:"similarity"`
	Property          property.Record `json:"property"`
	MustHaveMatches   []string        `json:"must_have_matches,omitempty"`
	NiceToHaveMatches []string        `json:"nice_to_have_matches,omitempty"`
	CompositeScore    *float64        `json:"composite_score,omitempty"`
}

// ResultListResponse is the body of search and match responses.
type ResultListResponse struct {
	Results []ResultItem `json:"results"`
	Total   int          `json:"total"`
}

// Server holds the HTTP handlers for the API surface.
type Server struct {
	search  *searchuc.Service
	matcher *matcheruc.Service
	ingest  *ingestuc.Service
	health  *healthuc.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	matcher *matcheruc.Service,
	ingest *ingestuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:  search,
		matcher: matcher,
		ingest:  ingest,
		health:  health,
		logger:  logger,
	}
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), req.Query, req.Filters.toDomain(), req.Limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toResultList(results, false))
}

// Match handles POST /v1/match. A failing matcher never propagates to the
// client: the caller gets an empty result list and the error is logged.
func (s *Server) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results, err := s.matcher.ByRequirements(
		r.Context(), req.Filters.toDomain(), req.MustHave, req.NiceToHave, req.Limit,
	)
	if err != nil {
		logpkg.FromContext(r.Context(), s.logger).Error(
			"Requirement match failed, returning empty result set", zap.Error(err))
		writeJSON(w, http.StatusOK, ResultListResponse{Results: []ResultItem{}})
		return
	}

	writeJSON(w, http.StatusOK, toResultList(results, true))
}

// ProcessEmbeddings handles POST /v1/embeddings/process.
func (s *Server) ProcessEmbeddings(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Properties) == 0 || len(req.Properties) > maxBatchSize {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			"properties count must be between 1 and 500")
		return
	}

	summary, err := s.ingest.Process(r.Context(), req.Properties)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func toResultList(results []match.Result, withRequirements bool) ResultListResponse {
	items := make([]ResultItem, 0, len(results))
	for _, res := range results {
		item := ResultItem{
			PropertyID: res.PropertyID(),
			Similarity: res.Similarity(),
			Property:   res.Record(),
		}
		if withRequirements {
			item.MustHaveMatches = res.MustHaveMatches()
			item.NiceToHaveMatches = res.NiceToHaveMatches()
			score := res.CompositeScore()
			item.CompositeScore = &score
		}
		items = append(items, item)
	}
	return ResultListResponse{Results: items, Total: len(items)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrPropertyNotFound,
		domain.ErrVectorDimMismatch,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, CodeValidationFailed, msg)
	case errors.Is(err, domain.ErrVectorDimMismatch):
		writeError(w, http.StatusBadRequest, CodeValidationFailed, msg)
	case errors.Is(err, domain.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, CodePropertyNotFound, msg)
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		writeError(w, http.StatusBadGateway, CodeEmbeddingError, msg)
	default:
		log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
	}
}
