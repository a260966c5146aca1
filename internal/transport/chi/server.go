// Package chi exposes the question pipeline over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/logger"
	"github.com/kailas-cloud/roadbook/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/roadbook/internal/usecase/health"
)

// maxBodyBytes caps POST /api/v1/ask payloads.
const maxBodyBytes = 64 << 10

// Asker answers one question.
type Asker interface {
	Ask(ctx context.Context, req answer.Request) (answer.Response, error)
}

// HealthReporter aggregates collaborator checks.
type HealthReporter interface {
	Check(ctx context.Context) healthuc.Report
}

// Server holds the HTTP handlers.
type Server struct {
	asker  Asker
	health HealthReporter
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(asker Asker, health HealthReporter, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{asker: asker, health: health, logger: logger}
}

// AskJSON handles POST /api/v1/ask.
func (s *Server) AskJSON(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	s.ask(w, r, req)
}

// AskQuery handles GET /api/v1/ask?question=&lang=&debug=.
func (s *Server) AskQuery(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "question", q, &req.Question); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid parameter question: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "lang", q, &req.Lang); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid parameter lang: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "debug", q, &req.Debug); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid parameter debug: "+err.Error())
		return
	}
	s.ask(w, r, req)
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request, req AskRequest) {
	resp, err := s.asker.Ask(r.Context(), answer.Request{
		Question:   req.Question,
		ForcedLang: domain.Lang(req.Lang),
		Debug:      req.Debug,
	})
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, askResponseFrom(resp))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	log := logger.FromContext(ctx)

	var ce *domain.CollaboratorError
	switch {
	case errors.Is(err, domain.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, codeValidationFailed, domain.ErrEmptyQuestion.Error())
	case errors.Is(err, domain.ErrInvalidLanguage):
		writeError(w, http.StatusBadRequest, codeInvalidLanguage, err.Error())
	case errors.As(err, &ce):
		log.Error("collaborator error", zap.String("op", ce.Op), zap.Int("upstream_status", ce.Status), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Code:           codeCollaborator,
			Message:        ce.Message,
			UpstreamStatus: ce.Status,
		})
	case errors.Is(err, domain.ErrVectorIndex):
		log.Error("vector index error", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeVectorIndex, domain.ErrVectorIndex.Error())
	default:
		log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}
