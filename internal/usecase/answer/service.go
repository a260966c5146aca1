// Package answer runs the question pipeline: language, routing, retrieval,
// generation and localization.
package answer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/hit"
	"github.com/kailas-cloud/roadbook/internal/domain/station"
	"github.com/kailas-cloud/roadbook/internal/langdetect"
	"github.com/kailas-cloud/roadbook/internal/logger"
	"github.com/kailas-cloud/roadbook/internal/manualindex"
	"github.com/kailas-cloud/roadbook/internal/metrics"
	"github.com/kailas-cloud/roadbook/internal/router"
	"github.com/kailas-cloud/roadbook/internal/stationindex"
)

// Defaults.
const (
	DefaultAnswerTemperature float32 = 0.2
	DefaultDisplayCap                = 12
	DefaultVectorTopK                = 5
)

// Request is one question.
type Request struct {
	Question   string
	ForcedLang domain.Lang
	Debug      bool
}

// Response is the answer with its evidence.
type Response struct {
	Answer string
	Route  domain.Route
	Lang   domain.Lang
	Hits   []hit.Hit
	Debug  *DebugInfo
}

// DebugInfo explains how an answer was produced.
type DebugInfo struct {
	DetectedLang domain.Lang      `json:"detected_lang"`
	SearchQuery  string           `json:"search_query"`
	Decision     router.Decision  `json:"decision"`
	Pass         string           `json:"pass,omitempty"`
	FineIntent   bool             `json:"fine_intent,omitempty"`
	Filters      *station.Filters `json:"filters,omitempty"`
	StationPath  string           `json:"station_path,omitempty"`
}

// Config tunes the pipeline.
type Config struct {
	AnswerTemperature float32
	DisplayCap        int
	VectorTopK        int
}

// Deps are the collaborators of a Service. Embedder and Vectors are optional;
// without them the vector fallback is off.
type Deps struct {
	Router     *router.Router
	Retriever  *manualindex.Retriever
	Stations   *stationindex.Index
	Completer  Completer
	Translator Translator
	Embedder   Embedder
	Vectors    VectorRepository
}

// Service answers questions. Safe for concurrent use.
type Service struct {
	router     *router.Router
	retriever  *manualindex.Retriever
	stations   *stationindex.Index
	completer  Completer
	translator Translator
	embed      Embedder
	vectors    VectorRepository
	cfg        Config
}

// New creates a Service.
func New(deps Deps, cfg Config) *Service {
	if cfg.DisplayCap <= 0 {
		cfg.DisplayCap = DefaultDisplayCap
	}
	if cfg.VectorTopK <= 0 {
		cfg.VectorTopK = DefaultVectorTopK
	}
	return &Service{
		router:     deps.Router,
		retriever:  deps.Retriever,
		stations:   deps.Stations,
		completer:  deps.Completer,
		translator: deps.Translator,
		embed:      deps.Embedder,
		vectors:    deps.Vectors,
		cfg:        cfg,
	}
}

// Ask answers req. Blank questions fail with domain.ErrEmptyQuestion before any
// collaborator call; an unsupported forced language fails with domain.ErrInvalidLanguage.
func (s *Service) Ask(ctx context.Context, req Request) (Response, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Response{}, domain.ErrEmptyQuestion
	}
	if req.ForcedLang != "" && !req.ForcedLang.IsValid() {
		return Response{}, fmt.Errorf("%w: %q", domain.ErrInvalidLanguage, req.ForcedLang)
	}

	lang := langdetect.Detect(question, req.ForcedLang)

	searchQuery := question
	if lang != domain.LangES {
		q, err := s.translator.Translate(ctx, question, lang, domain.LangES)
		if err != nil {
			return Response{}, fmt.Errorf("translate question: %w", err)
		}
		if q = strings.TrimSpace(q); q != "" {
			searchQuery = q
		}
	}

	decision := s.router.Route(searchQuery)
	metrics.LanguageTotal.WithLabelValues(string(lang)).Inc()
	metrics.RouteTotal.WithLabelValues(string(decision.Route)).Inc()

	ctx = logger.With(ctx,
		zap.String("lang", string(lang)),
		zap.String("route", string(decision.Route)),
	)
	logger.FromContext(ctx).Debug("question routed",
		zap.String("search_query", searchQuery),
		zap.Int("fuel_hits", decision.FuelHits),
		zap.Int("manual_hits", decision.ManualHits),
		zap.Int("location_hits", decision.LocationHits),
	)

	dbg := &DebugInfo{DetectedLang: lang, SearchQuery: searchQuery, Decision: decision}

	var (
		resp Response
		err  error
	)
	switch decision.Route {
	case domain.RouteGasStations:
		resp = s.answerStations(searchQuery, lang, dbg)
	case domain.RouteAmbiguous:
		resp = Response{Answer: Clarification(lang)}
	default:
		resp, err = s.answerManual(ctx, question, searchQuery, lang, dbg)
		if err != nil {
			return Response{}, err
		}
	}

	resp.Route = decision.Route
	resp.Lang = lang
	if resp.Hits == nil {
		resp.Hits = []hit.Hit{}
	}
	if req.Debug {
		resp.Debug = dbg
	}
	return resp, nil
}
