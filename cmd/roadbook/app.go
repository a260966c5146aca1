package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/roadbook/internal/config"
	"github.com/kailas-cloud/roadbook/internal/dataset"
	"github.com/kailas-cloud/roadbook/internal/db"
	dbRedis "github.com/kailas-cloud/roadbook/internal/db/redis"
	"github.com/kailas-cloud/roadbook/internal/lexicon"
	logpkg "github.com/kailas-cloud/roadbook/internal/logger"
	"github.com/kailas-cloud/roadbook/internal/manualindex"
	"github.com/kailas-cloud/roadbook/internal/metrics"
	"github.com/kailas-cloud/roadbook/internal/repository/embcache"
	vectorrepo "github.com/kailas-cloud/roadbook/internal/repository/vector"
	"github.com/kailas-cloud/roadbook/internal/router"
	"github.com/kailas-cloud/roadbook/internal/stationindex"
	openaiTransport "github.com/kailas-cloud/roadbook/internal/transport/openai"
	"github.com/kailas-cloud/roadbook/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/roadbook/internal/usecase/health"
	"github.com/kailas-cloud/roadbook/internal/usecase/translation"
)

// app is the composition root shared by every command.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	corpus dataset.Corpus
	llm    *openaiTransport.Client

	store   db.Store // nil unless the vector index is enabled
	vectors *vectorrepo.Repo

	answers *answer.Service
	health  *healthuc.Service
}

func newApp(ctx context.Context, env string) (*app, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	metrics.RegisterPipelineMetrics()

	corpus, err := dataset.Load(cfg.Data.ManualPath, cfg.Data.StationsPath)
	if err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}
	lex, err := lexicon.Load(cfg.Data.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	manualIdx, err := manualindex.Build(corpus.Modules, lex, cfg.Retrieval.ManualWeights)
	if err != nil {
		return nil, fmt.Errorf("build manual index: %w", err)
	}
	stationIdx, err := stationindex.New(corpus.Stations, lex, cfg.Retrieval.StationWeights)
	if err != nil {
		return nil, fmt.Errorf("build station index: %w", err)
	}
	logger.Info("Knowledge indices built",
		zap.Int("modules", len(corpus.Modules)),
		zap.Int("stations", stationIdx.Len()),
	)

	llm := openaiTransport.New(&openaiTransport.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		ChatModel:      cfg.LLM.ChatModel,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		Dimensions:     cfg.Vector.Dimensions,
		Timeout:        cfg.LLMTimeout(),
		Logger:         logger,
	})

	a := &app{cfg: cfg, logger: logger, corpus: corpus, llm: llm}

	deps := answer.Deps{
		Router: router.New(lex),
		Retriever: manualindex.NewRetriever(manualIdx, lex,
			manualindex.WithTopK(cfg.Retrieval.TopK),
			manualindex.WithWeakThreshold(cfg.Retrieval.WeakThreshold),
		),
		Stations:   stationIdx,
		Completer:  llm,
		Translator: translation.New(llm, translation.WithTTL(cfg.TranslationTTL())),
	}

	// Pass nil interfaces, not typed nil pointers, when the vector index is off.
	var vectorPinger healthuc.VectorPinger
	if cfg.Vector.Enabled {
		if err := a.openVectorIndex(ctx); err != nil {
			return nil, err
		}
		deps.Embedder = embcache.New(llm, a.store, embcache.Options{
			Model:   cfg.LLM.EmbeddingModel,
			TTL:     time.Duration(cfg.Vector.EmbedCacheTTLSec) * time.Second,
			Lookups: metrics.EmbeddingCacheTotal,
		})
		deps.Vectors = a.vectors
		vectorPinger = a.store
	}

	a.answers = answer.New(deps, answer.Config{
		AnswerTemperature: cfg.Retrieval.AnswerTemperature,
		DisplayCap:        cfg.Retrieval.DisplayCap,
		VectorTopK:        cfg.Vector.TopK,
	})
	a.health = healthuc.New(llm, vectorPinger)
	return a, nil
}

func (a *app) openVectorIndex(ctx context.Context) error {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    a.cfg.Vector.Addrs,
		Username: a.cfg.Vector.Username,
		Password: a.cfg.Vector.Password,
		DB:       a.cfg.Vector.DB,
	})
	if err != nil {
		return fmt.Errorf("create vector store: %w", err)
	}

	timeout := time.Duration(a.cfg.Vector.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return fmt.Errorf("vector store not ready: %w", err)
	}
	a.logger.Info("Connected to vector store", zap.Strings("addrs", a.cfg.Vector.Addrs))

	a.store = store
	a.vectors = vectorrepo.New(store, a.cfg.Vector.Dimensions)
	return nil
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}
