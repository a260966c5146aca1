// Package embcache caches query embeddings in the vector store's key space.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/roadbook/internal/db"
	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/logger"
)

const keyPrefix = "roadbook:emb_cache:"

// DefaultTTL bounds how long a cached query embedding is reused.
const DefaultTTL = 24 * time.Hour

type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Options tune a CachedEmbedder. Model scopes the keys, so switching embedding
// models never serves vectors of the old one. Lookups counts "hit" and "miss".
type Options struct {
	Model   string
	TTL     time.Duration
	Lookups *prometheus.CounterVec
}

// CachedEmbedder is a domain.Embedder backed by a TTL key-value cache.
// The cache is best effort: its failures are logged, never returned.
type CachedEmbedder struct {
	inner domain.Embedder
	kv    store
	opts  Options
	group singleflight.Group
}

// New wraps inner with a cache kept in kv. A non-positive opts.TTL falls back
// to DefaultTTL.
func New(inner domain.Embedder, kv store, opts Options) *CachedEmbedder {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &CachedEmbedder{inner: inner, kv: kv, opts: opts}
}

// Embed serves text from the cache, or embeds it once for all concurrent
// callers and remembers the vector. Hits report zero tokens.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := c.key(text)
	if vec, ok := c.lookup(ctx, key); ok {
		c.count("hit")
		return domain.EmbeddingResult{Embedding: vec}, nil
	}
	c.count("miss")

	v, err, _ := c.group.Do(key, func() (any, error) {
		res, err := c.inner.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		c.remember(ctx, key, res.Embedding)
		return res, nil
	})
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed query: %w", err)
	}
	return v.(domain.EmbeddingResult), nil
}

func (c *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(c.opts.Model + "\x00" + text))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (c *CachedEmbedder) lookup(ctx context.Context, key string) ([]float32, bool) {
	raw, err := c.kv.Get(ctx, key)
	if errors.Is(err, db.ErrKeyNotFound) || (err == nil && len(raw) == 0) {
		return nil, false
	}
	if err == nil {
		var vec []float32
		if vec, err = db.DecodeVector(raw); err == nil {
			return vec, true
		}
	}
	logger.FromContext(ctx).Warn("embedding cache read failed", zap.String("key", key), zap.Error(err))
	return nil, false
}

func (c *CachedEmbedder) remember(ctx context.Context, key string, vec []float32) {
	if len(vec) == 0 {
		return
	}
	if err := c.kv.SetWithTTL(ctx, key, db.EncodeVector(vec), c.opts.TTL); err != nil {
		logger.FromContext(ctx).Warn("embedding cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedEmbedder) count(result string) {
	if c.opts.Lookups != nil {
		c.opts.Lookups.WithLabelValues(result).Inc()
	}
}
