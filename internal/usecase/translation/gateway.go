// Package translation memoizes language model translations with a TTL.
package translation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/logger"
	"github.com/kailas-cloud/roadbook/internal/metrics"
)

// DefaultTTL is how long a translation stays cached.
const DefaultTTL = 6 * time.Hour

type cacheKey struct {
	target domain.Lang
	text   string
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// Gateway translates text through a Completer and caches results per
// (target language, source text). Safe for concurrent use.
type Gateway struct {
	completer   Completer
	ttl         time.Duration
	now         Clock
	temperature float32

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
	group singleflight.Group
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(g *Gateway) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

// WithClock injects the time source.
func WithClock(now Clock) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// WithTemperature sets the sampling temperature of translation requests.
func WithTemperature(t float32) Option {
	return func(g *Gateway) { g.temperature = t }
}

// New creates a Gateway.
func New(completer Completer, opts ...Option) *Gateway {
	g := &Gateway{
		completer: completer,
		ttl:       DefaultTTL,
		now:       time.Now,
		cache:     make(map[cacheKey]cacheEntry),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Translate returns text in target. Blank text yields "". When source equals
// target the trimmed text is returned without a call or a cache write. An empty
// collaborator answer degrades to the input, which is cached; errors are not.
func (g *Gateway) Translate(ctx context.Context, text string, source, target domain.Lang) (string, error) {
	input := strings.TrimSpace(text)
	if input == "" {
		return "", nil
	}
	if source == target {
		return input, nil
	}

	key := cacheKey{target: target, text: input}
	if v, ok := g.lookup(key); ok {
		metrics.TranslationCacheTotal.WithLabelValues("hit").Inc()
		return v, nil
	}

	// The flight outlives any single caller; it keeps values such as the logger.
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := g.group.Do(string(target)+"\x00"+input, func() (any, error) {
		if v, ok := g.lookup(key); ok {
			return v, nil
		}
		metrics.TranslationCacheTotal.WithLabelValues("miss").Inc()

		out, err := g.completer.Complete(flightCtx, g.request(input, source, target))
		if err != nil {
			return "", fmt.Errorf("translate to %s: %w", target, err)
		}
		out = strings.TrimSpace(out)
		if out == "" {
			logger.FromContext(flightCtx).Warn("empty translation, keeping input",
				zap.String("target", string(target)))
			out = input
		}
		g.store(key, out)
		return out, nil
	})
	if err != nil {
		return "", err //nolint:wrapcheck // wrapped inside the flight
	}
	if shared {
		metrics.TranslationCacheTotal.WithLabelValues("shared").Inc()
	}
	return v.(string), nil
}

// Len returns the number of cached entries, expired ones included.
func (g *Gateway) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cache)
}

func (g *Gateway) lookup(key cacheKey) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.cache[key]
	if !ok {
		return "", false
	}
	if !g.now().Before(e.expiresAt) {
		delete(g.cache, key)
		return "", false
	}
	return e.value, true
}

func (g *Gateway) store(key cacheKey, value string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cache[key] = cacheEntry{value: value, expiresAt: g.now().Add(g.ttl)}
}

func (g *Gateway) request(input string, source, target domain.Lang) domain.CompletionRequest {
	var system string
	if target == domain.LangES {
		system = strings.Join([]string{
			"You are a strict technical translator.",
			"Translate the TEXT into Spanish.",
			"Output ONLY the translation: no quotes, no notes, no explanation.",
			"Keep acronyms, codes and numbers unchanged (DTCO, UK, CMR, AS24, IDS, etc).",
			"Keep any words that are already in Spanish.",
			"Return a short search query, not an explanation.",
		}, "\n")
	} else {
		system = strings.Join([]string{
			"You are a strict professional translator.",
			fmt.Sprintf("Translate the following text from %s into %s.", source.EnglishName(), target.EnglishName()),
			"Rules:",
			"- Output ONLY the translation. Do not repeat the original. Do not explain.",
			"- Do not add or remove information.",
			"- Keep formatting, line breaks, numbering and bullet structure.",
			"- Keep acronyms and codes unchanged (CMR, UK, AS24, IDS, DTCO, etc).",
			"- Keep the closing references block verbatim: module and section titles and numbers stay unchanged.",
		}, "\n")
	}
	return domain.CompletionRequest{
		Op:          "translate",
		System:      system,
		User:        input,
		Temperature: g.temperature,
	}
}
