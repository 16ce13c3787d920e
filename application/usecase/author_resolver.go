package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/opbridge/op-rc-bridge/application/port"
	"github.com/opbridge/op-rc-bridge/pkg/logger"
)

const resolveTimeout = 5 * time.Second

// AuthorResolver turns the user href from a webhook event into a display
// name, caching successful lookups for the process lifetime. Resolution
// never fails: every failure class degrades to the fallback label, and
// failed lookups are not cached so a later event can retry.
type AuthorResolver struct {
	client   port.OpenProjectClient // nil when no API key is configured
	fallback string
	logger   *slog.Logger

	mu    sync.RWMutex
	cache map[string]string

	warnOnce sync.Once
}

func NewAuthorResolver(client port.OpenProjectClient, fallback string, logger *slog.Logger) *AuthorResolver {
	return &AuthorResolver{
		client:   client,
		fallback: fallback,
		logger:   logger,
		cache:    make(map[string]string),
	}
}

func (r *AuthorResolver) Resolve(ctx context.Context, href string) string {
	if href == "" {
		return r.fallback
	}

	r.mu.RLock()
	name, ok := r.cache[href]
	r.mu.RUnlock()
	if ok {
		authorCacheHits.Inc()
		return name
	}
	authorCacheMisses.Inc()

	if r.client == nil {
		r.warnOnce.Do(func() {
			r.logger.Warn("OP_API_KEY not configured, author names fall back to the default label")
		})
		return r.fallback
	}

	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	name, err := r.client.FetchUserName(ctx, href)
	if err != nil {
		r.logger.Warn("Author lookup failed",
			logger.ApplicationFields("author_lookup_failed",
				slog.String("user_href", href),
				slog.String("error", err.Error()),
			),
		)
		authorLookupErr.Inc()
		return r.fallback
	}
	if name == "" {
		r.logger.Warn("Author record has no name",
			logger.ApplicationFields("author_lookup_failed",
				slog.String("user_href", href),
				slog.String("error", "empty name field"),
			),
		)
		authorLookupErr.Inc()
		return r.fallback
	}

	r.mu.Lock()
	r.cache[href] = name
	r.mu.Unlock()

	authorLookupOK.Inc()
	return name
}
