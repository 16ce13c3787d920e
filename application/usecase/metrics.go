package usecase

import "github.com/VictoriaMetrics/metrics"

var (
	webhookIgnoredCounter = metrics.NewCounter(`webhooks_processed_total{outcome="ignored"}`)
	webhookSuccessCounter = metrics.NewCounter(`webhooks_processed_total{outcome="success"}`)
	webhookErrorCounter   = metrics.NewCounter(`webhooks_processed_total{outcome="error"}`)

	authorCacheHits   = metrics.NewCounter(`author_cache_total{result="hit"}`)
	authorCacheMisses = metrics.NewCounter(`author_cache_total{result="miss"}`)
	authorLookupOK    = metrics.NewCounter(`author_lookups_total{status="ok"}`)
	authorLookupErr   = metrics.NewCounter(`author_lookups_total{status="error"}`)

	deliveryOK       = metrics.NewCounter(`deliveries_total{status="ok"}`)
	deliveryErr      = metrics.NewCounter(`deliveries_total{status="error"}`)
	deliveryFallback = metrics.NewCounter(`deliveries_total{status="fallback"}`)
)
