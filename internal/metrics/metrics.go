// Package metrics exposes Prometheus counters/histograms for the cascade
// resolver's hot paths: directory walks, config loads, cache hit/miss
// ratios for both the Cascade's per-directory memoization and the
// Enumerator's identity-keyed finalize cache, and extraction latency.
//
// This package never starts a server itself -- a library embedded in
// someone else's process must not bind a socket on its own. Handler returns
// the promhttp handler for the caller to mount wherever it mounts the rest
// of its metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DirectoriesWalked counts directories visited by the cascade ancestor
	// walk and the enumerator's recursive walk combined.
	DirectoriesWalked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cascade",
		Name:      "directories_walked_total",
		Help:      "Total number of directories visited while discovering configuration.",
	})

	// ConfigsLoaded counts successful config file loads by the loader:
	// per-directory configs, extends targets and --config files alike.
	ConfigsLoaded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cascade",
		Name:      "configs_loaded_total",
		Help:      "Total number of configuration files successfully loaded.",
	})

	// CacheHits counts hits against either the cascade's per-directory cache
	// or the enumerator's identity-keyed finalize cache, partitioned by
	// cache name.
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cascade",
		Name:      "cache_hits_total",
		Help:      "Total number of cache hits, by cache name.",
	}, []string{"cache"})

	// CacheMisses counts misses against the same caches as CacheHits.
	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cascade",
		Name:      "cache_misses_total",
		Help:      "Total number of cache misses, by cache name.",
	}, []string{"cache"})

	// FilesYielded counts files the enumerator has yielded to its caller.
	FilesYielded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cascade",
		Name:      "enumerator_files_yielded_total",
		Help:      "Total number of (path, config) pairs yielded by the enumerator.",
	})

	// ExtractDuration observes how long a single extractor.Extract call
	// takes.
	ExtractDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cascade",
		Name:      "extractor_extract_duration_seconds",
		Help:      "Time taken to reduce an ElementArray and path into a ResolvedConfig.",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		DirectoriesWalked,
		ConfigsLoaded,
		CacheHits,
		CacheMisses,
		FilesYielded,
		ExtractDuration,
	)
}

// Handler returns the Prometheus HTTP handler for these metrics. The caller
// is responsible for mounting it (e.g. `mux.Handle("/metrics",
// metrics.Handler())`); this package never listens on a socket itself.
func Handler() http.Handler {
	return promhttp.Handler()
}
