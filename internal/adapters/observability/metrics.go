package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"silaf_hotel/internal/domain"
)

var (
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "silaf", Name: "store_operations_total", Help: "Snapshot store operations."},
		[]string{"store", "entity", "op", "status"},
	)
	SyncOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "silaf", Name: "sync_operations_total", Help: "Logical operations per store leg."},
		[]string{"op", "store", "status"},
	)
	MirrorDivergence = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "silaf", Name: "mirror_divergence_total", Help: "Mirror writes failed or skipped after an authoritative success."},
		[]string{"op"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "silaf", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

// Serve starts the optional metrics listener. An empty addr disables it,
// which is the default for a local console session.
func Serve(addr string) {
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(StoreOps, SyncOps, MirrorDivergence, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveStore(store, entity, op string, err error) {
	StoreOps.WithLabelValues(store, entity, op, StatusLabel(err)).Inc()
}

func ObserveSync(op, store string, err error) {
	SyncOps.WithLabelValues(op, store, StatusLabel(err)).Inc()
}

func ObserveDivergence(op string) {
	MirrorDivergence.WithLabelValues(op).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func StatusLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
