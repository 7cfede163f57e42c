package observability

import (
	"nick-lab/domain/nick"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type IMetrics interface {
	ObserveCommand(command string, outcome nick.MessageKey, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
}

type Metrics struct {
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// NewMetrics registers the nick-lab collectors on the given registerer.
// A nil registerer returns a no-op implementation.
func NewMetrics(registerer prometheus.Registerer) IMetrics {
	if registerer == nil {
		return NoopMetrics{}
	}
	factory := promauto.With(registerer)
	return &Metrics{
		commandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nicklab_commands_total",
			Help: "Number of handled commands by outcome",
		}, []string{"command", "outcome"}),

		commandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nicklab_command_duration_seconds",
			Help:    "Time spent handling a command",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"command"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "nicklab_nick_cache_hits_total",
			Help: "Group id lookups served from the cache",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "nicklab_nick_cache_misses_total",
			Help: "Group id lookups sent to the store",
		}),
	}
}

func (m *Metrics) ObserveCommand(command string, outcome nick.MessageKey, duration time.Duration) {
	m.commandsTotal.WithLabelValues(command, string(outcome)).Inc()
	m.commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func (m *Metrics) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *Metrics) IncCacheMisses() {
	m.cacheMisses.Inc()
}

// NewCacheEntriesGauge exposes the number of nick lookups held by the resolution cache.
func NewCacheEntriesGauge(registerer prometheus.Registerer, entries func() int64) prometheus.GaugeFunc {
	return promauto.With(registerer).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "nicklab_nick_cache_entries",
		Help: "Group id lookups currently cached",
	}, func() float64 {
		return float64(entries())
	})
}

type NoopMetrics struct{}

func (NoopMetrics) ObserveCommand(string, nick.MessageKey, time.Duration) {}
func (NoopMetrics) IncCacheHits()                                        {}
func (NoopMetrics) IncCacheMisses()                                      {}
