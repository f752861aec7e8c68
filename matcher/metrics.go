package matcher

import (
	"sync"

	"github.com/bsv-blockchain/utxomatch/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// prometheusMatch measures a full match including resolution
	prometheusMatch prometheus.Histogram

	// prometheusMatchResolved measures the slot assignment alone
	prometheusMatchResolved prometheus.Histogram

	// prometheusMatchInputs tracks how many utxos each match is given
	prometheusMatchInputs prometheus.Histogram

	// prometheusMatchedUtxos counts utxos bound to a slot
	prometheusMatchedUtxos prometheus.Counter

	// prometheusMatchErrors counts failed matches by error code
	prometheusMatchErrors *prometheus.CounterVec
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusMatch = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "utxomatch",
			Subsystem: "matcher",
			Name:      "match",
			Help:      "Histogram of matches including utxo resolution",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusMatchResolved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "utxomatch",
			Subsystem: "matcher",
			Name:      "match_resolved",
			Help:      "Histogram of slot assignment over resolved utxos",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusMatchInputs = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "utxomatch",
			Subsystem: "matcher",
			Name:      "match_inputs",
			Help:      "Number of utxos passed to a match",
			Buckets:   util.MetricsBucketsCount,
		},
	)

	prometheusMatchedUtxos = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "utxomatch",
			Subsystem: "matcher",
			Name:      "matched_utxos",
			Help:      "Number of utxos bound to a slot",
		},
	)

	prometheusMatchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "utxomatch",
			Subsystem: "matcher",
			Name:      "match_errors",
			Help:      "Number of failed matches by error code",
		},
		[]string{"code"},
	)
}
