package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SizingResultSized   = "sized"
	SizingResultZero    = "zero"
	SizingResultInvalid = "invalid"
)

var (
	// Bar data metrics
	barsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bartool_bars_rejected_total",
			Help: "Total number of bar records dropped while decoding",
		},
		[]string{"source"},
	)

	barsStoredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bartool_bars_stored_total",
			Help: "Total number of bars written to a store",
		},
		[]string{"store"},
	)

	barsLoadedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bartool_bars_loaded_total",
			Help: "Total number of bars read back from a store",
		},
		[]string{"store"},
	)

	// Sizing metrics
	sizingCalculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bartool_sizing_calculations_total",
			Help: "Total number of position size calculations by outcome",
		},
		[]string{"sizer", "result"},
	)
)

func init() {
	prometheus.MustRegister(barsRejectedTotal)
	prometheus.MustRegister(barsStoredTotal)
	prometheus.MustRegister(barsLoadedTotal)
	prometheus.MustRegister(sizingCalculationsTotal)
}

// Handler serves the registered metrics in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordBarRejected(source string) {
	barsRejectedTotal.WithLabelValues(source).Inc()
}

func RecordBarsStored(store string, count int) {
	barsStoredTotal.WithLabelValues(store).Add(float64(count))
}

func RecordBarLoaded(store string) {
	barsLoadedTotal.WithLabelValues(store).Inc()
}

func RecordSizing(sizer, result string) {
	sizingCalculationsTotal.WithLabelValues(sizer, result).Inc()
}
