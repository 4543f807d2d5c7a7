package server

import (
	"time"

	queue "github.com/XJIeI5/flatcalc/internal/datastructs"
	"github.com/XJIeI5/flatcalc/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	evaluations    *prometheus.CounterVec
	duration       prometheus.Histogram
	historyDropped prometheus.Counter
	historySaved   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, history *queue.Queue[storage.Record]) *metrics {
	m := &metrics{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calc_evaluations_total",
			Help: "Evaluated expressions by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "calc_evaluation_duration_seconds",
			Help:    "Time spent in the evaluation pipeline.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		historyDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calc_history_dropped_total",
			Help: "History records dropped because the queue was full.",
		}),
		historySaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calc_history_saved_total",
			Help: "History records written to the store.",
		}),
	}
	queueLength := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "calc_history_queue_length",
		Help: "History records waiting for the worker.",
	}, func() float64 { return float64(history.Len()) })
	queueCapacity := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "calc_history_queue_capacity",
		Help: "Size of the history queue.",
	}, func() float64 { return float64(history.Cap()) })

	reg.MustRegister(m.evaluations, m.duration, m.historyDropped, m.historySaved, queueLength, queueCapacity)
	return m
}

// observe skips the histogram for requests that never reached the pipeline.
func (m *metrics) observe(outcome string, took time.Duration) {
	m.evaluations.WithLabelValues(outcome).Inc()
	if took > 0 {
		m.duration.Observe(took.Seconds())
	}
}
