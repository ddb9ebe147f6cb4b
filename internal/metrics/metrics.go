package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors the monitor and the status API update.
type Metrics struct {
	CyclesTotal       *prometheus.CounterVec
	FetchDuration     prometheus.Histogram
	OutliersReplaced  *prometheus.CounterVec
	MissingChannels   *prometheus.CounterVec
	BufferLength      *prometheus.GaugeVec
	Confidence        prometheus.Gauge
	EmotionScore      *prometheus.GaugeVec
	PredictionsTotal  *prometheus.CounterVec
	SinkErrorsTotal   prometheus.Counter
	HTTPRequestsTotal *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CyclesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emotion_cycles_total",
			Help: "Monitor cycles by outcome",
		}, []string{"outcome"}),

		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "emotion_fetch_duration_seconds",
			Help:    "Duration of sample source fetches",
			Buckets: prometheus.DefBuckets,
		}),

		OutliersReplaced: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emotion_outliers_replaced_total",
			Help: "Raw samples replaced by the outlier filter",
		}, []string{"channel"}),

		MissingChannels: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emotion_missing_channel_total",
			Help: "Fetched payloads that did not carry a channel",
		}, []string{"channel"}),

		BufferLength: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "emotion_buffer_length",
			Help: "Current length of each raw and processed buffer",
		}, []string{"channel"}),

		Confidence: factory.NewGauge(prometheus.GaugeOpts{
			Name: "emotion_confidence",
			Help: "Score of the most recent predicted emotion",
		}),

		EmotionScore: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "emotion_score",
			Help: "Most recent score per emotion",
		}, []string{"emotion"}),

		PredictionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emotion_predictions_total",
			Help: "Emitted predictions by emotion",
		}, []string{"emotion"}),

		SinkErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "emotion_sink_errors_total",
			Help: "Results that failed to publish to a sink",
		}),

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}
