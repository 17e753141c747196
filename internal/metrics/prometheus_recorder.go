package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "elem2keitaro"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	fetchDuration      *prom.HistogramVec
	fetchResults       *prom.CounterVec
	conversionDuration prom.Histogram
	conversions        *prom.CounterVec
	unknownKinds       *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		fetchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "asset_fetch_duration_seconds",
			Help:      "Duration of individual image fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"outcome"}),
		fetchResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "asset_fetch_results_total",
			Help:      "Image fetch results by outcome",
		}, []string{"outcome"}),
		conversionDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Total conversion duration",
			Buckets:   prom.DefBuckets,
		}),
		conversions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversions by outcome",
		}, []string{"outcome"}),
		unknownKinds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_kinds_total",
			Help:      "Unrecognized node and widget kinds rendered with a fallback",
		}, []string{"category", "kind"}),
	}
	reg.MustRegister(pr.fetchDuration, pr.fetchResults, pr.conversionDuration, pr.conversions, pr.unknownKinds)
	return pr
}

func (p *PrometheusRecorder) ObserveFetchDuration(d time.Duration, outcome FetchOutcome) {
	if p == nil || p.fetchDuration == nil {
		return
	}
	p.fetchDuration.WithLabelValues(string(outcome)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFetchResult(outcome FetchOutcome) {
	if p == nil || p.fetchResults == nil {
		return
	}
	p.fetchResults.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveConversionDuration(d time.Duration) {
	if p == nil || p.conversionDuration == nil {
		return
	}
	p.conversionDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncConversion(outcome ConversionOutcome) {
	if p == nil || p.conversions == nil {
		return
	}
	p.conversions.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncUnknownKind(category, kind string) {
	if p == nil || p.unknownKinds == nil {
		return
	}
	p.unknownKinds.WithLabelValues(category, kind).Inc()
}

var _ Recorder = (*PrometheusRecorder)(nil)
