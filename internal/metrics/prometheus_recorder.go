package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	fontDuration  *prom.HistogramVec
	fontResults   *prom.CounterVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	manifestSize  prom.Gauge
	lastBuild     prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.fontDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "fontbuilder",
		Name:      "font_duration_seconds",
		Help:      "Duration of individual font tool invocations",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"output"})
	pr.fontResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "fontbuilder",
		Name:      "font_results_total",
		Help:      "Font job results by outcome",
	}, []string{"result"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "fontbuilder",
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "fontbuilder",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.manifestSize = prom.NewGauge(prom.GaugeOpts{
		Namespace: "fontbuilder",
		Name:      "manifest_jobs",
		Help:      "Number of font jobs in the last build manifest",
	})
	pr.lastBuild = prom.NewGauge(prom.GaugeOpts{
		Namespace: "fontbuilder",
		Name:      "last_build_timestamp_seconds",
		Help:      "Unix time the last build finished",
	})
	reg.MustRegister(pr.fontDuration, pr.fontResults, pr.buildDuration, pr.buildOutcome, pr.manifestSize, pr.lastBuild)
	return pr
}

// Registry returns the registry the recorder writes to.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveFontDuration(output string, d time.Duration) {
	if p == nil || p.fontDuration == nil {
		return
	}
	p.fontDuration.WithLabelValues(output).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFontResult(result ResultLabel) {
	if p == nil || p.fontResults == nil {
		return
	}
	p.fontResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
	p.lastBuild.SetToCurrentTime()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetManifestSize(n int) {
	if p == nil || p.manifestSize == nil {
		return
	}
	p.manifestSize.Set(float64(n))
}

// WriteTextfile writes the recorder's registry in the Prometheus text format
// to path, atomically, for the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
