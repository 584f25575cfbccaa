package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.SetManifestSize(6)
	pr.ObserveFontDuration("ArialSmall.low.csfont", 150*time.Millisecond)
	pr.IncFontResult(ResultSuccess)
	pr.IncFontResult(ResultSuccess)
	pr.IncFontResult(ResultFailed)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome("failed")

	if got := testutil.ToFloat64(pr.fontResults.WithLabelValues("success")); got != 2 {
		t.Errorf("success results = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pr.manifestSize); got != 6 {
		t.Errorf("manifest size = %v, want 6", got)
	}
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome("success")

	path := filepath.Join(t.TempDir(), "fontbuilder.prom")
	if err := pr.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `fontbuilder_build_outcomes_total{outcome="success"} 1`) {
		t.Errorf("textfile missing build outcome:\n%s", data)
	}
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveFontDuration("x", time.Second)
	r.IncFontResult(ResultCanceled)
	r.ObserveBuildDuration(time.Second)
	r.IncBuildOutcome("success")
	r.SetManifestSize(1)
}
