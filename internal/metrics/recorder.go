package metrics

import "time"

// ResultLabel enumerates font job result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for build and font job metrics.
type Recorder interface {
	ObserveFontDuration(output string, d time.Duration)
	IncFontResult(result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string) // outcome: success|failed|canceled
	SetManifestSize(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveFontDuration(string, time.Duration) {}
func (NoopRecorder) IncFontResult(ResultLabel)                 {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)        {}
func (NoopRecorder) IncBuildOutcome(string)                    {}
func (NoopRecorder) SetManifestSize(int)                       {}
