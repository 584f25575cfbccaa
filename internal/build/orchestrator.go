package build

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	ferrors "git.home.luguber.info/inful/fontbuilder/internal/errors"
	"git.home.luguber.info/inful/fontbuilder/internal/fonttool"
	"git.home.luguber.info/inful/fontbuilder/internal/logfields"
	"git.home.luguber.info/inful/fontbuilder/internal/manifest"
	"git.home.luguber.info/inful/fontbuilder/internal/metrics"
	"git.home.luguber.info/inful/fontbuilder/internal/workspace"
)

// ErrOutputMissing marks a job whose tool exited cleanly without writing its file.
var ErrOutputMissing = stdErrors.New("font tool reported success but output file is missing")

const bannerRule = "-----------------------------------------"

// Orchestrator executes a manifest against a font tool.
type Orchestrator struct {
	tool          fonttool.Tool
	manifest      manifest.Manifest
	recorder      metrics.Recorder
	out           io.Writer
	failFast      bool
	verifyOutputs bool
	newID         func() string
}

// NewOrchestrator returns an orchestrator for m that prints progress to stdout.
func NewOrchestrator(tool fonttool.Tool, m manifest.Manifest) *Orchestrator {
	return &Orchestrator{
		tool:          tool,
		manifest:      m,
		recorder:      metrics.NoopRecorder{},
		out:           os.Stdout,
		verifyOutputs: true,
		newID:         uuid.NewString,
	}
}

// WithRecorder injects a metrics recorder.
func (o *Orchestrator) WithRecorder(r metrics.Recorder) *Orchestrator {
	if r != nil {
		o.recorder = r
	}
	return o
}

// WithProgress redirects the console progress lines.
func (o *Orchestrator) WithProgress(w io.Writer) *Orchestrator {
	if w == nil {
		w = io.Discard
	}
	o.out = w
	return o
}

// WithFailFast stops the build at the first failed job.
func (o *Orchestrator) WithFailFast(enabled bool) *Orchestrator {
	o.failFast = enabled
	return o
}

// WithVerifyOutputs controls whether a missing output file fails a job.
func (o *Orchestrator) WithVerifyOutputs(enabled bool) *Orchestrator {
	o.verifyOutputs = enabled
	return o
}

// Manifest returns the jobs this orchestrator runs.
func (o *Orchestrator) Manifest() manifest.Manifest { return o.manifest }

// Run builds every font of the manifest into outputDir. The directory is
// deleted and recreated first; its parent must exist. The returned report is
// non-nil once the manifest has validated, even when an error is returned.
func (o *Orchestrator) Run(ctx context.Context, outputDir string) (*Report, error) {
	if err := o.manifest.Validate(); err != nil {
		return nil, ferrors.Wrap(err, ferrors.CategoryValidation, ferrors.SeverityFatal, "invalid font manifest")
	}

	jobs := o.manifest.Resolve(outputDir)
	report := newReport(o.newID(), outputDir, jobs)
	log := slog.Default().With(logfields.BuildID(report.BuildID))
	o.recorder.SetManifestSize(len(jobs))

	o.banner()

	dir := workspace.NewOutputDir(outputDir)
	if err := dir.Prepare(); err != nil {
		report.finish(false)
		o.recordOutcome(report)
		return report, ferrors.OutputDirError(outputDir, err)
	}

	log.Info("Starting font build", logfields.Path(outputDir), slog.Int("fonts", len(jobs)))

	canceled := false
	for i, job := range jobs {
		if ctx.Err() != nil {
			canceled = true
			markRemaining(report, i, JobCanceled)
			break
		}

		res := o.BuildFont(ctx, job)
		res.Index = i
		report.Jobs[i] = res

		if res.Status == JobCanceled {
			canceled = true
			markRemaining(report, i+1, JobCanceled)
			break
		}
		if res.Status == JobFailed && o.failFast {
			log.Warn("Stopping after first failed font", logfields.Output(job.Output))
			break
		}
	}

	_, _ = fmt.Fprintln(o.out, " ")
	report.finish(canceled)
	o.recordOutcome(report)

	log.Info("Font build finished",
		logfields.Outcome(string(report.Outcome)),
		slog.Int("succeeded", report.Count(JobSucceeded)),
		slog.Int("failed", report.Count(JobFailed)),
		logfields.Duration(report.Duration()))

	return report, o.resultError(ctx, report)
}

// BuildFont runs the tool for a single resolved job and classifies the result.
func (o *Orchestrator) BuildFont(ctx context.Context, job manifest.Job) JobResult {
	_, _ = fmt.Fprintf(o.out, "Building font '%s' of size '%d' to '%s'\n", job.Family, job.Size, job.Output)

	start := time.Now()
	res, err := o.tool.BuildFont(ctx, job)
	if res == nil {
		res = &fonttool.Result{ExitCode: -1}
	}
	if err == nil && o.verifyOutputs {
		if stat, statErr := os.Stat(job.Output); statErr != nil || !stat.Mode().IsRegular() {
			err = fmt.Errorf("%w: %s", ErrOutputMissing, job.Output)
		}
	}

	jr := JobResult{
		Job:      job,
		Status:   JobSucceeded,
		ExitCode: res.ExitCode,
		Duration: time.Since(start),
		Stderr:   res.Stderr,
		err:      err,
	}
	if err != nil {
		jr.Error = err.Error()
		jr.Status = JobFailed
		if ctx.Err() != nil && stdErrors.Is(err, ctx.Err()) {
			jr.Status = JobCanceled
		}
	}

	o.recorder.ObserveFontDuration(filepath.Base(job.Output), jr.Duration)
	attrs := []any{
		logfields.Family(job.Family),
		logfields.Size(job.Size),
		logfields.Output(job.Output),
		logfields.ExitCode(jr.ExitCode),
		logfields.Duration(jr.Duration),
	}
	switch jr.Status {
	case JobSucceeded:
		o.recorder.IncFontResult(metrics.ResultSuccess)
		slog.Debug("Font built", attrs...)
	case JobCanceled:
		o.recorder.IncFontResult(metrics.ResultCanceled)
		slog.Warn("Font build canceled", attrs...)
	default:
		o.recorder.IncFontResult(metrics.ResultFailed)
		_, _ = fmt.Fprintf(o.out, "Failed to build font '%s' of size '%d': %v\n", job.Family, job.Size, err)
		slog.Error("Font build failed", append(attrs, logfields.Error(err))...)
	}
	return jr
}

func (o *Orchestrator) banner() {
	_, _ = fmt.Fprintln(o.out, bannerRule)
	_, _ = fmt.Fprintln(o.out, "           Building Fonts")
	_, _ = fmt.Fprintln(o.out, bannerRule)
}

func (o *Orchestrator) recordOutcome(r *Report) {
	o.recorder.ObserveBuildDuration(r.Duration())
	o.recorder.IncBuildOutcome(string(r.Outcome))
}

// resultError turns a finished report into the error Run returns.
func (o *Orchestrator) resultError(ctx context.Context, r *Report) error {
	if r.Outcome == OutcomeCanceled {
		return ferrors.BuildCanceled(ctx.Err())
	}
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	errs := make([]error, 0, len(failed))
	allToolMissing := true
	for _, f := range failed {
		errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(f.Job.Output), f.err))
		if !stdErrors.Is(f.err, fonttool.ErrToolNotFound) {
			allToolMissing = false
		}
	}
	joined := stdErrors.Join(errs...)
	if allToolMissing {
		return ferrors.ToolUnavailable(joined).
			WithContext("failed", len(failed)).
			WithContext("total", len(r.Jobs))
	}
	return ferrors.JobsFailed(len(failed), len(r.Jobs), joined)
}

func markRemaining(r *Report, from int, status JobStatus) {
	for i := from; i < len(r.Jobs); i++ {
		r.Jobs[i].Status = status
	}
}
