package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/fontbuilder/internal/manifest"
)

// Outcome is the typed enumeration of final build result states.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// JobStatus is the result state of one font job.
type JobStatus string

const (
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
	JobSkipped   JobStatus = "skipped"  // not run because an earlier job failed with fail-fast
	JobCanceled  JobStatus = "canceled" // not run, or killed, because the build was canceled
)

// JobResult records what happened to one manifest entry.
type JobResult struct {
	Index    int           `json:"index"`
	Job      manifest.Job  `json:"job"`
	Status   JobStatus     `json:"status"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`

	err error
}

// Err returns the error that failed the job, if any.
func (r JobResult) Err() error { return r.err }

// Report captures the results of one build.
type Report struct {
	SchemaVersion int         `json:"schema_version"`
	BuildID       string      `json:"build_id"`
	OutputDir     string      `json:"output_dir"`
	Start         time.Time   `json:"start"`
	End           time.Time   `json:"end"`
	Jobs          []JobResult `json:"jobs"`
	Outcome       Outcome     `json:"outcome"`
}

func newReport(id, outputDir string, m manifest.Manifest) *Report {
	r := &Report{
		SchemaVersion: 1,
		BuildID:       id,
		OutputDir:     outputDir,
		Start:         time.Now(),
		Jobs:          make([]JobResult, len(m)),
	}
	for i, job := range m {
		r.Jobs[i] = JobResult{Index: i, Job: job, Status: JobSkipped, ExitCode: -1}
	}
	return r
}

// Count returns the number of jobs with status s.
func (r *Report) Count(s JobStatus) int {
	n := 0
	for _, j := range r.Jobs {
		if j.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the results of failed jobs in manifest order.
func (r *Report) Failed() []JobResult {
	var out []JobResult
	for _, j := range r.Jobs {
		if j.Status == JobFailed {
			out = append(out, j)
		}
	}
	return out
}

// Duration is End-Start, or zero for an unfinished report.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

func (r *Report) finish(canceled bool) {
	r.End = time.Now()
	switch {
	case canceled:
		r.Outcome = OutcomeCanceled
	case r.Count(JobSucceeded) == len(r.Jobs):
		r.Outcome = OutcomeSuccess
	default:
		r.Outcome = OutcomeFailed
	}
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("build=%s fonts=%d succeeded=%d failed=%d skipped=%d canceled=%d duration=%s outcome=%s",
		r.BuildID, len(r.Jobs), r.Count(JobSucceeded), r.Count(JobFailed), r.Count(JobSkipped), r.Count(JobCanceled),
		r.Duration().Truncate(time.Millisecond), r.Outcome)
}

// Persist writes the report atomically into dir as build-report.json (machine
// readable) and build-report.txt (human summary).
func (r *Report) Persist(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("ensure report dir: %w", err)
	}
	jb, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, "build-report.json"), jb); err != nil {
		return err
	}
	return writeAtomic(filepath.Join(dir, "build-report.txt"), []byte(r.Summary()+"\n"))
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
