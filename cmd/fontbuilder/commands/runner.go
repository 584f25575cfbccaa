package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"

	"git.home.luguber.info/inful/fontbuilder/internal/build"
	"git.home.luguber.info/inful/fontbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/fontbuilder/internal/errors"
	"git.home.luguber.info/inful/fontbuilder/internal/fonttool"
	"git.home.luguber.info/inful/fontbuilder/internal/logfields"
	"git.home.luguber.info/inful/fontbuilder/internal/manifest"
	"git.home.luguber.info/inful/fontbuilder/internal/metrics"
)

// ToolFlags override the tool section of the configuration.
type ToolFlags struct {
	Jar  string `help:"Path to CSFontBuilder.jar (overrides tool.jar)"`
	Java string `help:"Java executable (overrides tool.java)"`
}

// Apply writes non-empty flags into cfg. A relative --jar is taken relative
// to the working directory, not the config file.
func (f ToolFlags) Apply(cfg *config.Config) error {
	if f.Java != "" {
		cfg.Tool.Java = f.Java
	}
	if f.Jar != "" {
		abs, err := filepath.Abs(f.Jar)
		if err != nil {
			return ferrors.ValidationFailed("jar", err.Error())
		}
		cfg.Tool.Jar = abs
	}
	return nil
}

// BuildFlags override the build section of the configuration.
type BuildFlags struct {
	FailFast    bool   `name:"fail-fast" help:"Stop at the first font that fails"`
	ReportDir   string `name:"report-dir" help:"Write build-report.json and build-report.txt into this directory"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile after the build"`
}

// Apply writes set flags into cfg.
func (f BuildFlags) Apply(cfg *config.Config) {
	if f.FailFast {
		cfg.Build.FailFast = true
	}
	if f.ReportDir != "" {
		cfg.Build.ReportDir = f.ReportDir
	}
	if f.MetricsFile != "" {
		cfg.Build.MetricsFile = f.MetricsFile
	}
}

// NewTool builds the font tool from configuration.
func NewTool(cfg *config.Config) (fonttool.Tool, error) {
	tool, err := fonttool.NewJarTool(cfg)
	if err != nil {
		return nil, ferrors.ConfigInvalid(cfg.Path(), err)
	}
	return tool, nil
}

// RunBuild builds every font of the configured manifest into outputDir,
// then persists the report and metrics when configured and prints a summary.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, tool fonttool.Tool, outputDir string) error {
	m := manifest.FromConfig(cfg.Fonts)

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Build.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		recorder = prom
	}

	orch := build.NewOrchestrator(tool, m).
		WithRecorder(recorder).
		WithProgress(g.Stdout).
		WithFailFast(cfg.Build.FailFast).
		WithVerifyOutputs(cfg.Build.VerifyOutputsEnabled())

	report, runErr := orch.Run(ctx, outputDir)
	if report == nil {
		return runErr
	}

	if cfg.Build.ReportDir != "" {
		if err := report.Persist(cfg.Build.ReportDir); err != nil {
			slog.Warn("Failed to persist build report", logfields.Path(cfg.Build.ReportDir), logfields.Error(err))
		}
	}
	if prom != nil {
		if err := prom.WriteTextfile(cfg.Build.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.Build.MetricsFile), logfields.Error(err))
		}
	}

	printSummary(g.Stdout, report)
	return runErr
}

func printSummary(w io.Writer, report *build.Report) {
	data := pterm.TableData{{"#", "Font", "Size", "Output", "Status", "Exit", "Duration"}}
	for _, jr := range report.Jobs {
		exit := "-"
		if jr.Status == build.JobSucceeded || jr.Status == build.JobFailed {
			exit = strconv.Itoa(jr.ExitCode)
		}
		data = append(data, []string{
			strconv.Itoa(jr.Index + 1),
			jr.Job.Family,
			strconv.Itoa(jr.Job.Size),
			filepath.Base(jr.Job.Output),
			string(jr.Status),
			exit,
			jr.Duration.Round(time.Millisecond).String(),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		slog.Debug("Failed to render summary table", logfields.Error(err))
	} else {
		_, _ = fmt.Fprintln(w, table)
	}
	_, _ = fmt.Fprintln(w, report.Summary())
}
