// Package fonttool runs the external CSFontBuilder jar that rasterizes a
// system font into a .csfont bitmap asset.
//
// The tool is invoked as
//
//	java -Djava.awt.headless=true -jar CSFontBuilder.jar --fontname <family> --fontsize <size> --output <path>
//
// and is expected to write exactly one file at <path>.
package fonttool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/fontbuilder/internal/config"
	"git.home.luguber.info/inful/fontbuilder/internal/logfields"
	"git.home.luguber.info/inful/fontbuilder/internal/manifest"
)

// maxCapturedOutput bounds the stdout/stderr kept on a Result.
const maxCapturedOutput = 4096

// Tool renders a single font job. Implementations block until the job is done.
type Tool interface {
	BuildFont(ctx context.Context, job manifest.Job) (*Result, error)
}

// Result is the outcome of one tool invocation. ExitCode is -1 when the
// process never started or was killed.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// JarTool invokes the font builder jar through a java executable.
type JarTool struct {
	Java     string
	Jar      string
	JVMArgs  []string
	Headless bool
	Timeout  time.Duration
}

// NewJarTool builds a JarTool from configuration. The jar path is resolved
// against the config file location.
func NewJarTool(cfg *config.Config) (*JarTool, error) {
	jar, err := cfg.ResolveJar()
	if err != nil {
		return nil, fmt.Errorf("resolve jar path: %w", err)
	}
	return &JarTool{
		Java:     cfg.Tool.Java,
		Jar:      jar,
		JVMArgs:  append([]string(nil), cfg.Tool.JVMArgs...),
		Headless: cfg.Tool.HeadlessEnabled(),
		Timeout:  cfg.Tool.TimeoutDuration(),
	}, nil
}

// Args returns the argument list passed to java for job.
func (t *JarTool) Args(job manifest.Job) []string {
	args := make([]string, 0, len(t.JVMArgs)+9)
	if t.Headless {
		args = append(args, "-Djava.awt.headless=true")
	}
	args = append(args, t.JVMArgs...)
	return append(args,
		"-jar", t.Jar,
		"--fontname", job.Family,
		"--fontsize", strconv.Itoa(job.Size),
		"--output", job.Output,
	)
}

// Check verifies that java resolves and the jar exists.
func (t *JarTool) Check() error {
	if _, err := exec.LookPath(t.Java); err != nil {
		return fmt.Errorf("%w: java executable %q: %w", ErrToolNotFound, t.Java, err)
	}
	if stat, err := os.Stat(t.Jar); err != nil {
		return fmt.Errorf("%w: jar %q: %w", ErrToolNotFound, t.Jar, err)
	} else if stat.IsDir() {
		return fmt.Errorf("%w: jar %q is a directory", ErrToolNotFound, t.Jar)
	}
	return nil
}

// BuildFont runs the tool for job and waits for it to exit.
func (t *JarTool) BuildFont(ctx context.Context, job manifest.Job) (*Result, error) {
	res := &Result{ExitCode: -1}
	if err := t.Check(); err != nil {
		return res, err
	}

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, t.Java, t.Args(job)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("Invoking font tool",
		slog.String("java", t.Java),
		slog.String("args", strings.Join(cmd.Args[1:], " ")))

	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)
	res.Stdout = tail(stdout.String())
	res.Stderr = tail(stderr.String())

	if res.Stdout != "" {
		slog.Debug("font tool stdout", logfields.Output(job.Output), slog.String("stdout", res.Stdout))
	}
	if res.Stderr != "" {
		slog.Warn("font tool stderr", logfields.Output(job.Output), slog.String("stderr", res.Stderr))
	}

	if err == nil {
		res.ExitCode = 0
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return res, fmt.Errorf("%w after %s: %w", ErrToolTimeout, t.Timeout, err)
	case ctx.Err() != nil:
		return res, ctx.Err()
	}

	output := res.Stderr
	if output == "" {
		output = res.Stdout
	}
	if output != "" {
		return res, fmt.Errorf("%w: %w: %s", ErrToolExecutionFailed, err, output)
	}
	return res, fmt.Errorf("%w: %w", ErrToolExecutionFailed, err)
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxCapturedOutput {
		return s
	}
	return "..." + s[len(s)-maxCapturedOutput:]
}

// Func adapts a plain function to the Tool interface.
type Func func(ctx context.Context, job manifest.Job) (*Result, error)

func (f Func) BuildFont(ctx context.Context, job manifest.Job) (*Result, error) {
	return f(ctx, job)
}
