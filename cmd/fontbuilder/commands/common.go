package commands

import (
	"context"
	stdErrors "errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/fontbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/fontbuilder/internal/errors"
	"git.home.luguber.info/inful/fontbuilder/internal/version"
)

// DefaultConfigFile is looked up in the working directory when -c is not given.
const DefaultConfigFile = "fonts.yaml"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
	// Ctx is canceled on SIGINT/SIGTERM.
	Ctx context.Context
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Font configuration file path" default:"fonts.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Recreate the output directory and build every font of the manifest"`
	Plan  PlanCmd  `cmd:"" help:"Show the font jobs a build would run without running them"`
	Init  InitCmd  `cmd:"" help:"Write an example font configuration file"`
	Watch WatchCmd `cmd:"" help:"Rebuild the fonts whenever the configuration file changes"`

	stderr io.Writer
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(c.errWriter(), &slog.HandlerOptions{Level: level})))
	return nil
}

func (c *CLI) errWriter() io.Writer {
	if c.stderr == nil {
		return os.Stderr
	}
	return c.stderr
}

// configRequired reports whether -c named a file explicitly; only then is a
// missing file an error.
func (c *CLI) configRequired() bool {
	return c.Config != "" && c.Config != DefaultConfigFile
}

// LoadConfig loads the configuration named by -c and reconfigures logging
// from its logging section. -v always wins over the configured level.
func (c *CLI) LoadConfig() (*config.Config, error) {
	path := c.Config
	if path == "" {
		path = DefaultConfigFile
	}
	cfg, err := config.LoadOrDefault(path, c.configRequired())
	if err != nil {
		if stdErrors.Is(err, config.ErrNotFound) {
			return nil, ferrors.ConfigNotFound(path)
		}
		return nil, ferrors.ConfigInvalid(path, err)
	}
	c.applyLogging(cfg)
	return cfg, nil
}

func (c *CLI) applyLogging(cfg *config.Config) {
	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if config.NormalizeLogFormat(string(cfg.Logging.Format)) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(c.errWriter(), opts)
	} else {
		handler = slog.NewTextHandler(c.errWriter(), opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ResolveOutputDir determines the output directory.
// Priority: --output flag > positional argument > config output.directory.
func ResolveOutputDir(flag, positional string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	if positional != "" {
		return positional
	}
	if cfg != nil {
		return cfg.Output.Directory
	}
	return ""
}

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cli := &CLI{stderr: stderr}
	parser, err := kong.New(cli,
		kong.Name("fontbuilder"),
		kong.Description("Builds bitmap font assets (.csfont) with the CSFontBuilder tool."),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		return handleError(stderr, false, ferrors.InternalError("failed to build command line parser", err))
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return handleError(stderr, false, ferrors.New(ferrors.CategoryValidation, ferrors.SeverityFatal, err.Error()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g := &Global{Logger: slog.Default(), Stdout: stdout, Stderr: stderr, Ctx: ctx}
	if err := kctx.Run(g, cli); err != nil {
		return handleError(stderr, cli.Verbose, err)
	}
	return 0
}

func handleError(stderr io.Writer, verbose bool, err error) int {
	code := 0
	adapter := ferrors.NewCLIErrorAdapter(verbose, slog.Default()).
		WithStderr(stderr).
		WithExit(func(c int) { code = c })
	adapter.HandleError(err)
	return code
}
