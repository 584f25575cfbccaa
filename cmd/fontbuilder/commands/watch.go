package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/fontbuilder/internal/errors"
	"git.home.luguber.info/inful/fontbuilder/internal/logfields"
	"git.home.luguber.info/inful/fontbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" name:"output" help:"Output directory; recreated on every rebuild"`
	Debounce time.Duration `help:"Quiet period before a change triggers a rebuild" default:"500ms"`

	ToolFlags  `embed:""`
	BuildFlags `embed:""`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	outputDir := ResolveOutputDir(w.Output, "", cfg)
	if outputDir == "" {
		return ferrors.ValidationFailed("output", "an output directory is required (-o/--output or output.directory)")
	}

	// A missing default config is still watched so that 'init' triggers a build.
	paths := []string{root.Config}
	if err := w.ToolFlags.Apply(cfg); err != nil {
		return err
	}
	jar, err := cfg.ResolveJar()
	if err != nil {
		return ferrors.ConfigInvalid(cfg.Path(), err)
	}
	paths = append(paths, jar)

	watcher, err := watch.New(w.Debounce, paths...)
	if err != nil {
		return ferrors.Wrap(err, ferrors.CategoryRuntime, ferrors.SeverityFatal, "failed to start watcher")
	}

	w.rebuild(g.Ctx, g, root, outputDir)
	_, _ = fmt.Fprintf(g.Stdout, "Watching %d file(s) for changes; press Ctrl+C to stop\n", len(paths))

	return watcher.Run(g.Ctx, func(ctx context.Context) {
		slog.Info("Change detected, rebuilding fonts", logfields.Path(outputDir))
		w.rebuild(ctx, g, root, outputDir)
	})
}

// rebuild reloads the configuration and runs one build. Failures are logged;
// watching continues.
func (w *WatchCmd) rebuild(ctx context.Context, g *Global, root *CLI, outputDir string) {
	cfg, err := root.LoadConfig()
	if err != nil {
		slog.Error("Failed to reload configuration", logfields.Error(err))
		return
	}
	if err := w.ToolFlags.Apply(cfg); err != nil {
		slog.Error("Invalid tool flags", logfields.Error(err))
		return
	}
	w.BuildFlags.Apply(cfg)

	tool, err := NewTool(cfg)
	if err != nil {
		slog.Error("Failed to configure font tool", logfields.Error(err))
		return
	}
	if err := RunBuild(ctx, g, cfg, tool, outputDir); err != nil {
		slog.Error("Font build failed", logfields.Error(err))
	}
}
