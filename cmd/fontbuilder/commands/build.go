package commands

import (
	"log/slog"

	ferrors "git.home.luguber.info/inful/fontbuilder/internal/errors"
	"git.home.luguber.info/inful/fontbuilder/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" name:"output" help:"Output directory; deleted and recreated before the build"`
	Dir    string `arg:"" optional:"" name:"dir" help:"Output directory (alternative to --output)"`

	ToolFlags  `embed:""`
	BuildFlags `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	outputDir := ResolveOutputDir(b.Output, b.Dir, cfg)
	if outputDir == "" {
		return ferrors.ValidationFailed("output", "an output directory is required (-o/--output or output.directory)")
	}
	if err := b.ToolFlags.Apply(cfg); err != nil {
		return err
	}
	b.BuildFlags.Apply(cfg)

	tool, err := NewTool(cfg)
	if err != nil {
		return err
	}
	slog.Debug("Resolved output directory", logfields.Path(outputDir))
	return RunBuild(g.Ctx, g, cfg, tool, outputDir)
}
