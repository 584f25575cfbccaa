package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	ferrors "git.home.luguber.info/inful/fontbuilder/internal/errors"
	"git.home.luguber.info/inful/fontbuilder/internal/fonttool"
	"git.home.luguber.info/inful/fontbuilder/internal/manifest"
)

// PlanCmd implements the 'plan' command.
type PlanCmd struct {
	Output string `short:"o" name:"output" help:"Output directory the paths are resolved against" default:"<output>"`

	ToolFlags `embed:""`
}

func (p *PlanCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if err := p.ToolFlags.Apply(cfg); err != nil {
		return err
	}
	tool, err := fonttool.NewJarTool(cfg)
	if err != nil {
		return ferrors.ConfigInvalid(cfg.Path(), err)
	}

	m := manifest.FromConfig(cfg.Fonts)
	if err := m.Validate(); err != nil {
		return ferrors.Wrap(err, ferrors.CategoryValidation, ferrors.SeverityFatal, "invalid font manifest")
	}

	outputDir := p.Output
	if outputDir == "<output>" && cfg.Output.Directory != "" {
		outputDir = cfg.Output.Directory
	}

	jobs := m.Resolve(outputDir)
	data := pterm.TableData{{"#", "Label", "Tier", "Font", "Size", "Output"}}
	for i, job := range jobs {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			job.Label,
			job.Tier,
			job.Family,
			strconv.Itoa(job.Size),
			job.Output,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return ferrors.InternalError("failed to render plan", err)
	}

	_, _ = fmt.Fprintln(g.Stdout, table)
	_, _ = fmt.Fprintf(g.Stdout, "First command: %s %s\n", tool.Java, strings.Join(tool.Args(jobs[0]), " "))
	if err := tool.Check(); err != nil {
		_, _ = fmt.Fprintf(g.Stdout, "Warning: %v\n", err)
	}
	return nil
}
