package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"git.home.luguber.info/inful/fontbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/fontbuilder/internal/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory for the generated config file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	if i.Output != "" {
		return RunInit(g.Stdout, filepath.Join(i.Output, DefaultConfigFile), i.Force)
	}
	return RunInit(g.Stdout, root.Config, i.Force)
}

func RunInit(out io.Writer, configPath string, force bool) error {
	_, _ = fmt.Fprintln(out, "Initializing fontbuilder configuration")
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return ferrors.New(ferrors.CategoryConfig, ferrors.SeverityFatal, err.Error())
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
