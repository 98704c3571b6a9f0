package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/prx-network/relayleaf/internal/printer"
)

type VersionCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewVersionCommand returns the version command.
func NewVersionCommand(rootCmd *RootCommand, app *kingpin.Application) *VersionCommand {
	c := &VersionCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("version", "Print the relay engine version.")

	return c
}

func (c VersionCommand) Name() string { return c.Cmd.FullCommand() }

func (c VersionCommand) Run(ctx context.Context) error {
	eng, err := newEngineFromConfig(*c.rootCmd)
	if err != nil {
		return fmt.Errorf("could not create engine: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(eng.Version())
}
