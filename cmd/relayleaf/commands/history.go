package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/prx-network/relayleaf/internal/printer"
	"github.com/prx-network/relayleaf/internal/storage/sqlite"
)

type HistoryCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	output string
}

// NewHistoryCommand returns the history command.
func NewHistoryCommand(rootCmd *RootCommand, app *kingpin.Application) *HistoryCommand {
	c := &HistoryCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("history", "List recorded statistics snapshots.")
	c.Cmd.Flag("output", "Output format.").Short('o').Default("table").EnumVar(&c.output, "table", "json")

	return c
}

func (c HistoryCommand) Name() string { return c.Cmd.FullCommand() }

func (c HistoryCommand) Run(ctx context.Context) error {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	records, err := repo.ListSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("could not list snapshots: %w", err)
	}

	var p printer.Printer
	if c.output == "json" {
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	} else {
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	return p.PrintHistory(records)
}
