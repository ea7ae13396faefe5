package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/simple-redis/internal/cli/output"
	"github.com/yndnr/simple-redis/internal/cli/repl"
)

// ReplCommand returns the repl command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start interactive mode",
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	s := GetSettings(c)
	client := newClient(s)
	defer client.Close()

	r := repl.New(client,
		repl.WithInput(c.App.Reader),
		repl.WithOutput(stdout(c)),
		repl.WithPrompt(client.Addr()+"> "),
		repl.WithFormatter(output.NewFormatter(s.Output)),
		repl.WithHistory(repl.NewHistory(s.CLI.HistoryFile)),
	)
	return r.Run(c.Context)
}
