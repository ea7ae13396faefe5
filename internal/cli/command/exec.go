package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/simple-redis/internal/cli/output"
	"github.com/yndnr/simple-redis/internal/resp"
)

// ExecCommand returns the exec command.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"do"},
		Usage:     "Send one command and print the reply",
		ArgsUsage: "COMMAND [ARGS...]",
		Action:    execAction,
	}
}

func execAction(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) == 0 {
		return errors.New("command required")
	}

	s := GetSettings(c)
	client := newClient(s)
	defer client.Close()

	reply, err := client.Do(c.Context, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", client.Addr(), err)
	}

	if err := output.NewFormatter(s.Output).Format(stdout(c), reply); err != nil {
		return err
	}
	switch reply.(type) {
	case resp.SimpleError, resp.BulkError:
		return ErrReply
	}
	return nil
}
