package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/simple-redis/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the CLI configuration file",
				Action: configShow,
			},
			{
				Name:      "add",
				Usage:     "Save a named server",
				ArgsUsage: "NAME ADDRESS",
				Action:    configAdd,
			},
			{
				Name:      "use",
				Usage:     "Make a saved server the default",
				ArgsUsage: "NAME",
				Action:    configUse,
			},
			{
				Name:      "remove",
				Usage:     "Forget a saved server",
				ArgsUsage: "NAME",
				Action:    configRemove,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	s := GetSettings(c)
	w := stdout(c)

	fmt.Fprintf(w, "# %s\n", s.ConfigPath)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.CLI); err != nil {
		return err
	}
	return enc.Close()
}

func configAdd(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: config add NAME ADDRESS")
	}
	name, addr := c.Args().Get(0), c.Args().Get(1)

	s := GetSettings(c)
	s.CLI.Connections[name] = config.ConnectionConfig{Server: addr}
	if err := config.Save(s.CLI, s.ConfigPath); err != nil {
		return err
	}
	fmt.Fprintf(stdout(c), "Saved %s (%s)\n", name, addr)
	return nil
}

func configUse(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return errors.New("connection name required")
	}

	s := GetSettings(c)
	if _, ok := s.CLI.Connections[name]; !ok {
		return fmt.Errorf("unknown connection %q", name)
	}
	s.CLI.CurrentConnection = name
	if err := config.Save(s.CLI, s.ConfigPath); err != nil {
		return err
	}
	fmt.Fprintf(stdout(c), "Using %s (%s)\n", name, s.CLI.Server())
	return nil
}

func configRemove(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return errors.New("connection name required")
	}

	s := GetSettings(c)
	if _, ok := s.CLI.Connections[name]; !ok {
		return fmt.Errorf("unknown connection %q", name)
	}
	delete(s.CLI.Connections, name)
	if s.CLI.CurrentConnection == name {
		s.CLI.CurrentConnection = ""
	}
	if err := config.Save(s.CLI, s.ConfigPath); err != nil {
		return err
	}
	fmt.Fprintf(stdout(c), "Removed %s\n", name)
	return nil
}
