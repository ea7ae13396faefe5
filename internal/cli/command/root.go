package command

import (
	"errors"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/simple-redis/internal/cli/config"
	"github.com/yndnr/simple-redis/internal/cli/connection"
	"github.com/yndnr/simple-redis/internal/cli/output"
	"github.com/yndnr/simple-redis/internal/infra/buildinfo"
)

// ErrReply is returned when the server answered with an error reply. The
// reply has already been printed.
var ErrReply = errors.New("server replied with an error")

const metaSettings = "settings"

// Settings is the resolved configuration of one invocation: the CLI config
// file, then SIMPLE_REDIS_* variables, then flags.
type Settings struct {
	ConfigPath string
	CLI        *config.CLIConfig
	Server     string
	Admin      string
	Output     output.Format
	Timeout    time.Duration
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "simple-redis-cli",
		Usage:     "simple-redis command-line client",
		UsageText: "simple-redis-cli [global options] [COMMAND [ARGS...]]",
		Version:   buildinfo.String(),
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			ExecCommand(),
			ReplCommand(),
			StatusCommand(),
			BenchCommand(),
			ConfigCommand(),
		},
		Before: loadSettings,
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return replAction(c)
			}
			return execAction(c)
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file (default ~/.simple-redis/cli.yaml)",
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address, env " + config.EnvServer,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: text, table, json, yaml, env " + config.EnvOutput,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "dial and request timeout, env " + config.EnvTimeout,
		},
		&cli.StringFlag{
			Name:  "admin",
			Usage: "admin endpoint address",
			Value: connection.DefaultAdminServer,
		},
	}
}

// loadSettings resolves Settings once per run and stores them in the app
// metadata.
func loadSettings(c *cli.Context) error {
	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := make(map[string]string)
	for _, name := range []string{"server", "output"} {
		if c.IsSet(name) {
			flags[name] = c.String(name)
		}
	}
	if c.IsSet("timeout") {
		flags["timeout"] = c.Duration("timeout").String()
	}

	merged, err := config.Merge(cfg, config.Environ(), flags)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(merged.DefaultOutput)
	if err != nil {
		return err
	}

	if path == "" {
		path = config.DefaultConfigPath()
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metaSettings] = &Settings{
		ConfigPath: path,
		CLI:        cfg,
		Server:     merged.Server(),
		Admin:      c.String("admin"),
		Output:     format,
		Timeout:    merged.Timeout,
	}
	return nil
}

// GetSettings retrieves the resolved settings from context.
func GetSettings(c *cli.Context) *Settings {
	if s, ok := c.App.Metadata[metaSettings].(*Settings); ok {
		return s
	}
	return &Settings{
		CLI:     config.Default(),
		Server:  connection.DefaultServer,
		Admin:   connection.DefaultAdminServer,
		Output:  output.FormatText,
		Timeout: config.Default().Timeout,
	}
}

// newClient creates a RESP client from the settings.
func newClient(s *Settings) *connection.Client {
	return connection.New(s.Server, connection.WithTimeout(s.Timeout))
}

func stdout(c *cli.Context) io.Writer {
	return c.App.Writer
}
