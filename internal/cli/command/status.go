package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/simple-redis/internal/cli/connection"
	"github.com/yndnr/simple-redis/internal/cli/output"
	"github.com/yndnr/simple-redis/internal/resp"
)

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show server health and version from the admin endpoint",
		Action: statusAction,
	}
}

func statusAction(c *cli.Context) error {
	s := GetSettings(c)
	admin := connection.NewAdminClient(s.Admin, s.Timeout)

	health, err := admin.Health(c.Context)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	version, err := admin.Version(c.Context)
	if err != nil {
		return fmt.Errorf("version request failed: %w", err)
	}

	m := resp.NewMap(
		resp.MapEntry{Key: "admin", Value: resp.BulkString(admin.BaseURL())},
		resp.MapEntry{Key: "status", Value: resp.BulkString(health.Status)},
		resp.MapEntry{Key: "keys", Value: resp.Integer(health.Keys)},
		resp.MapEntry{Key: "connections", Value: resp.Integer(health.Connections)},
		resp.MapEntry{Key: "version", Value: resp.BulkString(version.Version)},
		resp.MapEntry{Key: "commit", Value: resp.BulkString(version.Commit)},
		resp.MapEntry{Key: "go_version", Value: resp.BulkString(version.GoVersion)},
	)

	format := s.Output
	if format == output.FormatText {
		format = output.FormatTable
	}
	return output.NewFormatter(format).Format(stdout(c), m)
}
