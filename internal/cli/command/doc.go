// Package command provides the command tree of simple-redis-cli.
//
// It uses urfave/cli/v2. Arguments that do not name a subcommand are sent
// to the server as one command, and no arguments at all start the REPL:
//
//	simple-redis-cli                      # interactive
//	simple-redis-cli SET k v              # one command
//	simple-redis-cli -o json HGETALL h    # one command, JSON output
//	simple-redis-cli status               # admin endpoint health
//	simple-redis-cli bench -c 8 SET k v   # load test
//	simple-redis-cli config use prod      # switch saved server
package command
