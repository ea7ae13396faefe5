package repl

import (
	"sort"
	"strings"

	"github.com/yndnr/simple-redis/internal/server/redisserver"
)

// localCommands are handled by the REPL itself.
var localCommands = []string{"help", "exit", "quit"}

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over every server command and the
// REPL's own commands.
func NewCompleter() *Completer {
	commands := append(redisserver.CommandNames(), localCommands...)
	sort.Strings(commands)
	return &Completer{commands: commands}
}

// Commands returns every known command name.
func (c *Completer) Commands() []string {
	return append([]string(nil), c.commands...)
}

// Complete returns the commands starting with prefix, ignoring case. A
// lower-case prefix gets lower-case suggestions.
func (c *Completer) Complete(prefix string) []string {
	upper := strings.ToUpper(prefix)
	lower := prefix != "" && prefix == strings.ToLower(prefix)

	var suggestions []string
	for _, cmd := range c.commands {
		if !strings.HasPrefix(strings.ToUpper(cmd), upper) {
			continue
		}
		if lower {
			cmd = strings.ToLower(cmd)
		}
		suggestions = append(suggestions, cmd)
	}
	return suggestions
}
