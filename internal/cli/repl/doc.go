// Package repl provides the interactive mode of simple-redis-cli.
//
//   - repl.go: read-eval-print loop sending each line as one command
//   - split.go: quote-aware argument splitting
//   - completer.go: command name completion
//   - history.go: history persistence (~/.simple-redis/history)
package repl
