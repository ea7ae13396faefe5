package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yndnr/simple-redis/internal/cli/output"
	"github.com/yndnr/simple-redis/internal/resp"
)

// DefaultPrompt is shown before each line.
const DefaultPrompt = "simple-redis> "

// Executor sends one command and returns its reply.
type Executor interface {
	Do(ctx context.Context, args ...string) (resp.Frame, error)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	exec      Executor
	input     io.Reader
	output    io.Writer
	prompt    string
	formatter output.Formatter
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithInput sets the line source.
func WithInput(r io.Reader) Option {
	return func(repl *REPL) { repl.input = r }
}

// WithOutput sets where prompts and replies are written.
func WithOutput(w io.Writer) Option {
	return func(repl *REPL) { repl.output = w }
}

// WithPrompt overrides DefaultPrompt.
func WithPrompt(p string) Option {
	return func(repl *REPL) { repl.prompt = p }
}

// WithFormatter sets the reply formatter. The default is text.
func WithFormatter(f output.Formatter) Option {
	return func(repl *REPL) {
		if f != nil {
			repl.formatter = f
		}
	}
}

// WithHistory sets the history store. Nil disables history.
func WithHistory(h *History) Option {
	return func(repl *REPL) { repl.history = h }
}

// New creates a REPL sending commands through exec.
func New(exec Executor, opts ...Option) *REPL {
	r := &REPL{
		exec:      exec,
		input:     os.Stdin,
		output:    os.Stdout,
		prompt:    DefaultPrompt,
		formatter: output.NewFormatter(output.FormatText),
		completer: NewCompleter(),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines until exit or quit, end of input, or ctx is done.
// History is loaded before the first prompt and saved on return.
func (r *REPL) Run(ctx context.Context) error {
	if r.history != nil {
		_ = r.history.Load()
		defer func() { _ = r.history.Save() }()
	}

	reader := bufio.NewReader(r.input)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(r.output, r.prompt)

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		if stop := r.handle(ctx, strings.TrimSpace(line)); stop {
			return nil
		}
		if eof {
			fmt.Fprintln(r.output)
			return nil
		}
	}
}

// handle runs one line and reports whether the loop should stop.
func (r *REPL) handle(ctx context.Context, line string) bool {
	if line == "" {
		return false
	}
	if r.history != nil {
		r.history.Add(line)
	}

	args, err := Split(line)
	if err != nil {
		fmt.Fprintf(r.output, "(error) %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	switch strings.ToLower(args[0]) {
	case "exit", "quit":
		return true
	case "help":
		r.help()
		return false
	}

	reply, err := r.exec.Do(ctx, args...)
	if err != nil {
		fmt.Fprintf(r.output, "(error) %v\n", err)
		return false
	}
	if err := r.formatter.Format(r.output, reply); err != nil {
		fmt.Fprintf(r.output, "(error) %v\n", err)
	}
	return false
}

func (r *REPL) help() {
	fmt.Fprintln(r.output, "Commands:")
	for _, cmd := range r.completer.Commands() {
		fmt.Fprintf(r.output, "  %s\n", cmd)
	}
	fmt.Fprintln(r.output, "Arguments may be quoted with \"...\" or '...'.")
}
