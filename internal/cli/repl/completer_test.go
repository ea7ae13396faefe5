package repl

import (
	"strings"
	"testing"
)

func TestNewCompleter(t *testing.T) {
	c := NewCompleter()
	if len(c.commands) == 0 {
		t.Fatal("commands should be initialized")
	}

	all := strings.Join(c.Commands(), ",")
	for _, want := range []string{"GET", "HSET", "SADD", "help", "exit"} {
		if !strings.Contains(all, want) {
			t.Errorf("Commands() missing %q", want)
		}
	}
}

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"upper prefix", "HG", []string{"HGET", "HGETALL"}},
		{"lower prefix", "hg", []string{"hget", "hgetall"}},
		{"mixed case", "Sc", []string{"SCARD"}},
		{"local command", "ex", []string{"exists", "exit"}},
		{"no match", "zz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Complete(tt.prefix)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompleter_EmptyPrefix(t *testing.T) {
	c := NewCompleter()
	if got := len(c.Complete("")); got != len(c.commands) {
		t.Errorf("Complete(\"\") returned %d, want %d", got, len(c.commands))
	}
}
