package redisserver

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/yndnr/simple-redis/internal/resp"
	"github.com/yndnr/simple-redis/internal/storage/memory"
)

// Command is one parsed request, ready to run against the store.
//
// Execute is total: every failure is reported as a resp.SimpleError frame and
// leaves the connection usable.
type Command interface {
	// Name returns the upper-case command name.
	Name() string
	Execute(store *memory.Store) resp.Frame
}

// Request-level errors. They are resp.SimpleError values, so the server can
// write them to the client as-is.
var (
	// ErrInvalidCommand is returned when the request frame is not a non-empty
	// array of bulk strings.
	ErrInvalidCommand error = resp.SimpleError("ERR invalid command frame")

	errNotInteger = resp.SimpleError("ERR value is not an integer or out of range")
	errOverflow   = resp.SimpleError("ERR increment or decrement would overflow")
	errWrongType  = resp.SimpleError("WRONGTYPE Operation against a key holding the wrong kind of value")
	errHashField  = resp.SimpleError("ERR hash field must not contain CR or LF")
)

func errWrongArgs(name string) resp.SimpleError {
	return resp.Errorf("ERR wrong number of arguments for '%s' command", strings.ToLower(name))
}

func errUnknownCommand(name string) resp.SimpleError {
	return resp.Errorf("ERR unknown command '%s'", name)
}

// commandInfo describes one entry of the command table.
type commandInfo struct {
	// arity counts the command name. Positive means exactly, negative means
	// at least -arity.
	arity int
	parse func(args [][]byte) (Command, error)
}

func (c commandInfo) accepts(n int) bool {
	if c.arity < 0 {
		return n >= -c.arity
	}
	return n == c.arity
}

var commandTable = map[string]commandInfo{
	"PING":    {-1, parsePing},
	"ECHO":    {2, parseEcho},
	"QUIT":    {1, parseQuit},
	"GET":     {2, parseGet},
	"SET":     {3, parseSet},
	"DEL":     {-2, parseDel},
	"EXISTS":  {-2, parseExists},
	"TYPE":    {2, parseType},
	"INCR":    {2, parseIncr},
	"DECR":    {2, parseDecr},
	"INCRBY":  {3, parseIncrBy},
	"DECRBY":  {3, parseDecrBy},
	"DBSIZE":  {1, parseDBSize},
	"FLUSHDB": {1, parseFlushDB},

	"HSET":    {-4, parseHSet},
	"HGET":    {3, parseHGet},
	"HMGET":   {-3, parseHMGet},
	"HGETALL": {2, parseHGetAll},
	"HDEL":    {-3, parseHDel},
	"HLEN":    {2, parseHLen},

	"SADD":      {-3, parseSAdd},
	"SREM":      {-3, parseSRem},
	"SISMEMBER": {3, parseSIsMember},
	"SMEMBERS":  {2, parseSMembers},
	"SCARD":     {2, parseSCard},
}

// CommandNames returns every supported command name in ascending order.
func CommandNames() []string {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseCommand converts a request frame into a typed Command.
//
// The frame must be a non-empty array of bulk strings; otherwise
// ErrInvalidCommand is returned. Unknown names, wrong arity and malformed
// arguments are reported as resp.SimpleError values. Nothing touches the
// store before parsing succeeds.
func ParseCommand(f resp.Frame) (Command, error) {
	args, err := commandArgs(f)
	if err != nil {
		return nil, err
	}

	name := strings.ToUpper(string(args[0]))
	info, ok := commandTable[name]
	if !ok {
		return nil, errUnknownCommand(name)
	}
	if !info.accepts(len(args)) {
		return nil, errWrongArgs(name)
	}
	return info.parse(args[1:])
}

func commandArgs(f resp.Frame) ([][]byte, error) {
	arr, ok := f.(resp.Array)
	if !ok || len(arr) == 0 {
		return nil, ErrInvalidCommand
	}
	args := make([][]byte, len(arr))
	for i, elem := range arr {
		b, ok := elem.(resp.BulkString)
		if !ok {
			return nil, ErrInvalidCommand
		}
		args[i] = b
	}
	return args, nil
}

// ErrorReply converts an error into the frame sent to the client.
func ErrorReply(err error) resp.Frame {
	var se resp.SimpleError
	if errors.As(err, &se) {
		return se
	}
	return resp.Errorf("ERR %s", err.Error())
}

// storeError maps backend errors onto client-facing replies.
func storeError(err error) resp.Frame {
	switch {
	case errors.Is(err, memory.ErrWrongType):
		return errWrongType
	case errors.Is(err, memory.ErrNotInteger):
		return errNotInteger
	case errors.Is(err, memory.ErrOverflow):
		return errOverflow
	default:
		return ErrorReply(err)
	}
}

func parseInt(b []byte) (int64, error) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, errNotInteger
	}
	return n, nil
}

func stringArgs(args [][]byte) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = string(a)
	}
	return out
}

func bulkOrNull(b []byte, ok bool) resp.Frame {
	if !ok {
		return resp.Null{}
	}
	return resp.BulkString(b)
}
