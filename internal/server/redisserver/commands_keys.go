package redisserver

import (
	"github.com/yndnr/simple-redis/internal/resp"
	"github.com/yndnr/simple-redis/internal/storage/memory"
)

// ============================================================
// Connection commands
// ============================================================

// Ping replies PONG, or echoes its optional message.
type Ping struct {
	Message    []byte
	HasMessage bool
}

func parsePing(args [][]byte) (Command, error) {
	switch len(args) {
	case 0:
		return &Ping{}, nil
	case 1:
		return &Ping{Message: args[0], HasMessage: true}, nil
	default:
		return nil, errWrongArgs("ping")
	}
}

func (c *Ping) Name() string { return "PING" }

func (c *Ping) Execute(*memory.Store) resp.Frame {
	if !c.HasMessage {
		return resp.SimpleString("PONG")
	}
	return resp.BulkString(c.Message)
}

// Echo returns its argument.
type Echo struct {
	Message []byte
}

func parseEcho(args [][]byte) (Command, error) {
	return &Echo{Message: args[0]}, nil
}

func (c *Echo) Name() string { return "ECHO" }

func (c *Echo) Execute(*memory.Store) resp.Frame {
	return resp.BulkString(c.Message)
}

// Quit replies OK; the server closes the connection after writing the reply.
type Quit struct{}

func parseQuit([][]byte) (Command, error) { return &Quit{}, nil }

func (c *Quit) Name() string { return "QUIT" }

func (c *Quit) Execute(*memory.Store) resp.Frame { return resp.OK }

// ============================================================
// Keyspace commands
// ============================================================

// Get reads a string value.
type Get struct {
	Key string
}

func parseGet(args [][]byte) (Command, error) {
	return &Get{Key: string(args[0])}, nil
}

func (c *Get) Name() string { return "GET" }

func (c *Get) Execute(store *memory.Store) resp.Frame {
	v, ok, err := store.Get(c.Key)
	if err != nil {
		return storeError(err)
	}
	return bulkOrNull(v, ok)
}

// Set stores a string value, replacing whatever the key held.
type Set struct {
	Key   string
	Value []byte
}

func parseSet(args [][]byte) (Command, error) {
	return &Set{Key: string(args[0]), Value: args[1]}, nil
}

func (c *Set) Name() string { return "SET" }

func (c *Set) Execute(store *memory.Store) resp.Frame {
	store.Set(c.Key, c.Value)
	return resp.OK
}

// Del removes keys.
type Del struct {
	Keys []string
}

func parseDel(args [][]byte) (Command, error) {
	return &Del{Keys: stringArgs(args)}, nil
}

func (c *Del) Name() string { return "DEL" }

func (c *Del) Execute(store *memory.Store) resp.Frame {
	return resp.Integer(store.Del(c.Keys...))
}

// Exists counts existing keys.
type Exists struct {
	Keys []string
}

func parseExists(args [][]byte) (Command, error) {
	return &Exists{Keys: stringArgs(args)}, nil
}

func (c *Exists) Name() string { return "EXISTS" }

func (c *Exists) Execute(store *memory.Store) resp.Frame {
	return resp.Integer(store.Exists(c.Keys...))
}

// Type reports the kind of value held at a key.
type Type struct {
	Key string
}

func parseType(args [][]byte) (Command, error) {
	return &Type{Key: string(args[0])}, nil
}

func (c *Type) Name() string { return "TYPE" }

func (c *Type) Execute(store *memory.Store) resp.Frame {
	return resp.SimpleString(store.Type(c.Key).String())
}

// IncrBy adds Delta to the integer held at a key. INCR, DECR, INCRBY and
// DECRBY all parse to it.
type IncrBy struct {
	name  string
	Key   string
	Delta int64
}

func parseIncr(args [][]byte) (Command, error) {
	return &IncrBy{name: "INCR", Key: string(args[0]), Delta: 1}, nil
}

func parseDecr(args [][]byte) (Command, error) {
	return &IncrBy{name: "DECR", Key: string(args[0]), Delta: -1}, nil
}

func parseIncrBy(args [][]byte) (Command, error) {
	n, err := parseInt(args[1])
	if err != nil {
		return nil, err
	}
	return &IncrBy{name: "INCRBY", Key: string(args[0]), Delta: n}, nil
}

func parseDecrBy(args [][]byte) (Command, error) {
	n, err := parseInt(args[1])
	if err != nil {
		return nil, err
	}
	// -MinInt64 does not fit.
	if n == -n && n != 0 {
		return nil, errOverflow
	}
	return &IncrBy{name: "DECRBY", Key: string(args[0]), Delta: -n}, nil
}

func (c *IncrBy) Name() string { return c.name }

func (c *IncrBy) Execute(store *memory.Store) resp.Frame {
	n, err := store.IncrBy(c.Key, c.Delta)
	if err != nil {
		return storeError(err)
	}
	return resp.Integer(n)
}

// DBSize counts keys.
type DBSize struct{}

func parseDBSize([][]byte) (Command, error) { return &DBSize{}, nil }

func (c *DBSize) Name() string { return "DBSIZE" }

func (c *DBSize) Execute(store *memory.Store) resp.Frame {
	return resp.Integer(store.Len())
}

// FlushDB removes every key.
type FlushDB struct{}

func parseFlushDB([][]byte) (Command, error) { return &FlushDB{}, nil }

func (c *FlushDB) Name() string { return "FLUSHDB" }

func (c *FlushDB) Execute(store *memory.Store) resp.Frame {
	store.Flush()
	return resp.OK
}
