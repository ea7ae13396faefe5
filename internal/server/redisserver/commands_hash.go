package redisserver

import (
	"bytes"

	"github.com/yndnr/simple-redis/internal/resp"
	"github.com/yndnr/simple-redis/internal/storage/memory"
)

// HSet sets hash fields.
type HSet struct {
	Key   string
	Pairs []memory.FieldValue
}

func parseHSet(args [][]byte) (Command, error) {
	if len(args)%2 != 1 {
		return nil, errWrongArgs("hset")
	}
	c := &HSet{Key: string(args[0]), Pairs: make([]memory.FieldValue, 0, len(args)/2)}
	for i := 1; i < len(args); i += 2 {
		// Fields become map keys on the wire, which are simple strings.
		if bytes.ContainsAny(args[i], "\r\n") {
			return nil, errHashField
		}
		c.Pairs = append(c.Pairs, memory.FieldValue{Field: string(args[i]), Value: args[i+1]})
	}
	return c, nil
}

func (c *HSet) Name() string { return "HSET" }

func (c *HSet) Execute(store *memory.Store) resp.Frame {
	n, err := store.HSet(c.Key, c.Pairs...)
	if err != nil {
		return storeError(err)
	}
	return resp.Integer(n)
}

// HGet reads one hash field.
type HGet struct {
	Key   string
	Field string
}

func parseHGet(args [][]byte) (Command, error) {
	return &HGet{Key: string(args[0]), Field: string(args[1])}, nil
}

func (c *HGet) Name() string { return "HGET" }

func (c *HGet) Execute(store *memory.Store) resp.Frame {
	v, ok, err := store.HGet(c.Key, c.Field)
	if err != nil {
		return storeError(err)
	}
	return bulkOrNull(v, ok)
}

// HMGet reads several hash fields.
type HMGet struct {
	Key    string
	Fields []string
}

func parseHMGet(args [][]byte) (Command, error) {
	return &HMGet{Key: string(args[0]), Fields: stringArgs(args[1:])}, nil
}

func (c *HMGet) Name() string { return "HMGET" }

func (c *HMGet) Execute(store *memory.Store) resp.Frame {
	vals, err := store.HMGet(c.Key, c.Fields...)
	if err != nil {
		return storeError(err)
	}
	out := make(resp.Array, len(vals))
	for i, v := range vals {
		out[i] = bulkOrNull(v, v != nil)
	}
	return out
}

// HGetAll returns a whole hash as a map ordered by field.
type HGetAll struct {
	Key string
}

func parseHGetAll(args [][]byte) (Command, error) {
	return &HGetAll{Key: string(args[0])}, nil
}

func (c *HGetAll) Name() string { return "HGETALL" }

func (c *HGetAll) Execute(store *memory.Store) resp.Frame {
	all, err := store.HGetAll(c.Key)
	if err != nil {
		return storeError(err)
	}
	m := resp.NewMap()
	for field, v := range all {
		m.Insert(field, resp.BulkString(v))
	}
	return m
}

// HDel removes hash fields.
type HDel struct {
	Key    string
	Fields []string
}

func parseHDel(args [][]byte) (Command, error) {
	return &HDel{Key: string(args[0]), Fields: stringArgs(args[1:])}, nil
}

func (c *HDel) Name() string { return "HDEL" }

func (c *HDel) Execute(store *memory.Store) resp.Frame {
	n, err := store.HDel(c.Key, c.Fields...)
	if err != nil {
		return storeError(err)
	}
	return resp.Integer(n)
}

// HLen counts hash fields.
type HLen struct {
	Key string
}

func parseHLen(args [][]byte) (Command, error) {
	return &HLen{Key: string(args[0])}, nil
}

func (c *HLen) Name() string { return "HLEN" }

func (c *HLen) Execute(store *memory.Store) resp.Frame {
	n, err := store.HLen(c.Key)
	if err != nil {
		return storeError(err)
	}
	return resp.Integer(n)
}
