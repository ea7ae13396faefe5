package redisserver

import (
	"github.com/yndnr/simple-redis/internal/resp"
	"github.com/yndnr/simple-redis/internal/storage/memory"
)

// SAdd adds set members.
type SAdd struct {
	Key     string
	Members []string
}

func parseSAdd(args [][]byte) (Command, error) {
	return &SAdd{Key: string(args[0]), Members: stringArgs(args[1:])}, nil
}

func (c *SAdd) Name() string { return "SADD" }

func (c *SAdd) Execute(store *memory.Store) resp.Frame {
	n, err := store.SAdd(c.Key, c.Members...)
	if err != nil {
		return storeError(err)
	}
	return resp.Integer(n)
}

// SRem removes set members.
type SRem struct {
	Key     string
	Members []string
}

func parseSRem(args [][]byte) (Command, error) {
	return &SRem{Key: string(args[0]), Members: stringArgs(args[1:])}, nil
}

func (c *SRem) Name() string { return "SREM" }

func (c *SRem) Execute(store *memory.Store) resp.Frame {
	n, err := store.SRem(c.Key, c.Members...)
	if err != nil {
		return storeError(err)
	}
	return resp.Integer(n)
}

// SIsMember tests membership.
type SIsMember struct {
	Key    string
	Member string
}

func parseSIsMember(args [][]byte) (Command, error) {
	return &SIsMember{Key: string(args[0]), Member: string(args[1])}, nil
}

func (c *SIsMember) Name() string { return "SISMEMBER" }

func (c *SIsMember) Execute(store *memory.Store) resp.Frame {
	ok, err := store.SIsMember(c.Key, c.Member)
	if err != nil {
		return storeError(err)
	}
	if ok {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

// SMembers lists a set in ascending order.
type SMembers struct {
	Key string
}

func parseSMembers(args [][]byte) (Command, error) {
	return &SMembers{Key: string(args[0])}, nil
}

func (c *SMembers) Name() string { return "SMEMBERS" }

func (c *SMembers) Execute(store *memory.Store) resp.Frame {
	members, err := store.SMembers(c.Key)
	if err != nil {
		return storeError(err)
	}
	out := make(resp.Set, len(members))
	for i, m := range members {
		out[i] = resp.BulkString(m)
	}
	return out
}

// SCard counts set members.
type SCard struct {
	Key string
}

func parseSCard(args [][]byte) (Command, error) {
	return &SCard{Key: string(args[0])}, nil
}

func (c *SCard) Name() string { return "SCARD" }

func (c *SCard) Execute(store *memory.Store) resp.Frame {
	n, err := store.SCard(c.Key)
	if err != nil {
		return storeError(err)
	}
	return resp.Integer(n)
}
