package memory

import (
	"errors"
	"math"
	"strconv"

	"github.com/yndnr/simple-redis/pkg/cmap"
)

// Store errors.
var (
	// ErrWrongType is returned when an operation targets a key holding a value
	// of a different kind. The store is left unchanged.
	ErrWrongType = errors.New("memory: wrong kind of value")

	// ErrNotInteger is returned by IncrBy when the stored string is not a
	// base-10 signed 64-bit integer.
	ErrNotInteger = errors.New("memory: value is not an integer")

	// ErrOverflow is returned by IncrBy when the result does not fit in int64.
	ErrOverflow = errors.New("memory: increment would overflow")
)

// FieldValue is one field/value pair for HSet.
type FieldValue struct {
	Field string
	Value []byte
}

// Store is the process-wide key-value store. It is safe for concurrent use
// and is shared by pointer between connections.
type Store struct {
	data *cmap.Map[string, *Value]
}

// Option configures the Store.
type Option func(*options)

type options struct {
	shardCount int
}

// WithShardCount sets the number of lock shards. It must be a power of 2;
// other values fall back to cmap.DefaultShardCount.
func WithShardCount(n int) Option {
	return func(o *options) {
		o.shardCount = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := options{shardCount: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		data: cmap.New[string, *Value](cmap.WithShardCount[string](o.shardCount)),
	}
}

// ============================================================
// Keyspace
// ============================================================

// Del removes the given keys and returns how many existed.
func (s *Store) Del(keys ...string) int {
	removed := 0
	for _, key := range keys {
		if s.data.Delete(key) {
			removed++
		}
	}
	return removed
}

// Exists returns how many of the given keys exist. A key named twice is
// counted twice.
func (s *Store) Exists(keys ...string) int {
	n := 0
	for _, key := range keys {
		if s.data.Has(key) {
			n++
		}
	}
	return n
}

// Type returns the kind of the value stored at key, or KindNone.
func (s *Store) Type(key string) Kind {
	kind := KindNone
	s.data.View(key, func(v *Value, ok bool) {
		if ok {
			kind = v.kind
		}
	})
	return kind
}

// Len returns the number of keys.
func (s *Store) Len() int {
	return s.data.Count()
}

// Flush removes every key.
func (s *Store) Flush() {
	s.data.Clear()
}

// ============================================================
// Strings
// ============================================================

// Get returns a copy of the string stored at key.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var (
		out   []byte
		found bool
		err   error
	)
	s.data.View(key, func(v *Value, ok bool) {
		switch {
		case !ok:
		case v.kind != KindString:
			err = ErrWrongType
		default:
			out, found = cloneBytes(v.str), true
		}
	})
	return out, found, err
}

// Set stores value at key, replacing any existing value of any kind.
func (s *Store) Set(key string, value []byte) {
	s.data.Set(key, newString(value))
}

// IncrBy adds delta to the integer stored at key and returns the new value.
// A missing key counts as 0.
func (s *Store) IncrBy(key string, delta int64) (int64, error) {
	var (
		result int64
		err    error
	)
	s.data.Compute(key, func(v *Value, ok bool) (*Value, cmap.ComputeOp) {
		var current int64
		if ok {
			if v.kind != KindString {
				err = ErrWrongType
				return v, cmap.Keep
			}
			n, perr := strconv.ParseInt(string(v.str), 10, 64)
			if perr != nil {
				err = ErrNotInteger
				return v, cmap.Keep
			}
			current = n
		}
		if (delta > 0 && current > math.MaxInt64-delta) || (delta < 0 && current < math.MinInt64-delta) {
			err = ErrOverflow
			return v, cmap.Keep
		}
		result = current + delta
		return &Value{kind: KindString, str: strconv.AppendInt(nil, result, 10)}, cmap.Store
	})
	return result, err
}

// ============================================================
// Hashes
// ============================================================

// HSet sets the given fields of the hash at key, creating it if needed, and
// returns the number of fields that were newly added.
func (s *Store) HSet(key string, pairs ...FieldValue) (int, error) {
	var (
		added int
		err   error
	)
	s.data.Compute(key, func(v *Value, ok bool) (*Value, cmap.ComputeOp) {
		if !ok {
			if len(pairs) == 0 {
				return nil, cmap.Keep
			}
			v = newHash()
		} else if v.kind != KindHash {
			err = ErrWrongType
			return v, cmap.Keep
		}
		for _, p := range pairs {
			if _, exists := v.hash[p.Field]; !exists {
				added++
			}
			v.hash[p.Field] = cloneBytes(p.Value)
		}
		return v, cmap.Store
	})
	return added, err
}

// HGet returns a copy of one field of the hash at key.
func (s *Store) HGet(key, field string) ([]byte, bool, error) {
	var (
		out   []byte
		found bool
		err   error
	)
	s.data.View(key, func(v *Value, ok bool) {
		switch {
		case !ok:
		case v.kind != KindHash:
			err = ErrWrongType
		default:
			if b, exists := v.hash[field]; exists {
				out, found = cloneBytes(b), true
			}
		}
	})
	return out, found, err
}

// HMGet returns the values of the given fields in order. Missing fields (and
// all fields of a missing key) are nil.
func (s *Store) HMGet(key string, fields ...string) ([][]byte, error) {
	out := make([][]byte, len(fields))
	var err error
	s.data.View(key, func(v *Value, ok bool) {
		switch {
		case !ok:
		case v.kind != KindHash:
			err = ErrWrongType
		default:
			for i, f := range fields {
				if b, exists := v.hash[f]; exists {
					out[i] = cloneBytes(b)
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HGetAll returns a copy of every field of the hash at key. A missing key
// yields an empty map.
func (s *Store) HGetAll(key string) (map[string][]byte, error) {
	out := make(map[string][]byte)
	var err error
	s.data.View(key, func(v *Value, ok bool) {
		switch {
		case !ok:
		case v.kind != KindHash:
			err = ErrWrongType
		default:
			for f, b := range v.hash {
				out[f] = cloneBytes(b)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HDel removes fields from the hash at key and returns how many existed.
// The key is removed once its hash is empty.
func (s *Store) HDel(key string, fields ...string) (int, error) {
	var (
		removed int
		err     error
	)
	s.data.Compute(key, func(v *Value, ok bool) (*Value, cmap.ComputeOp) {
		if !ok {
			return nil, cmap.Keep
		}
		if v.kind != KindHash {
			err = ErrWrongType
			return v, cmap.Keep
		}
		for _, f := range fields {
			if _, exists := v.hash[f]; exists {
				delete(v.hash, f)
				removed++
			}
		}
		if v.empty() {
			return nil, cmap.Remove
		}
		return v, cmap.Keep
	})
	return removed, err
}

// HLen returns the number of fields in the hash at key.
func (s *Store) HLen(key string) (int, error) {
	var (
		n   int
		err error
	)
	s.data.View(key, func(v *Value, ok bool) {
		switch {
		case !ok:
		case v.kind != KindHash:
			err = ErrWrongType
		default:
			n = len(v.hash)
		}
	})
	return n, err
}

// ============================================================
// Sets
// ============================================================

// SAdd adds members to the set at key, creating it if needed, and returns the
// number of members that were not already present.
func (s *Store) SAdd(key string, members ...string) (int, error) {
	var (
		added int
		err   error
	)
	s.data.Compute(key, func(v *Value, ok bool) (*Value, cmap.ComputeOp) {
		if !ok {
			if len(members) == 0 {
				return nil, cmap.Keep
			}
			v = newSet()
		} else if v.kind != KindSet {
			err = ErrWrongType
			return v, cmap.Keep
		}
		for _, m := range members {
			if _, exists := v.set[m]; !exists {
				v.set[m] = struct{}{}
				added++
			}
		}
		return v, cmap.Store
	})
	return added, err
}

// SRem removes members from the set at key and returns how many were present.
// The key is removed once its set is empty.
func (s *Store) SRem(key string, members ...string) (int, error) {
	var (
		removed int
		err     error
	)
	s.data.Compute(key, func(v *Value, ok bool) (*Value, cmap.ComputeOp) {
		if !ok {
			return nil, cmap.Keep
		}
		if v.kind != KindSet {
			err = ErrWrongType
			return v, cmap.Keep
		}
		for _, m := range members {
			if _, exists := v.set[m]; exists {
				delete(v.set, m)
				removed++
			}
		}
		if v.empty() {
			return nil, cmap.Remove
		}
		return v, cmap.Keep
	})
	return removed, err
}

// SIsMember reports whether member belongs to the set at key.
func (s *Store) SIsMember(key, member string) (bool, error) {
	var (
		found bool
		err   error
	)
	s.data.View(key, func(v *Value, ok bool) {
		switch {
		case !ok:
		case v.kind != KindSet:
			err = ErrWrongType
		default:
			_, found = v.set[member]
		}
	})
	return found, err
}

// SMembers returns the members of the set at key in ascending order.
func (s *Store) SMembers(key string) ([]string, error) {
	var (
		members []string
		err     error
	)
	s.data.View(key, func(v *Value, ok bool) {
		switch {
		case !ok:
		case v.kind != KindSet:
			err = ErrWrongType
		default:
			members = v.sortedMembers()
		}
	})
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []string{}
	}
	return members, nil
}

// SCard returns the number of members in the set at key.
func (s *Store) SCard(key string) (int, error) {
	var (
		n   int
		err error
	)
	s.data.View(key, func(v *Value, ok bool) {
		switch {
		case !ok:
		case v.kind != KindSet:
			err = ErrWrongType
		default:
			n = len(v.set)
		}
	})
	return n, err
}
