// Package cmap provides a concurrent-safe sharded map.
//
// It uses sharding to reduce lock contention, providing better
// performance than a single mutex for high-concurrency workloads.
package cmap

import (
	"fmt"
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// Hasher maps a key to a 64-bit hash used for shard selection.
type Hasher[K comparable] func(key K) uint64

// Map is a concurrent-safe sharded map.
type Map[K comparable, V any] struct {
	shards    []*shard[K, V]
	shardMask uint64
	hash      Hasher[K]
}

type shard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

type options[K comparable] struct {
	shardCount int
	hasher     Hasher[K]
}

// Option configures a Map.
type Option[K comparable] func(*options[K])

// WithShardCount sets the number of shards. n must be a power of 2; other
// values fall back to DefaultShardCount.
func WithShardCount[K comparable](n int) Option[K] {
	return func(o *options[K]) {
		o.shardCount = n
	}
}

// WithHasher replaces the default murmur3 based shard hasher.
func WithHasher[K comparable](h Hasher[K]) Option[K] {
	return func(o *options[K]) {
		if h != nil {
			o.hasher = h
		}
	}
}

// New creates a new sharded map.
func New[K comparable, V any](opts ...Option[K]) *Map[K, V] {
	o := options[K]{
		shardCount: DefaultShardCount,
		hasher:     MurmurHash[K],
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Ensure shardCount is a power of 2
	if o.shardCount <= 0 || o.shardCount&(o.shardCount-1) != 0 {
		o.shardCount = DefaultShardCount
	}

	m := &Map[K, V]{
		shards:    make([]*shard[K, V], o.shardCount),
		shardMask: uint64(o.shardCount - 1),
		hash:      o.hasher,
	}
	for i := range m.shards {
		m.shards[i] = &shard[K, V]{
			items: make(map[K]V),
		}
	}
	return m
}

// MurmurHash is the default Hasher. String keys are hashed directly; other
// key types are hashed through their fmt representation.
func MurmurHash[K comparable](key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return murmur3.Sum64([]byte(k))
	default:
		return murmur3.Sum64([]byte(fmt.Sprint(k)))
	}
}

func (m *Map[K, V]) getShard(key K) *shard[K, V] {
	return m.shards[m.hash(key)&m.shardMask]
}

// ShardIndex returns the index of the shard that owns key.
func (m *Map[K, V]) ShardIndex(key K) int {
	return int(m.hash(key) & m.shardMask)
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	shard := m.getShard(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	val, ok := shard.items[key]
	return val, ok
}

// Set stores a key-value pair.
func (m *Map[K, V]) Set(key K, value V) {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.items[key] = value
}

// Delete removes a key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	_, ok := shard.items[key]
	delete(shard.items, key)
	return ok
}

// Has checks if a key exists.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Count returns the total number of items.
func (m *Map[K, V]) Count() int {
	count := 0
	for _, shard := range m.shards {
		shard.mu.RLock()
		count += len(shard.items)
		shard.mu.RUnlock()
	}
	return count
}

// Clear removes all items.
func (m *Map[K, V]) Clear() {
	for _, shard := range m.shards {
		shard.mu.Lock()
		shard.items = make(map[K]V)
		shard.mu.Unlock()
	}
}

// ShardCount returns the number of shards.
func (m *Map[K, V]) ShardCount() int {
	return len(m.shards)
}
