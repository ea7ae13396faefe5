// Package cmap provides a concurrent map implementation for simple-redis.
//
// This package implements a sharded concurrent map used as the key index of
// the in-memory store:
//
//   - Sharding: Configurable power-of-two shard count for parallelism
//   - Hashing: murmur3 shard selection, replaceable with WithHasher
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Atomic callbacks: Compute and View run under the owning shard's lock
//
// Usage:
//
//	m := cmap.New[string, *Entry](cmap.WithShardCount[string](32))
//	m.Set("key", entry)
//	m.Compute("key", func(e *Entry, ok bool) (*Entry, cmap.ComputeOp) {
//		if !ok {
//			return &Entry{}, cmap.Store
//		}
//		e.Hits++
//		return e, cmap.Keep
//	})
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has, View) use RLock,
// write operations (Set, Delete, Compute) use Lock.
package cmap
