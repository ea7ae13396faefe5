// Package memory provides the in-memory key-value store for simple-redis.
//
// Features:
//
//   - Typed values: strings, hashes and sets under one keyspace
//   - Sharded storage: keys spread over pkg/cmap shards by murmur3 hash
//   - Atomic per-key operations: each call runs under its shard's lock
//   - Empty collections are removed so TYPE and EXISTS see them as missing
//
// Thread Safety:
//
// All operations are thread-safe. Operations on keys in different shards run
// in parallel; operations on the same key are serialised.
package memory
