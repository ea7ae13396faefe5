package cmap

// ComputeOp tells Compute what to do with the value returned by its callback.
type ComputeOp int

const (
	// Keep leaves the entry as it was.
	Keep ComputeOp = iota
	// Store stores the returned value under the key.
	Store
	// Remove deletes the key.
	Remove
)

// Compute runs fn with the current value of key while holding the shard's
// write lock, then applies the returned op. fn must not call back into m.
//
// This is the building block for atomic read-modify-write operations: no other
// goroutine can observe or change key while fn runs.
func (m *Map[K, V]) Compute(key K, fn func(value V, exists bool) (V, ComputeOp)) {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	existing, exists := shard.items[key]
	newValue, op := fn(existing, exists)
	switch op {
	case Store:
		shard.items[key] = newValue
	case Remove:
		delete(shard.items, key)
	}
}

// View runs fn with the current value of key while holding the shard's read
// lock. Values reachable from the stored value may be read but not modified.
func (m *Map[K, V]) View(key K, fn func(value V, exists bool)) {
	shard := m.getShard(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()

	value, exists := shard.items[key]
	fn(value, exists)
}

// Range iterates over all key-value pairs.
//
// The callback returns false to stop iteration.
// Note: This acquires locks shard by shard, so the view may not be consistent.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, shard := range m.shards {
		shard.mu.RLock()
		for k, v := range shard.items {
			if !fn(k, v) {
				shard.mu.RUnlock()
				return
			}
		}
		shard.mu.RUnlock()
	}
}

// Keys returns all keys.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Count())
	m.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Pop removes a key and returns its value.
// Returns the value and true if the key existed, zero value and false otherwise.
func (m *Map[K, V]) Pop(key K) (V, bool) {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	val, ok := shard.items[key]
	if ok {
		delete(shard.items, key)
	}
	return val, ok
}

// SetIfAbsent sets the value only if the key does not exist.
// Returns true if the value was set, false if the key already exists.
func (m *Map[K, V]) SetIfAbsent(key K, value V) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, ok := shard.items[key]; ok {
		return false
	}

	shard.items[key] = value
	return true
}
