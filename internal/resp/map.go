package resp

import "github.com/google/btree"

// mapDegree is the B-tree degree used for Map storage.
const mapDegree = 8

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   string
	Value Frame
}

// Map is a RESP3 map with text keys.
//
// Entries are kept ordered by key, so iteration and encoding are always in
// ascending key order regardless of insertion order. Keys are encoded as
// simple strings and must not contain CR or LF.
//
// A nil *Map reads as an empty map; Get, Delete, Len, Ascend and Entries
// accept it. Insert needs a map from NewMap (or a non-nil zero Map).
type Map struct {
	tree *btree.BTreeG[MapEntry]
}

func lessEntry(a, b MapEntry) bool {
	return a.Key < b.Key
}

// NewMap returns a map holding the given entries. Later entries win on
// duplicate keys. Keys must not contain CR or LF.
func NewMap(entries ...MapEntry) *Map {
	m := &Map{tree: btree.NewG(mapDegree, lessEntry)}
	for _, e := range entries {
		m.tree.ReplaceOrInsert(e)
	}
	return m
}

// Insert sets key to value and reports whether an existing value was replaced.
// key must not contain CR or LF. Insert panics on a nil *Map.
func (m *Map) Insert(key string, value Frame) bool {
	if m.tree == nil {
		m.tree = btree.NewG(mapDegree, lessEntry)
	}
	_, replaced := m.tree.ReplaceOrInsert(MapEntry{Key: key, Value: value})
	return replaced
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Frame, bool) {
	if m == nil || m.tree == nil {
		return nil, false
	}
	e, ok := m.tree.Get(MapEntry{Key: key})
	return e.Value, ok
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if m == nil || m.tree == nil {
		return false
	}
	_, ok := m.tree.Delete(MapEntry{Key: key})
	return ok
}

// Len returns the number of pairs.
func (m *Map) Len() int {
	if m == nil || m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Ascend calls fn for every pair in ascending key order until fn returns false.
func (m *Map) Ascend(fn func(key string, value Frame) bool) {
	if m == nil || m.tree == nil {
		return
	}
	m.tree.Ascend(func(e MapEntry) bool {
		return fn(e.Key, e.Value)
	})
}

// Entries returns all pairs in ascending key order.
func (m *Map) Entries() []MapEntry {
	out := make([]MapEntry, 0, m.Len())
	m.Ascend(func(key string, value Frame) bool {
		out = append(out, MapEntry{Key: key, Value: value})
		return true
	})
	return out
}

func (m *Map) equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	a, b := m.Entries(), o.Entries()
	for i := range a {
		if a[i].Key != b[i].Key || !Equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}
