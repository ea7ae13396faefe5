package memory

import "sort"

// Kind identifies the type of value stored under a key.
type Kind uint8

const (
	// KindNone is reported for missing keys.
	KindNone Kind = iota
	KindString
	KindHash
	KindSet
)

// String returns the lower-case type name used by the TYPE command.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindHash:
		return "hash"
	case KindSet:
		return "set"
	default:
		return "none"
	}
}

// Value is a tagged value held by the store. Only the field matching kind is
// populated. Values are owned by the store and only touched under the lock of
// the shard holding their key.
type Value struct {
	kind Kind
	str  []byte
	hash map[string][]byte
	set  map[string]struct{}
}

// Kind returns the value's kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNone
	}
	return v.kind
}

func newString(b []byte) *Value {
	return &Value{kind: KindString, str: cloneBytes(b)}
}

func newHash() *Value {
	return &Value{kind: KindHash, hash: make(map[string][]byte)}
}

func newSet() *Value {
	return &Value{kind: KindSet, set: make(map[string]struct{})}
}

// empty reports whether a collection value has no elements left.
func (v *Value) empty() bool {
	switch v.kind {
	case KindHash:
		return len(v.hash) == 0
	case KindSet:
		return len(v.set) == 0
	default:
		return false
	}
}

func (v *Value) sortedMembers() []string {
	members := make([]string, 0, len(v.set))
	for m := range v.set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}

// cloneBytes copies b and never returns nil, so an empty stored value stays
// distinguishable from a missing one.
func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
