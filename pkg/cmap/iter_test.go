package cmap

import (
	"fmt"
	"sort"
	"sync"
	"testing"
)

// ============================================================
// Compute / View Tests
// ============================================================

func TestCompute(t *testing.T) {
	m := New[string, int]()

	tests := []struct {
		name      string
		fn        func(int, bool) (int, ComputeOp)
		wantVal   int
		wantExist bool
	}{
		{
			name: "store on missing key",
			fn: func(v int, ok bool) (int, ComputeOp) {
				if ok {
					t.Error("key should not exist yet")
				}
				return 10, Store
			},
			wantVal: 10, wantExist: true,
		},
		{
			name: "update existing",
			fn: func(v int, ok bool) (int, ComputeOp) {
				return v + 5, Store
			},
			wantVal: 15, wantExist: true,
		},
		{
			name: "keep ignores returned value",
			fn: func(v int, ok bool) (int, ComputeOp) {
				return 999, Keep
			},
			wantVal: 15, wantExist: true,
		},
		{
			name: "remove",
			fn: func(v int, ok bool) (int, ComputeOp) {
				return 0, Remove
			},
			wantVal: 0, wantExist: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Compute("counter", tt.fn)
			v, ok := m.Get("counter")
			if v != tt.wantVal || ok != tt.wantExist {
				t.Errorf("Get(counter) = (%d, %v), want (%d, %v)", v, ok, tt.wantVal, tt.wantExist)
			}
		})
	}
}

func TestCompute_ConcurrentIncrements(t *testing.T) {
	m := New[string, int]()
	var wg sync.WaitGroup
	numGoroutines := 50
	numOps := 200

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				m.Compute("hot", func(v int, _ bool) (int, ComputeOp) {
					return v + 1, Store
				})
			}
		}()
	}
	wg.Wait()

	if v, _ := m.Get("hot"); v != numGoroutines*numOps {
		t.Errorf("hot = %d, want %d", v, numGoroutines*numOps)
	}
}

func TestView(t *testing.T) {
	m := New[string, []string]()
	m.Set("list", []string{"a", "b"})

	var seen int
	m.View("list", func(v []string, ok bool) {
		if !ok {
			t.Fatal("View(list) ok = false")
		}
		seen = len(v)
	})
	if seen != 2 {
		t.Errorf("View saw %d items, want 2", seen)
	}

	m.View("missing", func(v []string, ok bool) {
		if ok || v != nil {
			t.Errorf("View(missing) = (%v, %v), want (nil, false)", v, ok)
		}
	})
}

// ============================================================
// Iteration Tests
// ============================================================

func TestRange(t *testing.T) {
	m := New[string, int]()
	for i := 0; i < 10; i++ {
		m.Set(fmt.Sprintf("key%d", i), i)
	}

	sum := 0
	count := 0
	m.Range(func(key string, value int) bool {
		sum += value
		count++
		return true
	})

	if count != 10 {
		t.Errorf("Range visited %d items, want 10", count)
	}
	if sum != 45 {
		t.Errorf("sum = %d, want 45", sum)
	}
}

func TestRangeEarlyStop(t *testing.T) {
	m := New[string, int]()
	for i := 0; i < 100; i++ {
		m.Set(fmt.Sprintf("key%d", i), i)
	}

	count := 0
	m.Range(func(key string, value int) bool {
		count++
		return count < 5
	})

	if count != 5 {
		t.Errorf("Range visited %d items, want 5", count)
	}
}

func TestKeys(t *testing.T) {
	m := New[string, int]()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)

	keys := m.Keys()
	sort.Strings(keys)

	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Keys() = %v, want [a b c]", keys)
	}
}

func TestSetIfAbsent(t *testing.T) {
	m := New[string, int]()

	if !m.SetIfAbsent("key1", 100) {
		t.Error("SetIfAbsent should return true for new key")
	}
	if m.SetIfAbsent("key1", 200) {
		t.Error("SetIfAbsent should return false for existing key")
	}

	val, _ := m.Get("key1")
	if val != 100 {
		t.Errorf("value = %d, want 100", val)
	}
}

func TestPop(t *testing.T) {
	m := New[string, int]()
	m.Set("key1", 100)

	val, ok := m.Pop("key1")
	if !ok || val != 100 {
		t.Errorf("Pop(key1) = (%d, %v), want (100, true)", val, ok)
	}
	if m.Has("key1") {
		t.Error("key1 should not exist after Pop")
	}

	if _, ok := m.Pop("nonexistent"); ok {
		t.Error("Pop(nonexistent) should return false")
	}
}

func TestConcurrentRange(t *testing.T) {
	m := New[string, int]()
	for i := 0; i < 1000; i++ {
		m.Set(fmt.Sprintf("key%d", i), i)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Range(func(key string, value int) bool {
				return true
			})
		}()
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Set(fmt.Sprintf("new-%d-%d", id, j), j)
			}
		}(i)
	}
	wg.Wait()

	if m.Count() != 2000 {
		t.Errorf("Count() = %d, want 2000", m.Count())
	}
}
