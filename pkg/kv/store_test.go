package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, int]()

	s.Set("foo", 42)
	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	s := New[string, string]()
	s.Set("key", "value")
	s.Set("other", "value")

	s.Delete("key")
	s.Delete("missing")

	_, ok := s.Get("key")
	assert.False(t, ok)
	assert.Equal(t, []string{"other"}, s.Keys())
}

func TestStore_Clear(t *testing.T) {
	s := New[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Keys())
}

func TestStore_KeysInInsertionOrder(t *testing.T) {
	s := New[string, int]()
	s.Set("b", 1)
	s.Set("a", 2)
	s.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, s.Keys())
	val, _ := s.Get("b")
	assert.Equal(t, 3, val)
}

func TestStore_Bounded(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		inserts  []int
		wantKeys []int
	}{
		{"under capacity", 3, []int{1, 2}, []int{1, 2}},
		{"evicts oldest", 2, []int{1, 2, 3}, []int{2, 3}},
		{"overwrite does not evict", 2, []int{1, 2, 1}, []int{1, 2}},
		{"zero is unbounded", 0, []int{1, 2, 3, 4}, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewBounded[int, int](tt.capacity)
			for _, k := range tt.inserts {
				s.Set(k, k*10)
			}
			assert.Equal(t, tt.wantKeys, s.Keys())
			assert.Equal(t, len(tt.wantKeys), s.Len())
		})
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set(n, n*2)
		}(i)
	}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Get(n)
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 100, s.Len())
}
