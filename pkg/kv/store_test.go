package kv

import (
	"sync"
	"sync/atomic"
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

func TestStore_BoundedEvictsOldest(t *testing.T) {
	s := NewBounded[float64, string](2)

	s.Set(1, "a")
	s.Set(2, "b")
	s.Set(1, "a2") // overwrite keeps position
	s.Set(4, "c")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{2, 4}, s.Keys())

	_, ok := s.Get(1)
	assert.False(t, ok)
}

func TestStore_GetOrCompute(t *testing.T) {
	s := New[int, int]()
	var calls atomic.Int32

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := s.GetOrCompute(7, func() int {
				calls.Add(1)
				return 49
			})
			assert.Equal(t, 49, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestStore_Clear(t *testing.T) {
	s := New[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Keys())
}
