package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_GetPut(t *testing.T) {
	c := NewLRU[string, int](2)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Put("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	_, _ = c.Get("a") // a is now most recent
	c.Put("c", 3)     // evicts b

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_UpdateExisting(t *testing.T) {
	c := NewLRU[string, string](2)
	c.Put("k", "old")
	c.Put("k", "new")

	v, _ := c.Get("k")
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_SingleEntry(t *testing.T) {
	c := NewLRU[int, int](0)
	c.Put(1, 1)
	c.Put(2, 2)

	_, ok := c.Get(1)
	assert.False(t, ok)
	v, ok := c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := NewLRU[string, int](50)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (n*100+j)%75)
				c.Put(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
