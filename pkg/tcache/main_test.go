package tcache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndGet(t *testing.T) {
	tc := NewTCache(time.Minute)
	_, ok := tc.Get("missing")
	assert.False(t, ok)

	tc.Register("k", "v1", 0)
	v, ok := tc.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	tc.Register("k", "v2", 0)
	v, ok = tc.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestAddKeepsFirstValue(t *testing.T) {
	tc := NewTCache(time.Minute)
	assert.True(t, tc.Add("k", "first", 0))
	assert.False(t, tc.Add("k", "second", 0))
	v, ok := tc.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestDelete(t *testing.T) {
	tc := NewTCache(time.Minute)
	tc.Register("k", "v", 0)
	tc.Delete("k")
	_, ok := tc.Get("k")
	assert.False(t, ok)
	// deleting a key that is not there is a no-op.
	tc.Delete("k")
}

func TestEntryExpires(t *testing.T) {
	tc := NewTCache(time.Minute)
	tc.Register("k", "v", 50*time.Millisecond)
	_, ok := tc.Get("k")
	assert.True(t, ok)
	time.Sleep(300 * time.Millisecond)
	_, ok = tc.Get("k")
	assert.False(t, ok)
}

func TestReRegisterRestartsTimer(t *testing.T) {
	tc := NewTCache(time.Minute)
	tc.Register("k", "v1", 400*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	tc.Register("k", "v2", 400*time.Millisecond)
	// past the first deadline but well within the second.
	time.Sleep(300 * time.Millisecond)
	v, ok := tc.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
	time.Sleep(400 * time.Millisecond)
	_, ok = tc.Get("k")
	assert.False(t, ok)
}

func TestConcurrentUse(t *testing.T) {
	tc := NewTCache(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%10)
				tc.Register(key, fmt.Sprintf("v%d-%d", n, j), 0)
				tc.Get(key)
				tc.Add(key, "late", 0)
				if j%7 == 0 { tc.Delete(key) }
			}
		}(i)
	}
	wg.Wait()
}
