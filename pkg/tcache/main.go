package tcache

import (
	"sync"
	"time"
)

// temporary cache.
// used to store kv pairs that expires after a set amount of time.
// safe for concurrent use.

type tCacheVal struct {
	timer *time.Timer
	gen uint64
	value string
}

type TCache struct {
	defaultTimeout time.Duration
	lock sync.Mutex
	val map[string]*tCacheVal
	gen uint64
}

func NewTCache(d time.Duration) *TCache {
	return &TCache{
		defaultTimeout: d,
		val: make(map[string]*tCacheVal, 0),
	}
}

// the gen check stops a stale timer from deleting an entry that has
// been re-registered after the timer was armed.
func (tc *TCache) arm(key string, gen uint64, d time.Duration) *time.Timer {
	return time.AfterFunc(d, func() {
		tc.lock.Lock()
		defer tc.lock.Unlock()
		v, ok := tc.val[key]
		if !ok || v.gen != gen { return }
		delete(tc.val, key)
	})
}

// Register sets key to value no matter if it's already there or not.
// a non-positive d means the default timeout.
func (tc *TCache) Register(key string, value string, d time.Duration) {
	tc.lock.Lock()
	defer tc.lock.Unlock()
	if d <= 0 { d = tc.defaultTimeout }
	tc.gen += 1
	v, ok := tc.val[key]
	if ok {
		v.timer.Stop()
		v.value = value
		v.gen = tc.gen
		v.timer = tc.arm(key, tc.gen, d)
		return
	}
	tc.val[key] = &tCacheVal{
		timer: tc.arm(key, tc.gen, d),
		gen: tc.gen,
		value: value,
	}
}

// Add sets key to value only when key is not already there. returns
// false (and leaves the old value and its timer alone) when it is.
func (tc *TCache) Add(key string, value string, d time.Duration) bool {
	tc.lock.Lock()
	defer tc.lock.Unlock()
	_, ok := tc.val[key]
	if ok { return false }
	if d <= 0 { d = tc.defaultTimeout }
	tc.gen += 1
	tc.val[key] = &tCacheVal{
		timer: tc.arm(key, tc.gen, d),
		gen: tc.gen,
		value: value,
	}
	return true
}

func (tc *TCache) Get(key string) (string, bool) {
	tc.lock.Lock()
	defer tc.lock.Unlock()
	v, ok := tc.val[key]
	if !ok { return "", false }
	return v.value, true
}

func (tc *TCache) Delete(key string) {
	tc.lock.Lock()
	defer tc.lock.Unlock()
	v, ok := tc.val[key]
	if !ok { return }
	v.timer.Stop()
	delete(tc.val, key)
}
