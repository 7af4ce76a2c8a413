package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestTTLCacheFreshness(t *testing.T) {
	c := NewTTLCache()
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Put("league:premier league", "4328", time.Hour)

	value, fresh := c.Get("league:premier league")
	if !fresh {
		t.Fatal("expected fresh entry immediately after Put")
	}
	if value.(string) != "4328" {
		t.Errorf("value = %v, want 4328", value)
	}

	// Advance past the TTL: value is still returned but marked stale.
	c.now = func() time.Time { return base.Add(2 * time.Hour) }

	value, fresh = c.Get("league:premier league")
	if fresh {
		t.Error("expected stale entry after TTL elapsed")
	}
	if value.(string) != "4328" {
		t.Errorf("stale value = %v, want 4328", value)
	}
}

func TestTTLCacheMissingKey(t *testing.T) {
	c := NewTTLCache()

	value, fresh := c.Get("nope")
	if fresh || value != nil {
		t.Errorf("Get(missing) = (%v, %v), want (nil, false)", value, fresh)
	}
}

func TestTTLCacheConcurrentAccess(t *testing.T) {
	c := NewTTLCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			c.Put(fmt.Sprintf("key-%d", n%10), n, time.Minute)
		}(i)
		go func(n int) {
			defer wg.Done()
			c.Get(fmt.Sprintf("key-%d", n%10))
		}(i)
	}
	wg.Wait()

	if c.Len() != 10 {
		t.Errorf("Len() = %d, want 10", c.Len())
	}
}
