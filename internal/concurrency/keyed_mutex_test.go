package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()
	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("entity-1")
			defer km.Unlock("entity-1")
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestLockMultiDeterministicOrder(t *testing.T) {
	km := NewKeyedMutex()
	unlock1 := km.LockMulti("b", "a", "c")
	unlock1()

	// Reversed key order must still acquire without deadlock since both
	// calls sort internally to the same global order.
	done := make(chan struct{})
	go func() {
		unlock2 := km.LockMulti("c", "b", "a")
		unlock2()
		close(done)
	}()
	<-done
}
