package keymutex

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := New()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("group-1")
			defer km.Unlock("group-1")
			// Non-atomic increment; only safe if the lock serializes us.
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyMutex_IndependentKeys(t *testing.T) {
	km := New()

	km.Lock("a")
	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	// Locking "b" must not block on "a" being held.
	<-done
	km.Unlock("a")
}

func TestKeyMutex_WithLock(t *testing.T) {
	km := New()

	wantErr := errors.New("boom")
	err := km.WithLock("k", func() error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	// Lock must be released after WithLock returns.
	err = km.WithLock("k", func() error { return nil })
	require.NoError(t, err)
}

func TestKeyMutex_EntriesAreReclaimed(t *testing.T) {
	km := New()

	km.Lock("k")
	km.Unlock("k")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
