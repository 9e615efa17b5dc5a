package reports

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "u1", Key("u1", ""))
	assert.Equal(t, "u1:g1", Key("u1", "g1"))
}

func TestAggregate_AddHasCount(t *testing.T) {
	agg := New()
	key := Key("target", "")

	assert.False(t, agg.Has(key, "r1"))
	assert.Equal(t, 1, agg.Add(key, "r1"))
	assert.True(t, agg.Has(key, "r1"))

	// Re-adding the same reporter does not grow the set.
	assert.Equal(t, 1, agg.Add(key, "r1"))
	assert.Equal(t, 2, agg.Add(key, "r2"))
	assert.Equal(t, 2, agg.Count(key))
}

func TestAggregate_KeysAreIndependent(t *testing.T) {
	agg := New()
	global := Key("target", "")
	scoped := Key("target", "g1")

	agg.Add(global, "r1")
	agg.Add(scoped, "r1")
	agg.Add(scoped, "r2")

	assert.Equal(t, 1, agg.Count(global))
	assert.Equal(t, 2, agg.Count(scoped))
}

func TestAggregate_Reporters(t *testing.T) {
	agg := New()
	key := Key("target", "")
	agg.Add(key, "zed")
	agg.Add(key, "amy")
	agg.Add(key, "mia")

	assert.Equal(t, []string{"amy", "mia", "zed"}, agg.Reporters(key))
}

func TestAggregate_Clear(t *testing.T) {
	agg := New()
	key := Key("target", "")
	agg.Add(key, "r1")

	agg.Clear(key)

	assert.Equal(t, 0, agg.Count(key))
	assert.False(t, agg.Has(key, "r1"))
}

func TestAggregate_ConcurrentAdds(t *testing.T) {
	agg := New()
	key := Key("target", "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			reporter := string(rune('a' + n%26))
			_ = agg.WithKey(key, func() error {
				agg.Add(key, reporter)
				return nil
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 26, agg.Count(key))
}
