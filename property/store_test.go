package property

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls atomic.Int32
	table Table
	delay time.Duration
}

func (c *countingLoader) load() Table {
	c.calls.Add(1)
	time.Sleep(c.delay)

	return c.table
}

func TestStore_LazyLoad(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{table: Table{"k": "v"}}
	store := NewStore(loader.load)

	assert.False(t, store.Loaded())
	assert.Equal(t, int32(0), loader.calls.Load())

	value, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", value)
	assert.True(t, store.Loaded())

	_, _ = store.Get("k")
	_ = store.Keys()

	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestStore_ConcurrentFirstAccessLoadsOnce(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{table: Table{"k": "v"}, delay: 20 * time.Millisecond}
	store := NewStore(loader.load)

	const callers = 64

	var (
		start sync.WaitGroup
		done  sync.WaitGroup
		seen  [callers]Table
	)

	start.Add(1)

	for i := range callers {
		done.Add(1)

		go func() {
			defer done.Done()

			start.Wait()

			seen[i] = store.snapshot()
		}()
	}

	start.Done()
	done.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())

	for i := range callers {
		require.Equal(t, Table{"k": "v"}, seen[i])
		// every caller observes the same published map
		assert.Equal(t, reflect.ValueOf(seen[0]).Pointer(), reflect.ValueOf(seen[i]).Pointer())
	}
}

func TestStore_NilLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)

	assert.Empty(t, store.Properties())
	assert.NotNil(t, store.Properties())
}

func TestStore_PropertiesReturnsCopy(t *testing.T) {
	t.Parallel()

	source := Table{"k": "v"}
	store := NewStore(func() Table { return source })

	props := store.Properties()
	props["k"] = "changed"
	source["k"] = "changed at source"

	value, _ := store.Get("k")
	assert.Equal(t, "v", value)
}

func TestStore_AddAfterLoad(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{table: Table{"a": "1", "b": "2"}}
	store := NewStore(loader.load)

	_, _ = store.Get("a")

	store.Add(Table{"b": "20", "c": "30"})

	assert.Equal(t, Table{"a": "1", "b": "20", "c": "30"}, store.Properties())
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestStore_AddInitializesFirst(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{table: Table{"a": "1"}}
	store := NewStore(loader.load)

	store.Add(Table{"b": "2"})

	assert.Equal(t, Table{"a": "1", "b": "2"}, store.Properties())
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestStore_SetReplacesAndSkipsLoad(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{table: Table{"a": "1"}}
	store := NewStore(loader.load)

	store.Set(Table{"b": "2"})

	_, ok := store.Get("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, store.Keys())
	assert.Equal(t, int32(0), loader.calls.Load())
}

func TestStore_SetAfterLoadDropsOldKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(func() Table { return Table{"a": "1", "b": "2"} })
	_, _ = store.Get("a")

	replacement := Table{"c": "3"}
	store.Set(replacement)
	replacement["d"] = "4"

	assert.Equal(t, Table{"c": "3"}, store.Properties())
}

func TestStore_NilMutationsIgnored(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{table: Table{"a": "1"}}
	store := NewStore(loader.load)

	store.Set(nil)
	store.Add(nil)

	assert.False(t, store.Loaded())
	assert.Equal(t, Table{"a": "1"}, store.Properties())
}

func TestStore_ConcurrentReadersAndWriters(t *testing.T) {
	t.Parallel()

	store := NewStore(func() Table { return Table{"base": "1"} })

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(2)

		go func() {
			defer wg.Done()

			store.Add(Table{string(rune('a' + i)): "x"})
		}()

		go func() {
			defer wg.Done()

			for range 100 {
				value, ok := store.Get("base")
				assert.True(t, ok)
				assert.Equal(t, "1", value)
			}
		}()
	}

	wg.Wait()

	assert.Len(t, store.Keys(), 17)
}
