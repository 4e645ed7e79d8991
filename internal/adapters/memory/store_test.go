package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetDelete(t *testing.T) {
	store := NewStore()

	got, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Put("k", []byte("v")))
	got, err = store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete("k"))
	require.NoError(t, store.Delete("k"), "delete is idempotent")
	assert.Equal(t, 0, store.Len())
}

func TestStore_Keys(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Put("a_1", []byte("x")))
	require.NoError(t, store.Put("a_2", []byte("y")))
	require.NoError(t, store.Put("b_1", []byte("z")))

	keys, err := store.Keys("a_")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a_1", "a_2"}, keys)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Put("k", []byte("abc")))

	got, _ := store.Get("k")
	got[0] = 'X'

	again, _ := store.Get("k")
	assert.Equal(t, []byte("abc"), again, "callers must not see each other's mutations")
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n)
			_ = store.Put(key, []byte("v"))
			_, _ = store.Get(key)
			_, _ = store.Keys("k")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, store.Len())
}
