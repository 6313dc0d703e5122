package session

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behavior every Store must share
func exerciseStore(t *testing.T, s Store, id string) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok, "unknown id should not be found")

	require.NoError(t, s.Put(ctx, id, "data:image/png;base64,AAAA"))
	got, ok, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AAAA", got)

	require.NoError(t, s.Put(ctx, id, "data:image/png;base64,BBBB"))
	got, _, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,BBBB", got, "Put should overwrite")

	require.NoError(t, s.Put(ctx, id, ""))
	got, ok, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok, "empty payload is still a stored session")
	assert.Empty(t, got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(), "17")
}

func TestMemoryStore_IsolatesIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, "1", "a"))
	require.NoError(t, s.Put(ctx, "2", "b"))

	got, _, _ := s.Get(ctx, "1")
	assert.Equal(t, "a", got)
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprint(i % 5)
			_ = s.Put(ctx, id, fmt.Sprint(i))
			_, _, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, s.Len())
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = New(ctx, Options{Backend: "etcd"})
	assert.Error(t, err)

	_, err = New(ctx, Options{Backend: BackendRedis})
	assert.Error(t, err, "redis backend without URL should fail")

	_, err = New(ctx, Options{Backend: BackendRedis, RedisURL: "::not a url::"})
	assert.Error(t, err)
}

func TestVersionToken(t *testing.T) {
	a := VersionToken("data:image/png;base64,AAAA")
	assert.Equal(t, a, VersionToken("data:image/png;base64,AAAA"))
	assert.NotEqual(t, a, VersionToken("data:image/png;base64,AAAB"))
	assert.NotEmpty(t, VersionToken(""))
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("PAINT_EDITOR_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PAINT_EDITOR_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	s, err := NewRedisStore(ctx, url, time.Minute)
	require.NoError(t, err)
	defer s.Close()

	id := fmt.Sprintf("test-%d", time.Now().UnixNano())
	defer s.Delete(ctx, id)

	exerciseStore(t, s, id)

	require.NoError(t, s.Delete(ctx, id))
	_, ok, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok, "deleted session should be absent")
	assert.NoError(t, s.Delete(ctx, id), "deleting an absent session is not an error")
}
