package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackmap/internal/repository"
	"stackmap/internal/repository/storetest"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repository.Store {
		mr := setupMiniredis(t)
		s, err := New(context.Background(), Options{Addr: mr.Addr(), Prefix: "test:"})
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestStoreUsesPrefix(t *testing.T) {
	ctx := context.Background()
	mr := setupMiniredis(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewWithClient(client, "tenant-a:")
	defer s.Close()

	require.NoError(t, s.Put(ctx, repository.ThemeKey, []byte(`{}`)))

	assert.True(t, mr.Exists("tenant-a:"+repository.ThemeKey))
	assert.False(t, mr.Exists(repository.ThemeKey))

	value, err := mr.Get("tenant-a:" + repository.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, `{}`, value)
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	mr := setupMiniredis(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), Options{Addr: addr})
	assert.Error(t, err)
}
