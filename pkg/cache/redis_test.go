package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheWithClient(client, "libscope:"), mr
}

func TestNewRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr()+"/0", "libscope:")
	require.NoError(t, err)
	assert.NotNil(t, c)
	defer c.Close()
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url", "")
	assert.Error(t, err)
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, mr := setupTestRedis(t)
	defer mr.Close()
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "examples:json", []byte("payload"), time.Minute))

	data, hit, err := c.Get(ctx, "examples:json")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("payload"), data)

	assert.True(t, mr.Exists("libscope:examples:json"), "key should carry the prefix")
}

func TestRedisCache_Miss(t *testing.T) {
	c, mr := setupTestRedis(t)
	defer mr.Close()
	defer c.Close()

	data, hit, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, data)
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := setupTestRedis(t)
	defer mr.Close()
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Second))
	mr.FastForward(2 * time.Second)

	_, hit, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_NoTTL(t *testing.T) {
	c, mr := setupTestRedis(t)
	defer mr.Close()
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "forever", []byte("x"), 0))
	assert.Equal(t, time.Duration(0), mr.TTL("libscope:forever"))
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	c, mr := setupTestRedis(t)
	defer mr.Close()
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 0))
	require.NoError(t, mr.Set("other:key", "untouched"))

	require.NoError(t, c.Delete(ctx, "a"))
	_, hit, _ := c.Get(ctx, "a")
	assert.False(t, hit)

	n, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, mr.Exists("other:key"), "Clear must only touch prefixed keys")
}
