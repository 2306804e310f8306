package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCacheAlwaysMisses(t *testing.T) {
	c := &RedisCache{}
	ctx := context.Background()

	assert.False(t, c.Enabled())
	require.NoError(t, c.Set(ctx, "tags", []string{"breakfast"}, time.Minute))

	var got []string
	hit, err := c.Get(ctx, "tags", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
	assert.NoError(t, c.Delete(ctx, "tags"))
}

func TestUnreachableRedisReportsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	c := NewRedisCacheWithClient(client)

	var got []string
	hit, err := c.Get(context.Background(), "tags", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}
