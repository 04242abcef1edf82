package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	var dest payload
	found, err := GetJSON(ctx, "missing", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", payload{ID: 1, Name: "cats"}, time.Minute))

	found, err = GetJSON(ctx, "k", &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{ID: 1, Name: "cats"}, dest)
}

func TestGetSetJSON_NoClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, "k", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "k", payload{ID: 1}, time.Minute))
}

func TestAside(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			fetches++
			*dest = payload{ID: 2, Name: "dogs"}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, GroupKey(2), &first, GroupTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "dogs", first.Name)

	// second read is served from the cache
	var second payload
	require.NoError(t, Aside(ctx, GroupKey(2), &second, GroupTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "dogs", second.Name)
}

func TestAside_FetchError(t *testing.T) {
	setupTestRedis(t)

	wantErr := errors.New("db down")
	var dest payload
	err := Aside(context.Background(), PostKey(1), &dest, PostTTL, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestInvalidate(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(5), payload{ID: 5}, PostTTL))
	require.True(t, mr.Exists(PostKey(5)))

	InvalidatePost(ctx, 5)
	assert.False(t, mr.Exists(PostKey(5)))

	require.NoError(t, SetJSON(ctx, GroupListKey, []payload{{ID: 1}}, GroupTTL))
	require.NoError(t, SetJSON(ctx, GroupKey(1), payload{ID: 1}, GroupTTL))
	InvalidateGroup(ctx, 1)
	assert.False(t, mr.Exists(GroupListKey))
	assert.False(t, mr.Exists(GroupKey(1)))
}
