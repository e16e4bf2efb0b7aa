package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, 5*time.Minute), mr
}

func TestFetchJSONCachesLoaderResult(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return []string{"brows", "lashes"}, nil
	}

	var first []string
	require.NoError(t, c.FetchJSON(ctx, KeyServicesList, &first, loader))
	require.Equal(t, []string{"brows", "lashes"}, first)
	require.Equal(t, 1, calls)

	var second []string
	require.NoError(t, c.FetchJSON(ctx, KeyServicesList, &second, loader))
	require.Equal(t, first, second)
	require.Equal(t, 1, calls, "second read must come from cache")
}

func TestFetchJSONAfterInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return map[string]int{"count": calls}, nil
	}

	var out map[string]int
	require.NoError(t, c.FetchJSON(ctx, KeyTrainingPrograms, &out, loader))
	require.NoError(t, c.Invalidate(ctx, KeyTrainingPrograms))
	require.NoError(t, c.FetchJSON(ctx, KeyTrainingPrograms, &out, loader))
	require.Equal(t, 2, calls, "invalidate must force a reload")
	require.Equal(t, 2, out["count"])
}

func TestFetchJSONExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	var out int
	require.NoError(t, c.FetchJSON(ctx, KeyEmailTemplates, &out, loader))
	mr.FastForward(10 * time.Minute)
	require.NoError(t, c.FetchJSON(ctx, KeyEmailTemplates, &out, loader))
	require.Equal(t, 2, calls, "expired key must reload")
}
