package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/angelmondragon/ecotech-backend/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	raw := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = raw.Close() })
	return NewFromRaw(raw), mr
}

func TestSetNXAndGet(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)

	ok, err := client.SetNX(ctx, "k", "v1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = client.SetNX(ctx, "k", "v2", time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	value, err := client.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v1", value)

	mr.FastForward(2 * time.Minute)
	_, err = client.Get(ctx, "k")
	require.True(t, errors.Is(err, redis.Nil))
}

func TestPing(t *testing.T) {
	client, mr := newTestClient(t)
	require.NoError(t, client.Ping(context.Background()))
	mr.Close()
	require.Error(t, client.Ping(context.Background()))
}

func TestCompareAndDelete(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	require.NoError(t, mr.Set("eco:lock:job", "owner-a"))

	deleted, err := client.CompareAndDelete(ctx, "eco:lock:job", "owner-b")
	require.NoError(t, err)
	require.False(t, deleted)
	require.True(t, mr.Exists("eco:lock:job"))

	deleted, err = client.CompareAndDelete(ctx, "eco:lock:job", "owner-a")
	require.NoError(t, err)
	require.True(t, deleted)
	require.False(t, mr.Exists("eco:lock:job"))

	deleted, err = client.CompareAndDelete(ctx, "eco:lock:job", "owner-a")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("scope", "id"); got != "eco:idempotency:scope:id" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.LockKey("analytics-refresh"); got != "eco:lock:analytics-refresh" {
		t.Fatalf("unexpected lock key %s", got)
	}
	custom := &Client{namespace: namespaceOrDefault(" ecotech-staging: ")}
	if got := custom.LockKey(" cron "); got != "ecotech-staging:lock:cron" {
		t.Fatalf("unexpected namespaced key %s", got)
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	require.Error(t, client.Ping(context.Background()))
	_, err := client.CompareAndDelete(context.Background(), "k", "v")
	require.Error(t, err)
	require.NoError(t, client.Close())

	var nilClient *Client
	require.NoError(t, nilClient.Close())
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6380", DB: 2, PoolSize: 7})
	require.NoError(t, err)
	require.Equal(t, "localhost:6380", opts.Addr)
	require.Equal(t, 2, opts.DB)
	require.Equal(t, 7, opts.PoolSize)

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/3"})
	require.NoError(t, err)
	require.Equal(t, 3, opts.DB)
}

func TestNewWithMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := New(context.Background(), config.RedisConfig{Address: mr.Addr(), Namespace: "test"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()))
	require.Equal(t, "test:idempotency:POST|/users:k", client.IdempotencyKey("POST|/users", "k"))

	addr := mr.Addr()
	mr.Close()
	_, err = New(context.Background(), config.RedisConfig{Address: addr}, nil)
	require.Error(t, err)
}
