//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/auction-browser/internal/session"
)

func setupRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestRedisStore(t *testing.T) {
	addr := setupRedis(t)
	ctx := context.Background()

	s, err := session.Open(ctx, session.Options{
		Backend:     session.BackendRedis,
		RedisAddr:   addr,
		RedisPrefix: "test:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	// Keys are namespaced by the prefix.
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	raw, err := rdb.Get(ctx, "test:k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", raw)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_Manager(t *testing.T) {
	addr := setupRedis(t)
	ctx := context.Background()

	s, err := session.NewRedisStore(ctx, addr, "", 0, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	m := session.NewManager(s, nil)
	require.NoError(t, m.SaveToken(ctx, "tok123"))
	tok, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok123", tok)

	require.NoError(t, m.ClearToken(ctx))
	tok, err = m.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
