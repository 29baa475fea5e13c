package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ fiber.Storage = (*RedisStorage)(nil)

func TestGenerateKey(t *testing.T) {
	s := NewRedisStorage("localhost:0", "foodgram")
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, "foodgram:limiter:127.0.0.1", s.GenerateKey("127.0.0.1"))
}

func TestRedisStorageIntegration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}

	s := NewRedisStorage(addr, "foodgram-test")
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Reset())

	val, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set("hits", []byte("3"), time.Minute))
	val, err = s.Get("hits")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	require.NoError(t, s.Delete("hits"))
	val, err = s.Get("hits")
	require.NoError(t, err)
	assert.Nil(t, val)
}
