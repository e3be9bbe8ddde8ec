//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisAddr returns the test Redis address from LGLASS_TEST_REDIS_ADDR.
func RedisAddr() string {
	return os.Getenv("LGLASS_TEST_REDIS_ADDR")
}

// SkipIfNoRedis skips the test if the test Redis is not configured or reachable.
func SkipIfNoRedis(t *testing.T) string {
	t.Helper()

	addr := RedisAddr()
	if addr == "" {
		t.Skip("test Redis not available: set LGLASS_TEST_REDIS_ADDR")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("test Redis not reachable at %s: %v", addr, err)
	}
	return addr
}

// UniqueKey returns a key private to this test and deletes it on cleanup.
func UniqueKey(t *testing.T, addr string) string {
	t.Helper()
	key := fmt.Sprintf("lglass:test:%s:%d", t.Name(), time.Now().UnixNano())
	t.Cleanup(func() {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()
		client.Del(context.Background(), key)
	})
	return key
}
