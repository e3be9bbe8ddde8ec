package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/newtron-network/lglass/pkg/util"
)

// DefaultRedisKey is the list key RedisLogger appends to.
const DefaultRedisKey = "lglass:audit"

// RedisLogger appends audit events to a capped Redis list so several
// looking-glass front ends can share one audit trail.
type RedisLogger struct {
	client *redis.Client
	key    string
	maxLen int64
}

// NewRedisLogger connects to addr and verifies the server responds.
// maxLen <= 0 keeps the list unbounded.
func NewRedisLogger(ctx context.Context, addr, key string, maxLen int64) (*RedisLogger, error) {
	if key == "" {
		key = DefaultRedisKey
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to audit redis %s: %w", addr, err)
	}
	return &RedisLogger{client: client, key: key, maxLen: maxLen}, nil
}

// Log appends the event and trims the list to maxLen entries.
func (l *RedisLogger) Log(event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pipe := l.client.TxPipeline()
	pipe.RPush(ctx, l.key, data)
	if l.maxLen > 0 {
		pipe.LTrim(ctx, l.key, -l.maxLen, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing audit event: %w", err)
	}
	return nil
}

// Query returns events matching the filter, oldest first.
func (l *RedisLogger) Query(filter Filter) ([]*Event, error) {
	raw, err := l.client.LRange(context.Background(), l.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading audit events: %w", err)
	}

	var events []*Event
	for i, item := range raw {
		var event Event
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			util.Warnf("audit: skipping malformed redis entry %d: %v", i, err)
			continue
		}
		if filter.Matches(&event) {
			events = append(events, &event)
		}
	}
	return filter.page(events), nil
}

// Close closes the Redis client
func (l *RedisLogger) Close() error {
	return l.client.Close()
}
