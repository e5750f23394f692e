package redis

import (
	"anon-chat/contract"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ contract.Deduplicator = (*Deduplicator)(nil)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient opens a pooled client and checks the connection.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Deduplicator remembers Telegram update ids for ttl so that a redelivered
// update is processed once.
type Deduplicator struct {
	log    *slog.Logger
	client redis.Cmdable
	ttl    time.Duration
}

func NewDeduplicator(log *slog.Logger, client redis.Cmdable, ttl time.Duration) *Deduplicator {
	return &Deduplicator{log: log, client: client, ttl: ttl}
}

func (d *Deduplicator) FirstSeen(ctx context.Context, updateID int64) (bool, error) {
	first, err := d.client.SetNX(ctx, key(updateID), 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup update %d: %w", updateID, err)
	}
	if !first {
		d.log.Debug("Duplicate update skipped", "update_id", updateID)
	}
	return first, nil
}

func key(updateID int64) string {
	return fmt.Sprintf("anonchat:update:%d", updateID)
}
