package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/redis/go-redis/v9"
)

const livenessKey = "pos:terminals:alive"

// redisLiveness keeps the last heartbeat time of every terminal in a sorted
// set scored by unix seconds. Members older than the TTL are trimmed on read.
type redisLiveness struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger
}

// NewRedisLiveness connects to Redis and verifies the connection with PING.
func NewRedisLiveness(ctx context.Context, cfg config.Redis, log *logger.Logger) (LivenessRegistry, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisLiveness").Str("address", cfg.Address).Msg("failed to ping redis")
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	log.Info().Str("func", "NewRedisLiveness").Str("address", cfg.Address).Msg("connected to redis")

	return newRedisLiveness(client, cfg.LivenessTTL, log), nil
}

func newRedisLiveness(client *redis.Client, ttl time.Duration, log *logger.Logger) *redisLiveness {
	return &redisLiveness{client: client, ttl: ttl, now: time.Now, logger: log}
}

// MarkAlive records a heartbeat of terminalID at at.
func (l *redisLiveness) MarkAlive(ctx context.Context, terminalID string, at time.Time) error {
	err := l.client.ZAdd(ctx, livenessKey, redis.Z{
		Score:  float64(at.Unix()),
		Member: terminalID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to mark terminal alive: %w", err)
	}
	return nil
}

// CountAlive returns the number of terminals with a heartbeat at or after
// since. Entries older than the TTL are removed first.
func (l *redisLiveness) CountAlive(ctx context.Context, since time.Time) (int64, error) {
	if l.ttl > 0 {
		expired := strconv.FormatInt(l.now().Add(-l.ttl).Unix(), 10)
		if err := l.client.ZRemRangeByScore(ctx, livenessKey, "-inf", "("+expired).Err(); err != nil {
			return 0, fmt.Errorf("failed to trim liveness set: %w", err)
		}
	}

	count, err := l.client.ZCount(ctx, livenessKey, strconv.FormatInt(since.Unix(), 10), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count alive terminals: %w", err)
	}
	return count, nil
}

func (l *redisLiveness) Close() error {
	return l.client.Close()
}
