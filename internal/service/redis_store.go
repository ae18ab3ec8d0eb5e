package service

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"ocr-backend/internal/models"
)

const (
	redisCorrectionsKey = "ocr:corrections"
	redisContextKey     = "ocr:corrections:context"
	redisMemberSep      = "\x00"
)

// RedisStore implements CorrectionStore on a Redis sorted set. The
// member is original+NUL+corrected and the score is the observation
// count, so ZINCRBY is the insert-or-increment write and a reverse
// range by score is the grouped read.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// ConnectRedis dials Redis at addr and verifies the connection.
func ConnectRedis(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// SaveCorrection increments the observation count for the pair. The
// observation context is kept in a companion hash, last writer wins.
func (r *RedisStore) SaveCorrection(original, corrected, observedIn string) error {
	ctx := context.Background()
	member := original + redisMemberSep + corrected
	if err := r.client.ZIncrBy(ctx, redisCorrectionsKey, 1, member).Err(); err != nil {
		return err
	}
	if observedIn != "" {
		return r.client.HSet(ctx, redisContextKey, member, observedIn).Err()
	}
	return nil
}

// TopCorrections returns pairs observed at least twice, highest count
// first, capped at the learned-correction limit.
func (r *RedisStore) TopCorrections() ([]models.LearnedCorrection, error) {
	ctx := context.Background()
	entries, err := r.client.ZRevRangeByScoreWithScores(ctx, redisCorrectionsKey, &redis.ZRangeBy{
		Min:   "2",
		Max:   "+inf",
		Count: learnedCorrectionLimit,
	}).Result()
	if err != nil {
		return nil, err
	}

	var corrections []models.LearnedCorrection
	for _, entry := range entries {
		member, ok := entry.Member.(string)
		if !ok {
			continue
		}
		parts := strings.SplitN(member, redisMemberSep, 2)
		if len(parts) != 2 {
			continue
		}
		corrections = append(corrections, models.LearnedCorrection{
			Original:  parts[0],
			Corrected: parts[1],
			Frequency: int(entry.Score),
		})
	}
	return corrections, nil
}
