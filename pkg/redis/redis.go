package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

var ErrTokenNotFound = errors.New("token not found or expired")

type IRedis interface {
	SetResetToken(ctx context.Context, token string, userID string, expiration time.Duration) error
	GetResetToken(ctx context.Context, token string) (string, error)
	DeleteResetToken(ctx context.Context, token string) error
	BlacklistToken(ctx context.Context, token string, until time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Connected to Redis")
	}

	return &redisClient{client: client}
}

func resetKey(token string) string {
	return fmt.Sprintf("password-reset:%s", token)
}

func blacklistKey(token string) string {
	return fmt.Sprintf("token-blacklist:%s", token)
}

func (r *redisClient) SetResetToken(ctx context.Context, token string, userID string, expiration time.Duration) error {
	return r.client.Set(ctx, resetKey(token), userID, expiration).Err()
}

func (r *redisClient) GetResetToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return userID, nil
}

func (r *redisClient) DeleteResetToken(ctx context.Context, token string) error {
	return r.client.Del(ctx, resetKey(token)).Err()
}

func (r *redisClient) BlacklistToken(ctx context.Context, token string, until time.Duration) error {
	if until <= 0 {
		return nil
	}
	return r.client.Set(ctx, blacklistKey(token), "revoked", until).Err()
}

func (r *redisClient) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := r.client.Get(ctx, blacklistKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
