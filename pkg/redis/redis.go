package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Payment status polls arrive every few seconds per open checkout, so
// lookups are answered from a short-lived cache in front of Postgres.
type IRedis interface {
	SetPaymentStatus(ctx context.Context, paymentID string, status string, expiration time.Duration) error
	GetPaymentStatus(ctx context.Context, paymentID string) (string, bool, error)
	InvalidatePaymentStatus(ctx context.Context, paymentID string) error
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
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func statusKey(paymentID string) string {
	return "qris:status:" + paymentID
}

func (r *redisClient) SetPaymentStatus(ctx context.Context, paymentID string, status string, expiration time.Duration) error {
	if err := r.client.Set(ctx, statusKey(paymentID), status, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching status for payment %s: %v", paymentID, err))
		return err
	}
	return nil
}

func (r *redisClient) GetPaymentStatus(ctx context.Context, paymentID string) (string, bool, error) {
	val, err := r.client.Get(ctx, statusKey(paymentID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading cached status for payment %s: %v", paymentID, err))
		return "", false, err
	}
	return val, true, nil
}

func (r *redisClient) InvalidatePaymentStatus(ctx context.Context, paymentID string) error {
	if err := r.client.Del(ctx, statusKey(paymentID)).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error invalidating cached status for payment %s: %v", paymentID, err))
		return err
	}
	return nil
}
