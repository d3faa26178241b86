package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	Client *redis.Client
}

// NewRedisClient подключается к Redis с тем же ограниченным ретраем, что и БД
func NewRedisClient(cfg *RedisConfig, retry *RetryConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	attempts, delay := retryParameters(retry)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = client.Ping(ctx).Err()
		cancel()
		if err == nil {
			log.Println("Подключение к Redis успешно выполнено")
			return &RedisClient{Client: client}, nil
		}
		if attempt == attempts {
			break
		}
		log.Printf("попытка %d подключения к Redis не удалась: %v, повтор через %s", attempt, err, delay)
		time.Sleep(delay)
		delay *= 2
	}

	return nil, fmt.Errorf("ошибка подключения к Redis после %d попыток: %w", attempts, err)
}

func (r *RedisClient) Close() error {
	if err := r.Client.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия соединения с Redis: %w", err)
	}
	return nil
}
