package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"auth-service/config"
	"auth-service/internal/util"
)

// RevocationCache хранит в Redis два независимых индекса:
// access_token:<token> -> {"user_id": ...} с TTL до истечения токена
// blacklist:<token>    -> "1" с TTL до исходного истечения токена.
// Живая blacklist запись перекрывает любой другой признак валидности
type RevocationCache struct {
	client *config.RedisClient
}

type accessTokenEntry struct {
	UserID string `json:"user_id"`
}

func NewRevocationCache(rdb *config.RedisClient) *RevocationCache {
	return &RevocationCache{rdb}
}

// RegisterAccessToken сохраняет отображение токена на владельца.
// Существующая запись для того же токена перезаписывается
func (r *RevocationCache) RegisterAccessToken(ctx context.Context, token, userUUID string, ttl time.Duration) error {
	data, err := json.Marshal(accessTokenEntry{UserID: userUUID})
	if err != nil {
		return util.LogError("ошибка сериализации записи access токена", err)
	}

	cmd := r.client.Client.Set(ctx, r.accessTokenKey(token), data, ttl)
	if err := cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения access токена в Redis", err)
	}

	return nil
}

// LookupAccessToken возвращает UUID владельца токена.
// Пустая строка без ошибки означает отсутствие записи: TTL истёк
// или токен никогда не регистрировался
func (r *RevocationCache) LookupAccessToken(ctx context.Context, token string) (string, error) {
	val, err := r.client.Client.Get(ctx, r.accessTokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // нет в кэше
	} else if err != nil {
		return "", util.LogError("ошибка получения access токена из Redis", err)
	}

	var entry accessTokenEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return "", util.LogError("ошибка десериализации записи access токена", err)
	}
	return entry.UserID, nil
}

// DeleteAccessToken удаляет запись токена, повторное удаление не ошибка
func (r *RevocationCache) DeleteAccessToken(ctx context.Context, token string) error {
	if err := r.client.Client.Del(ctx, r.accessTokenKey(token)).Err(); err != nil {
		return util.LogError("ошибка удаления access токена из Redis", err)
	}
	return nil
}

// Blacklist помечает токен отозванным на ttl.
// TTL подбирается вызывающей стороной по остатку жизни токена,
// поэтому повторная запись ничего не продлевает
func (r *RevocationCache) Blacklist(ctx context.Context, token string, ttl time.Duration) error {
	if err := r.client.Client.Set(ctx, r.blacklistKey(token), "1", ttl).Err(); err != nil {
		return util.LogError("ошибка добавления токена в blacklist", err)
	}
	return nil
}

func (r *RevocationCache) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	count, err := r.client.Client.Exists(ctx, r.blacklistKey(token)).Result()
	if err != nil {
		return false, util.LogError("ошибка проверки blacklist", err)
	}
	return count == 1, nil
}

func (r *RevocationCache) accessTokenKey(token string) string {
	return fmt.Sprintf("access_token:%s", token)
}

func (r *RevocationCache) blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}
