package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-service/config"
	"auth-service/internal/repository"
)

func newTestCache(t *testing.T) (*repository.RevocationCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := repository.NewRevocationCache(&config.RedisClient{Client: client})
	return cache, mr
}

// 1. Зарегистрированный токен находится и исчезает после истечения TTL
func TestRegisterAccessToken_TTL(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.RegisterAccessToken(ctx, "tok1", "user-1", time.Second))

	userUUID, err := cache.LookupAccessToken(ctx, "tok1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userUUID)

	// ключ хранится под префиксом access_token:
	assert.True(t, mr.Exists("access_token:tok1"))

	mr.FastForward(1500 * time.Millisecond)

	userUUID, err = cache.LookupAccessToken(ctx, "tok1")
	require.NoError(t, err)
	assert.Empty(t, userUUID)
}

// 2. Незарегистрированный токен отсутствует без ошибки
func TestLookupAccessToken_Missing(t *testing.T) {
	cache, _ := newTestCache(t)

	userUUID, err := cache.LookupAccessToken(context.Background(), "неизвестный")
	require.NoError(t, err)
	assert.Empty(t, userUUID)
}

// 3. Повторная регистрация перезаписывает запись
func TestRegisterAccessToken_Overwrite(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.RegisterAccessToken(ctx, "tok1", "user-1", time.Minute))
	require.NoError(t, cache.RegisterAccessToken(ctx, "tok1", "user-2", time.Minute))

	userUUID, err := cache.LookupAccessToken(ctx, "tok1")
	require.NoError(t, err)
	assert.Equal(t, "user-2", userUUID)
}

// 4. Удаление идемпотентно
func TestDeleteAccessToken_Idempotent(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.RegisterAccessToken(ctx, "tok1", "user-1", time.Minute))
	require.NoError(t, cache.DeleteAccessToken(ctx, "tok1"))
	require.NoError(t, cache.DeleteAccessToken(ctx, "tok1"))

	userUUID, err := cache.LookupAccessToken(ctx, "tok1")
	require.NoError(t, err)
	assert.Empty(t, userUUID)
}

// 5. Blacklist запись живёт ровно свой TTL и хранится независимо от индекса
func TestBlacklist(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	blacklisted, err := cache.IsBlacklisted(ctx, "tok1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, cache.Blacklist(ctx, "tok1", 2*time.Second))
	assert.True(t, mr.Exists("blacklist:tok1"))

	blacklisted, err = cache.IsBlacklisted(ctx, "tok1")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	// запись в blacklist не задевает индекс живых токенов
	userUUID, err := cache.LookupAccessToken(ctx, "tok1")
	require.NoError(t, err)
	assert.Empty(t, userUUID)

	mr.FastForward(3 * time.Second)

	blacklisted, err = cache.IsBlacklisted(ctx, "tok1")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

// 6. Недоступный Redis возвращает ошибку, а не ложный "не отозван"
func TestCache_Unavailable(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	_, err := cache.IsBlacklisted(context.Background(), "tok1")
	assert.Error(t, err)

	_, err = cache.LookupAccessToken(context.Background(), "tok1")
	assert.Error(t, err)
}
